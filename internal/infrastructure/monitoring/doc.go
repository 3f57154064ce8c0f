/*
Package monitoring provides metrics collection for the desktop backend.

# Overview

Metrics are Prometheus instruments registered on a registry owned by the
Metrics value. They cover HTTP traffic, component calls, windows, virtual
file system operations, spreadsheet recalculation, the app registry and
the event stream.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))

	timer := monitoring.NewTimer(metrics, "vfs", "save")
	_, err := fs.SaveFile(ctx, p, content, "")
	timer.Done(err, nil)
*/
package monitoring
