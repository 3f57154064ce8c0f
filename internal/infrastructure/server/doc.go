// Package server assembles a LuminOS backend from configuration: logger,
// metrics, tracer, storage back ends, the desktop and its gin router.
//
// Example Usage:
//
//	srv, err := server.NewServer(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	go srv.Run()
//	<-ctx.Done()
//	srv.Shutdown(context.Background())
package server
