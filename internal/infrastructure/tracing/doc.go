/*
Package tracing provides lightweight request tracing.

Every HTTP request gets a span. Spans carry a trace id (a request ULID)
and a span id, propagated through the X-Trace-ID and X-Span-ID headers
and through the request context, so component logs can name the request
that caused them. Finished spans are collected on a buffered channel and
written to the zap logger.

# Usage

	tracer := tracing.New("lumin", logger)
	defer tracer.Close()
	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "sheet.recalc")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()
*/
package tracing
