/*
Package tracing provides lightweight request tracing for the desktop's HTTP
control surface.

Every request gets a span. Spans are collected on a background goroutine
and written to the structured log, so tracing never blocks a handler.

# Usage

	tracer := tracing.New("desktop", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "operation")
	defer func() {
		span.Finish()
		tracer.Submit(span)
	}()

# Trace Format

Traces propagate through HTTP headers:
  - X-Trace-ID: identifier of the whole request flow
  - X-Span-ID: identifier of the current operation
*/
package tracing
