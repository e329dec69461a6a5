// Package observability wires OpenTelemetry tracing and metrics for webdemo.
//
// Both signals export over OTLP HTTP. When disabled in configuration, Init
// is a no-op and the global no-op providers remain in place, so instrumented
// code does not need to guard its calls.
package observability
