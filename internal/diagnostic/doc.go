// Package diagnostic provides leveled diagnostics for the inflater engine.
//
// Diagnostics are reported through a Sink as (severity, message, symbol).
// Implementations:
//   - Diagnostics: accumulates everything, for hosts and tests
//   - LogSink: writes through a charmbracelet/log logger
//   - Tee: fans out to several sinks
package diagnostic
