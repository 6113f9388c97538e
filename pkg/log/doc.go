// Package log provides structured session event logging.
//
// The tracking engine emits an Event for every lifecycle transition,
// telemetry anomaly, completed split, live-metrics republish, and finalized
// record. Applications receive events through the Logger interface:
//
//   - NoopLogger discards everything (the default),
//   - FileLogger appends CBOR-encoded events to a file,
//   - SlogAdapter mirrors events into a standard slog.Logger,
//   - MultiLogger fans out to several of the above.
//
// Events on disk are a raw CBOR stream with integer keys; Reader and
// ReadFile decode them back, optionally filtered by session, category, or
// time window.
//
// Logging is diagnostic only. The engine never blocks on a logger and
// ignores logger failures; a session always outlives its log.
package log
