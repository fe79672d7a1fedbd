// Package logging assembles the structured slog loggers used by nacombine.
//
// It owns the console and JSON handlers, resolves output destinations, and
// defines the standard field keys (component, event_type, error_hint, impact,
// path, run_id) so every stage reports skipped files and fatal conditions with
// the same shape. A no-op logger is provided for tests and for wiring code that
// is handed a nil logger.
//
// Prefer these constructors over hand-rolled slog setup so operator-facing
// output stays uniform across the pipeline.
package logging
