// Package logging assembles the structured slog loggers clipset commands use.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context helpers so command code can pass a logger through
// context.Context. Prefer these constructors over hand-rolled slog setup so
// every component emits lines with the same shape.
package logging
