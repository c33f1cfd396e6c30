// Package logging assembles the structured slog loggers used across submatch.
//
// It owns the console and JSON handlers, centralizes level and output plumbing,
// and provides attribute helpers plus a no-op logger for tests. Log output is
// routed to stderr (and optionally a log file) so the CSV match report on
// stdout remains clean.
package logging
