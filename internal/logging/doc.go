// Package logging builds the slog loggers used by FocusFrame commands and
// the recording session.
//
// Output is human-readable text when writing to a terminal and JSON lines
// otherwise, unless the format is pinned in configuration.
package logging
