// Package logging builds the slog loggers used across vidfetch.
//
// Two output formats are supported: a compact console handler for
// interactive use (colorized when stdout is a terminal) and standard JSON
// for service deployments. NewFromConfig additionally tees output into
// vidfetch.log under the configured log directory.
package logging
