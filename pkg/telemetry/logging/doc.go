// Package logging builds the structured logger used across docguard.
//
// # Overview
//
// The logging package wraps Go's standard log/slog package to provide:
//   - JSON, text and console output formats
//   - Configurable log levels (debug, info, warn, error)
//   - Run and rule IDs taken from the context
//
// Logs go to stderr by default. Reports are written to stdout and must stay
// parseable when --format json is used.
//
// # Usage
//
//	logger, err := logging.New(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//	if err != nil {
//	    return err
//	}
//
//	ctx = logging.WithRunID(ctx, runID)
//	logger.InfoContext(ctx, "audit finished", "issues", 3)
//	// {"level":"INFO","msg":"audit finished","issues":3,"run_id":"..."}
package logging
