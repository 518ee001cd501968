// Package logging provides structured logging configuration for magiql.
//
// It wraps log/slog so that the store, the editing session and the CLI log the
// same way:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelDebug,
//	    Format: logging.FormatJSON,
//	})
//	session := editor.New("Query", editor.WithLogger(logger))
//
// Components accept a *slog.Logger option and fall back to Nop when none is
// given.
package logging
