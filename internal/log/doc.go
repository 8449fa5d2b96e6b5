// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// salesreport logs connection details while opening the dataset. A
// PostgreSQL DSN may carry a password in either form:
//
//	host=db user=report password=secret dbname=northwind
//	postgres://report:secret@db/northwind
//
// The SecureHandler masks the password part of such strings in every
// string value and error, and masks whole values whose key names a secret
// (password, token, credential, ...). Verbose mode does not disable masking.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
//	slog.Debug("opening dataset", "dsn", cfg.DSN)
//	// opening dataset dsn="postgres://report:***REDACTED***@db/northwind"
package log
