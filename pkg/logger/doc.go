// Package logger builds configured log/slog loggers with functional options
// and provides typed attribute helpers for consistent structured log keys.
//
// Defaults are production-safe (JSON, INFO). Development setups flip to text
// output at debug level:
//
//	log := logger.New(logger.WithDevelopment("sessiond"))
//	log.Info("started", logger.Component("main"))
package logger
