// Package logger provides structured logging based on Zap.
//
// The level selects the preset (debug uses the development preset) and the format selects
// json or colored console output. The CLI logs with the console format; the HTTP server
// with whatever is configured.
//
// WithRayID attaches the request ray id stored by the rayid middleware, so every log line
// written while handling a comparison request can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Comparison failed", zap.Error(err))
package logger
