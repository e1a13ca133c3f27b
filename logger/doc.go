// Package logger provides structured logging for restkit using zerolog.
//
// It supports JSON and console output, per-logger level configuration, and
// key-value structured fields. The *Logger type satisfies the client
// package's Logger interface, so it plugs straight into debug logging:
//
//	log := logger.New(&logger.Config{Level: "debug", Format: "console"})
//	c, err := client.New(cfg, client.WithLogger(log), client.WithDebug())
//
// # Configuration
//
//	logger:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault()
//	log.Info("request completed", "status", 200, "duration", elapsed)
package logger
