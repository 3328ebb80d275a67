// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels. String attributes pass through a redacting handler so
// provider API keys never reach the log stream.
package logger
