// Package slog wraps webqa services with structured logging.
//
// Each decorator logs one line per call with the call's inputs, result size,
// duration and error. The wrapped service is otherwise untouched.
package slog
