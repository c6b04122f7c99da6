// Package logger provides structured logging for spot-cli.
//
//   - logger.go: slog-backed Logger, level control and the global default
//   - context.go: request ID and command propagation through context
//   - redact.go: masking of bearer tokens, JWTs and sensitive keys
//
// Logs go to stderr. Tokens are never written in clear: the Transport
// Client logs the request ID, method, path and outcome of every call, and
// anything that looks like a credential is masked before it is encoded.
package logger
