// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - context helpers (ToContext/FromContext/WithName/WithKV/WithOptions),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, WarnKV, etc.).
//
// Every component of the controller takes a context and extracts the logger
// from it, so the control loop, the button handler and the background load
// each log under their own name.
package logger
