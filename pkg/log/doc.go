// Package log provides structured logging for cuid2 services.
//
// A Logger carries a minimum level, a set of bound fields, a
// Formatter, and one or more Outputs. Loggers are cheap to derive:
// With and WithComponent return children sharing the parent's
// formatter and outputs.
//
// The core identifier library (pkg/cuid2) does not log; this package
// serves the server, runtime, and CLI layers.
package log
