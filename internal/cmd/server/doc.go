// Package serverrun starts the HTTP service and blocks until
// shutdown. It exists so the CLI stays thin.
package serverrun
