// Package server wires and runs the HTTP server of the accounts service.
//
// It covers startup, signal handling, and graceful shutdown.
package server
