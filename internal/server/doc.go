// Package server wires and runs the application's transport servers.
//
// It owns the HTTP API listener and the optional gRPC health listener,
// starts them side by side and shuts both down gracefully on SIGTERM,
// SIGINT or SIGQUIT, or as soon as either of them fails.
package server
