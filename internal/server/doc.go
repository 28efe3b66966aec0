// Package server wires and runs the application's transport servers.
//
// It provides orchestration for the HTTP API server and the optional gRPC
// health endpoint, including startup, signal handling, and graceful shutdown
// of all enabled transports.
package server
