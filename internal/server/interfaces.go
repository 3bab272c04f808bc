package server

// Server defines the lifecycle of the transport server.
//
// RunServer blocks until a stop signal is received or the server fails.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer() error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
