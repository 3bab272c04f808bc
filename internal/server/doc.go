// Package server runs the HTTP server of the serve application.
//
// It binds a unix socket or a TCP address taken from the resolved settings,
// serves until SIGTERM, SIGINT or SIGQUIT is received and then shuts down
// gracefully.
package server
