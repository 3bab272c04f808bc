// Package http implements the HTTP transport of the serve application.
//
// It exposes the build version, a liveness probe and a read-only view of the
// resolved settings. Request tracing and access logging are handled here
// before requests reach the service layer.
package http
