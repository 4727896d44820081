// Package http implements the REST transport of the ObesiTrack API.
//
// It wires routes onto a chi router and converts service errors into JSON
// error bodies. Authentication, role checks, request tracing, access logging,
// Prometheus instrumentation and gzip handling are applied here before a
// request reaches the service layer.
package http
