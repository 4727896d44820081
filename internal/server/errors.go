package server

import "errors"

var (
	// errNoServersAreCreated means neither an HTTP nor a gRPC address was
	// configured together with its handler.
	errNoServersAreCreated = errors.New("no servers are created: configure an HTTP or gRPC address")
	errNoServersToRun      = errors.New("no servers to run")
)
