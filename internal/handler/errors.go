package handler

import "errors"

var errNoHandlersAreCreated = errors.New("no handlers are created: both HTTP and gRPC addresses are empty")
