package server

import "google.golang.org/grpc"

// Registrar adds one skillswap service to a server. Every package under
// internal/service exposes one through NewRegistrar.
type Registrar interface {
	Register(s grpc.ServiceRegistrar)
}
