package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/oggyb/skillswap/internal/app"
)

// NewGRPCServer builds a gRPC server with the interceptor chain
// (logging → auth → rate limit), the health service and every registrar.
func NewGRPCServer(appCtx *app.AppContext, registrars ...Registrar) (*grpc.Server, *health.Server) {
	interceptors := []grpc.UnaryServerInterceptor{
		LoggingInterceptor(appCtx.Logger),
		AuthInterceptor(appCtx.Tokens, PublicMethods),
	}
	if rl := appCtx.Config.RateLimit; rl.RPS > 0 {
		interceptors = append(interceptors, NewRateLimiter(rl.RPS, rl.Burst).Interceptor())
	}

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(interceptors...))

	// register all services
	for _, r := range registrars {
		r.Register(grpcServer)
	}

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	for name := range grpcServer.GetServiceInfo() {
		healthServer.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	return grpcServer, healthServer
}

// StartGRPCServer listens on GRPC_HOST:GRPC_PORT and serves until ctx is
// done, then drains in-flight calls.
func StartGRPCServer(ctx context.Context, appCtx *app.AppContext, registrars ...Registrar) error {
	addr := net.JoinHostPort(appCtx.Config.GRPC.Host, appCtx.Config.GRPC.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return Serve(ctx, lis, appCtx, registrars...)
}

// Serve runs the server on lis until ctx is done.
func Serve(ctx context.Context, lis net.Listener, appCtx *app.AppContext, registrars ...Registrar) error {
	grpcServer, healthServer := NewGRPCServer(appCtx, registrars...)

	errCh := make(chan error, 1)
	go func() { errCh <- grpcServer.Serve(lis) }()

	select {
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	case <-ctx.Done():
		appCtx.Logger.Info("shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	}
}
