package grpcserver

import (
	"context"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	apiv1 "movieBrowser/api/v1"
	"movieBrowser/internal/auth"
	"movieBrowser/internal/config"
)

const (
	healthCheckMethod = "/grpc.health.v1.Health/Check"
	defaultAddress    = ":50051"
)

// Services are the dependencies behind the three API services.
type Services struct {
	Users   auth.UserLookup
	Auth    Authenticator
	Manager UserAdmin
	Catalog MovieCatalog
}

// NewServer builds a gRPC server with every service and the health service
// registered. Interceptors run in order: request id, recovery, logging, login
// rate limit, authentication.
func NewServer(cfg *config.Config, svc Services, log *zap.Logger) (*grpc.Server, *health.Server) {
	if cfg == nil {
		panic("config is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	limiter := newLoginLimiter(cfg.GRPC.LoginRatePerMinute, log, apiv1.AuthService_Login_FullMethodName)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		requestIDInterceptor(),
		recoveryInterceptor(log),
		loggingInterceptor(log),
		limiter.interceptor(),
		auth.NewUnaryAuthInterceptor(cfg.Auth.JWTSecret, apiv1.AuthService_Login_FullMethodName, healthCheckMethod),
	))

	apiv1.RegisterAuthServiceServer(srv, &AuthServer{Auth: svc.Auth, Users: svc.Users})
	apiv1.RegisterAdminServiceServer(srv, &AdminServer{Users: svc.Users, Manager: svc.Manager})
	apiv1.RegisterCatalogServiceServer(srv, &CatalogServer{Users: svc.Users, Catalog: svc.Catalog})

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)
	for _, name := range []string{"", apiv1.AuthServiceName, apiv1.AdminServiceName, apiv1.CatalogServiceName} {
		hs.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	return srv, hs
}

// StartGRPC starts the gRPC server on the configured address and returns a
// shutdown function.
func StartGRPC(cfg *config.Config, svc Services, log *zap.Logger) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	addr := cfg.GRPC.Address
	if addr == "" {
		addr = defaultAddress
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	srv, hs := NewServer(cfg, svc, log)
	go func() {
		if err := srv.Serve(lis); err != nil {
			log.Error("grpc serve", zap.Error(err))
		}
	}()
	log.Info("grpc server listening", zap.String("address", lis.Addr().String()))

	return func(ctx context.Context) error {
		hs.Shutdown()
		done := make(chan struct{})
		go func() { srv.GracefulStop(); close(done) }()
		select {
		case <-done:
			return nil
		case <-ctx.Done():
			srv.Stop()
			return ctx.Err()
		}
	}, nil
}
