package auth

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"movieBrowser/models"
)

// UserLookup resolves the stored record behind a principal.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer JWT from incoming metadata and injects the Principal into the context.
// Methods listed in allowUnauthenticated will bypass authentication (e.g., login, health checks).
func NewUnaryAuthInterceptor(secret string, allowUnauthenticated ...string) grpc.UnaryServerInterceptor {
	allow := make(map[string]struct{}, len(allowUnauthenticated))
	for _, m := range allowUnauthenticated {
		allow[strings.TrimSpace(m)] = struct{}{}
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := allow[info.FullMethod]; ok {
			return handler(ctx, req)
		}
		p, err := ParseFromMD(ctx, secret)
		if err != nil {
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
		return handler(WithPrincipal(ctx, p), req)
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok || p == nil {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	return p, nil
}

// RequireUser ensures the principal still maps to a stored user and returns
// that record. Tokens of deleted users are refused.
func RequireUser(ctx context.Context, users UserLookup) (*models.User, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		return nil, status.Error(codes.Internal, "users repository not configured")
	}
	u, err := users.GetByID(ctx, p.ID)
	if err != nil {
		return nil, status.Errorf(codes.Unavailable, "get user: %v", err)
	}
	if u == nil {
		return nil, status.Error(codes.Unauthenticated, "user no longer exists")
	}
	return u, nil
}

// RequireAdmin ensures the caller is an admin principal AND that the underlying
// user still holds role 'admin'. A token issued before a demotion is refused.
func RequireAdmin(ctx context.Context, users UserLookup) (*models.User, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "only admin can perform this action")
	}
	u, err := RequireUser(ctx, users)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, status.Error(codes.PermissionDenied, "only admin can perform this action")
	}
	return u, nil
}
