package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"movieBrowser/internal/password"
	"movieBrowser/internal/testutil"
	"movieBrowser/models"
	"movieBrowser/repository"
)

func TestRequirePrincipal(t *testing.T) {
	_, err := RequirePrincipal(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := WithPrincipal(context.Background(), &Principal{ID: 2, Username: "alice", Role: models.RoleUser})
	p, err := RequirePrincipal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
}

func TestRequireAdmin_WithDBRoleCheck(t *testing.T) {
	users := repository.NewUserRepository(testutil.OpenInMemoryDB(t, "authadmin"), password.SHA256{})
	ctx := context.Background()
	require.NoError(t, users.Initialize(ctx))

	alice, err := users.Create(ctx, "alice", "pw", models.RoleUser)
	require.NoError(t, err)

	// A plain user token is refused outright.
	uctx := WithPrincipal(ctx, &Principal{ID: alice.ID, Username: "alice", Role: models.RoleUser})
	_, err = RequireAdmin(uctx, users)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	// Spoofed principal role=admin but DB role is user.
	pctx := WithPrincipal(ctx, &Principal{ID: alice.ID, Username: "alice", Role: models.RoleAdmin})
	_, err = RequireAdmin(pctx, users)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	// Make real admin.
	role := models.RoleAdmin
	_, err = users.Update(ctx, alice.ID, models.UserUpdate{Role: &role})
	require.NoError(t, err)
	u, err := RequireAdmin(pctx, users)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, u.ID)

	// Deleted users lose access.
	_, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	_, err = RequireAdmin(pctx, users)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	_, err = RequireUser(pctx, nil)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestUnaryAuthInterceptor(t *testing.T) {
	secret := "s3cr3t"
	interceptor := NewUnaryAuthInterceptor(secret, "/health")

	// Allowlisted path: no header -> handler executes, no principal.
	hCalled := false
	_, err := interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/health"}, func(ctx context.Context, req any) (any, error) {
		hCalled = true
		_, ok := FromContext(ctx)
		assert.False(t, ok, "expected no principal on allowlisted path")
		return 123, nil
	})
	require.NoError(t, err)
	assert.True(t, hCalled)

	// Protected path without token.
	_, err = interceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler must not run")
		return nil, nil
	})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	// Authenticated path: with token -> principal injected.
	tok := testutil.GenerateJWTHS256(t, secret, 4, "bob", "user")
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	_, err = interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Op"}, func(ctx context.Context, req any) (any, error) {
		p, ok := FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, &Principal{ID: 4, Username: "bob", Role: models.RoleUser}, p)
		return nil, nil
	})
	require.NoError(t, err)
}
