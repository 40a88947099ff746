package grpcserver

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func TestRequestIDInterceptor_KeepsIncomingID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, "abc"))
	var seen string
	_, err := requestIDInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"}, func(ctx context.Context, req any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", seen)
}

func TestRecoveryInterceptor(t *testing.T) {
	_, err := recoveryInterceptor(zap.NewNop())(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: "/x/y"}, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLoginLimiter_PerPeer(t *testing.T) {
	l := newLoginLimiter(1, zap.NewNop(), "/svc/Login")
	intercept := l.interceptor()
	ok := func(ctx context.Context, req any) (any, error) { return "ok", nil }

	peerCtx := func(addr string) context.Context {
		tcp, err := net.ResolveTCPAddr("tcp", addr)
		require.NoError(t, err)
		return peer.NewContext(context.Background(), &peer.Peer{Addr: tcp})
	}
	login := &grpc.UnaryServerInfo{FullMethod: "/svc/Login"}

	_, err := intercept(peerCtx("10.0.0.1:1000"), nil, login, ok)
	require.NoError(t, err)
	// Same host on another port shares the budget.
	_, err = intercept(peerCtx("10.0.0.1:2000"), nil, login, ok)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	_, err = intercept(peerCtx("10.0.0.2:1000"), nil, login, ok)
	assert.NoError(t, err)

	// Other methods are never limited.
	_, err = intercept(peerCtx("10.0.0.1:1000"), nil, &grpc.UnaryServerInfo{FullMethod: "/svc/Other"}, ok)
	assert.NoError(t, err)
}

func TestPeerKey_WithoutPeer(t *testing.T) {
	assert.Equal(t, "unknown", peerKey(context.Background()))
}
