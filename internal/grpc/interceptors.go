package grpcserver

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the metadata key carrying the request id both ways.
const RequestIDHeader = "x-request-id"

type contextKey string

const requestIDKey contextKey = "requestID"

// RequestIDFromContext returns the id assigned by the request id interceptor.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// requestIDInterceptor keeps the caller's x-request-id or assigns a fresh one,
// and echoes it back in the response header.
func requestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		var requestID string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get(RequestIDHeader); len(v) > 0 {
				requestID = v[0]
			}
		}
		if requestID == "" {
			requestID = uuid.New().String()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, requestID))
		return handler(context.WithValue(ctx, requestIDKey, requestID), req)
	}
}

// recoveryInterceptor turns a handler panic into codes.Internal.
func recoveryInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.String("request_id", RequestIDFromContext(ctx)),
					zap.String("method", info.FullMethod),
					zap.Any("error", r),
				)
				resp, err = nil, status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

func loggingInterceptor(log *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			log.Warn("grpc request failed", append(fields, zap.Error(err))...)
		} else {
			log.Info("grpc request", fields...)
		}
		return resp, err
	}
}

// loginLimiter caps login attempts per peer address.
type loginLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	methods  map[string]struct{}
	log      *zap.Logger
}

// newLoginLimiter allows perMinute attempts per peer on the given methods.
// A non-positive perMinute disables the limit.
func newLoginLimiter(perMinute int, log *zap.Logger, methods ...string) *loginLimiter {
	l := &loginLimiter{
		limiters: make(map[string]*rate.Limiter),
		burst:    perMinute,
		methods:  make(map[string]struct{}, len(methods)),
		log:      log,
	}
	if perMinute > 0 {
		l.rate = rate.Limit(float64(perMinute) / time.Minute.Seconds())
	}
	for _, m := range methods {
		l.methods[m] = struct{}{}
	}
	return l
}

func (l *loginLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.limiters[key]
	if !ok {
		lim = rate.NewLimiter(l.rate, l.burst)
		l.limiters[key] = lim
	}
	return lim.Allow()
}

func (l *loginLimiter) interceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := l.methods[info.FullMethod]; !ok || l.burst <= 0 {
			return handler(ctx, req)
		}
		key := peerKey(ctx)
		if !l.allow(key) {
			l.log.Warn("login rate limit exceeded",
				zap.String("request_id", RequestIDFromContext(ctx)),
				zap.String("peer", key),
			)
			return nil, status.Error(codes.ResourceExhausted, "too many login attempts, try again later")
		}
		return handler(ctx, req)
	}
}

// peerKey is the caller's host, or the whole address when it has no port.
func peerKey(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
