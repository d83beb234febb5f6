package server

import (
	"context"
	"log/slog"
	"net"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/oggyb/skillswap/internal/auth"
	svcErr "github.com/oggyb/skillswap/internal/errors"
	"github.com/oggyb/skillswap/internal/rpc"
)

// PublicMethods can be called without a bearer token.
var PublicMethods = map[string]bool{
	rpc.MethodRegister:             true,
	rpc.MethodLogin:                true,
	rpc.MethodListCategories:       true,
	rpc.MethodListSkills:           true,
	rpc.MethodLookupSkill:          true,
	"/grpc.health.v1.Health/Check": true,
	"/grpc.health.v1.Health/Watch": true,
	"/grpc.health.v1.Health/List":  true,
}

// LoggingInterceptor logs method, status code and duration of every call.
func LoggingInterceptor(log *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		code := status.Code(err)
		attrs := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(start)}
		switch code {
		case codes.OK:
			log.Debug("rpc", attrs...)
		case codes.Internal, codes.Unknown, codes.DataLoss:
			log.Error("rpc", append(attrs, "err", err)...)
		default:
			log.Info("rpc", append(attrs, "err", err)...)
		}
		return resp, err
	}
}

// AuthInterceptor resolves the bearer token into an auth.Identity on the
// context. Methods outside public need a valid token.
func AuthInterceptor(tokens *auth.TokenManager, public map[string]bool) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		token := rpc.BearerToken(ctx)
		if token == "" {
			if public[info.FullMethod] {
				return handler(ctx, req)
			}
			return nil, svcErr.Map(svcErr.Unauthenticated("sign in required"))
		}

		id, err := tokens.Verify(token)
		if err != nil {
			if public[info.FullMethod] {
				return handler(ctx, req)
			}
			return nil, svcErr.Map(err)
		}
		return handler(auth.WithIdentity(ctx, id), req)
	}
}

// RateLimiter hands out one token bucket per caller. Signed-in callers are
// keyed by user id, anonymous ones by peer host. Buckets idle for longer than
// it takes them to refill are dropped.
type RateLimiter struct {
	limit rate.Limit
	burst int
	idle  time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

const (
	minBucketIdle = 10 * time.Minute
	maxBuckets    = 100_000
)

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	idle := minBucketIdle
	if rps > 0 {
		// an evicted bucket must already be full again
		if refill := time.Duration(float64(burst) / rps * float64(time.Second)); refill > idle {
			idle = refill
		}
	}
	return &RateLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		idle:    idle,
		now:     time.Now,
		buckets: make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket.
func (l *RateLimiter) Allow(key string) bool {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastSweep) >= l.idle || len(l.buckets) >= maxBuckets {
		l.sweep(now)
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	return b.lim.AllowN(now, 1)
}

// sweep drops idle buckets. When the map is still full, the least recently
// seen half goes too. Callers hold l.mu.
func (l *RateLimiter) sweep(now time.Time) {
	l.lastSweep = now
	for k, b := range l.buckets {
		if now.Sub(b.seen) >= l.idle {
			delete(l.buckets, k)
		}
	}
	if len(l.buckets) < maxBuckets {
		return
	}

	keys := make([]string, 0, len(l.buckets))
	for k := range l.buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return l.buckets[keys[i]].seen.Before(l.buckets[keys[j]].seen) })
	for _, k := range keys[:len(keys)/2] {
		delete(l.buckets, k)
	}
}

func (l *RateLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Interceptor rejects calls over the limit with ResourceExhausted. It must
// run after AuthInterceptor to see the identity.
func (l *RateLimiter) Interceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if !l.Allow(callerKey(ctx)) {
			return nil, status.Error(codes.ResourceExhausted, "too many requests, slow down")
		}
		return handler(ctx, req)
	}
}

// callerKey ignores the client port, so reconnecting does not reset the
// bucket.
func callerKey(ctx context.Context) string {
	if id, err := auth.FromContext(ctx); err == nil {
		return "user:" + id.ID
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		addr := p.Addr.String()
		if host, _, err := net.SplitHostPort(addr); err == nil {
			return "peer:" + host
		}
		return "peer:" + addr
	}
	return "anonymous"
}
