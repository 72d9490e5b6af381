package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/GnanaJothi-79/elite-device-boutique/internal/api/response"
	"golang.org/x/time/rate"
)

type ILimiter interface {
	Allow(key string) bool
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedTokenBucket 每個 key 一個 token bucket
// 超過 idleTTL 沒出現的 key 在下次 sweep 時移除
type KeyedTokenBucket struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	rate      rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

var _ ILimiter = (*KeyedTokenBucket)(nil)

func NewKeyedTokenBucket(ratePS float64, burst int) *KeyedTokenBucket {
	if burst < 1 {
		burst = 1
	}
	return &KeyedTokenBucket{
		visitors: make(map[string]*visitor),
		rate:     rate.Limit(ratePS),
		burst:    burst,
		idleTTL:  10 * time.Minute,
		now:      time.Now,
	}
}

func (b *KeyedTokenBucket) Allow(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	if now.Sub(b.lastSweep) > b.idleTTL {
		for k, v := range b.visitors {
			if now.Sub(v.lastSeen) > b.idleTTL {
				delete(b.visitors, k)
			}
		}
		b.lastSweep = now
	}

	v, ok := b.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(b.rate, b.burst)}
		b.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// NewRateLimitMiddleware 依 client IP 限流
// 需要放在 middleware.RealIP 之後
func NewRateLimitMiddleware(limiter ILimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				response.ErrorJSON(w, http.StatusTooManyRequests, "Too Many Requests", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
