package middleware

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/meetzy/meetzy-backend/pkg/clientip"
	"golang.org/x/time/rate"
)

// SecurityHeaders sets security-related response headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")
		w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// --- Login rate limiting (per-IP token bucket for /api/auth/login) ---

const (
	loginRateLimitRPS   = 0.2 // one attempt per 5s sustained
	loginRateLimitBurst = 5
	loginLimiterTTL     = 30 * time.Minute
	loginCleanupEvery   = 5 * time.Minute
)

type limiterEntry struct {
	limiter *rate.Limiter
	lastUse time.Time
}

var (
	loginEntries    = make(map[string]*limiterEntry)
	loginEntriesMu  sync.Mutex
	loginCleanupRun bool
)

func getLoginLimiter(ip string) *rate.Limiter {
	loginEntriesMu.Lock()
	defer loginEntriesMu.Unlock()

	if !loginCleanupRun {
		loginCleanupRun = true
		go func() {
			for range time.Tick(loginCleanupEvery) {
				loginEntriesMu.Lock()
				for ip, e := range loginEntries {
					if time.Since(e.lastUse) > loginLimiterTTL {
						delete(loginEntries, ip)
					}
				}
				loginEntriesMu.Unlock()
			}
		}()
	}

	e, ok := loginEntries[ip]
	if !ok {
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(loginRateLimitRPS), loginRateLimitBurst)}
		loginEntries[ip] = e
	}
	e.lastUse = time.Now()
	return e.limiter
}

// LoginRateLimit throttles credential endpoints per IP, independent of the
// global Redis limiter, so password guessing is slowed even when Redis is
// down.
func LoginRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/auth/login") {
			if !getLoginLimiter(clientip.RealClientIP(r)).Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"success":false,"message":"Too many login attempts. Please try again later."}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// ProductionSecurity is the middleware chain enabled when ENV=production.
func ProductionSecurity() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		SecurityHeaders,
		LoginRateLimit,
	}
}
