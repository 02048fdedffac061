package api

import (
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/royentertainment/roy-server/internal/ratelimit"
)

// RateLimiter wraps KeyedRateLimiter for API use.
type RateLimiter = ratelimit.KeyedRateLimiter

// NewRateLimiter creates a per-client rate limiter.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return ratelimit.New(rps, burst)
}

// rateLimitSuggest is a huma operation middleware that rejects requests over
// the per-IP suggestion budget with 429.
func (s *Server) rateLimitSuggest(ctx huma.Context, next func(huma.Context)) {
	key := clientIP(ctx)

	if !s.suggestLimiter.Allow(key) {
		s.logger.Warn("rate limit exceeded", "ip", key, "path", ctx.URL().Path)
		_ = huma.WriteErr(s.api, ctx, 429, "Too many requests. Please try again later.")
		return
	}

	next(ctx)
}

// clientIP extracts the client IP from the request context.
// Checks X-Forwarded-For and X-Real-IP headers before falling back to the
// remote address.
func clientIP(ctx huma.Context) string {
	if xff := ctx.Header("X-Forwarded-For"); xff != "" {
		// First IP in the chain is the client.
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return xff
	}

	if xri := ctx.Header("X-Real-IP"); xri != "" {
		return xri
	}

	addr := ctx.RemoteAddr()
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[:i]
	}
	return addr
}
