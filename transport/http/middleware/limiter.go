package middleware

import (
	"backoffice/shared/cache"
	"backoffice/shared/constant"
	"backoffice/transport/http/response"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"

	bucketPage   = "page"
	bucketScroll = "scroll"

	scrollSuffix     = "/more"
	scrollMultiplier = 4
)

// window is one fixed rate limit window. It expires at ResetAt no matter how
// many requests land inside it.
type window struct {
	Count   int   `json:"count"`
	ResetAt int64 `json:"reset_at"`
}

func (w window) remaining(now time.Time) int {
	return max(1, int(w.ResetAt-now.Unix()))
}

// RateLimit counts requests per client and bucket in redis. Infinite-scroll
// fetches ("/more") have their own bucket so a burst of scrolling does not
// lock the operator out of page loads.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			bucket, budget := a.budget(r)
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			clientIP := a.getClientIP(r)
			cacheKey := cache.BuildKey(cacheKeyRateLimit, bucket, clientIP, a.getUA(r))
			now := time.Now()

			var current window

			err := a.cache.Get(r.Context(), cacheKey, &current)

			switch {
			case errors.Is(err, cache.Nil), err == nil && current.ResetAt <= now.Unix():
				current = window{Count: 1, ResetAt: now.Unix() + int64(windowSecs)}
			case err != nil:
				// An unreachable cache must not lock operators out.
				log.Warn().Err(err).Msg("rate limiter cache unavailable")
				next.ServeHTTP(w, r)

				return
			default:
				current.Count++
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(budget))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			if current.Count > budget {
				log.Warn().
					Str("client_ip", clientIP).
					Str("bucket", bucket).
					Int("count", current.Count).
					Msg("request limit exceeded")

				w.Header().Set(constant.RequestHeaderRateLimitRemaining, "0")
				w.Header().Set(constant.RequestHeaderRetryAfter, strconv.Itoa(current.remaining(now)))
				response.WithRequestLimitExceeded(w)

				return
			}

			if err = a.cache.Save(r.Context(), cacheKey, current, current.remaining(now)); err != nil {
				log.Warn().Err(err).Msg("failed to save rate limiter count")
			}

			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(budget-current.Count))

			next.ServeHTTP(w, r)
		})
	}
}

func (a *appMiddleware) budget(r *http.Request) (string, int) {
	limits := a.config.App.RateLimiter

	if !strings.HasSuffix(r.URL.Path, scrollSuffix) {
		return bucketPage, limits.MaxRequests
	}

	if limits.ScrollMaxRequests > 0 {
		return bucketScroll, limits.ScrollMaxRequests
	}

	return bucketScroll, limits.MaxRequests * scrollMultiplier
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

// getClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then RemoteAddr.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
