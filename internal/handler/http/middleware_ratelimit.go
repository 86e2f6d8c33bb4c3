package http

import (
	"net"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/ratelimit"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
)

// withRateLimit returns a middleware enforcing the fixed-window limit of
// the given class for the requesting client. The client identity is the
// remote IP as rewritten by chi's RealIP middleware. Over-cap requests are
// rejected with HTTP 429 and a Retry-After header before reaching the
// downstream handler.
func (h *Handler) withRateLimit(class ratelimit.Class) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := logger.FromRequest(r)

			client := clientAddr(r)

			allowed, retryAfter := h.limiter.Allow(class, client)
			if !allowed {
				log.Warn().
					Str("client", client).
					Str("class", string(class)).
					Dur("retry_after", retryAfter).
					Msg("rate limit exceeded")

				w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
				utils.WriteJSON(w, models.ErrorResponse{
					Error: models.ErrorBody{Kind: KindRateLimited, Message: "too many requests, try again later"},
				}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr strips the port from the remote address; RealIP already
// rewrote RemoteAddr to a bare IP when a proxy header was present.
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
