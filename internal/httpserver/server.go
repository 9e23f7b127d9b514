package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/logger"
	"golang.org/x/time/rate"
)

type Config struct {
	Port           string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Handler wraps routes with request ids, access logging and metrics, CORS,
// then rate limiting, outermost first.
func Handler(cfg *Config, routes http.Handler, log logger.ZapLogger) http.Handler {
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), burst)
	}

	h := rateLimitMiddleware(limiter)(routes)
	h = corsMiddleware(h)
	h = accessLogMiddleware(log)(h)
	h = requestIDMiddleware(h)
	return h
}

func New(cfg *Config, routes http.Handler, log logger.ZapLogger) *http.Server {
	port := cfg.Port
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return &http.Server{
		Addr:              port,
		Handler:           Handler(cfg, routes, log),
		ReadHeaderTimeout: 10 * time.Second,
	}
}
