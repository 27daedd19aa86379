package api

import (
	"time"

	"github.com/okian/upskill/pkg/logger"
)

// Defaults for the HTTP surface.
const (
	DefaultRateLimitRequests = 120
	DefaultRateLimitWindow   = time.Minute
	DefaultMaxBodyBytes      = 1 << 20
)

// Option applies a configuration option to the Server.
type Option func(*Server)

// WithCORSOrigins sets the allowed CORS origins.
func WithCORSOrigins(origins []string) Option {
	return func(s *Server) {
		s.corsOrigins = append([]string(nil), origins...)
	}
}

// WithRateLimit limits plan requests per client IP. Zero requests disables it.
func WithRateLimit(requests int, window time.Duration) Option {
	return func(s *Server) {
		if requests >= 0 && window > 0 {
			s.rateRequests = requests
			s.rateWindow = window
		}
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the logger used by handlers and the access log.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
