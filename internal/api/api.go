// Package api exposes the classifier over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/sells-group/firm-profiler/internal/profile"
)

// maxBodyBytes caps a classify request body.
const maxBodyBytes = 16 << 20

// Options configures a Server.
type Options struct {
	Weights      profile.WeightSet // used when a request carries no weights
	MaxRecords   int
	RateLimitRPS float64 // 0 disables rate limiting
	RateBurst    int
	CORSOrigins  []string
}

// Server routes HTTP requests to a Classifier.
type Server struct {
	classifier *profile.Classifier
	opts       Options
	limiter    *rate.Limiter
	router     chi.Router
}

// NewServer builds the router for c.
func NewServer(c *profile.Classifier, opts Options) *Server {
	limit := rate.Inf
	if opts.RateLimitRPS > 0 {
		limit = rate.Limit(opts.RateLimitRPS)
	}
	burst := opts.RateBurst
	if burst < 1 {
		burst = 1
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}

	s := &Server{
		classifier: c,
		opts:       opts,
		limiter:    rate.NewLimiter(limit, burst),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/classify", s.handleClassify)
		r.Get("/rules", s.handleRules)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
