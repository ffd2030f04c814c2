package httpserver

import (
	"net/http"

	"github.com/dmitrijs2005/brewhaven/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps groups what NewRouter needs.
type RouterDeps struct {
	Accounts           AccountService
	Diagnostics        DiagnosticsReporter
	Metrics            *Metrics
	Logger             logging.Logger
	CORSAllowedOrigins []string
}

// NewRouter builds the route table. Middleware order:
//
//	RequestID → RealIP → access log → recovery → CORS
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestIDMiddleware)
	r.Use(newAccessLogMiddleware(deps.Logger, deps.Metrics))
	r.Use(newRecoveryMiddleware(deps.Logger))
	r.Use(newCORSMiddleware(deps.CORSAllowedOrigins))

	h := NewHandler(deps.Accounts, deps.Diagnostics, deps.Metrics, deps.Logger)

	r.Get("/", h.Root)
	r.Get("/api/hello", h.Hello)
	r.Get("/test", h.Diagnostics)
	r.Get("/health", h.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.Signup)
		r.Post("/login", h.Login)
		r.Get("/me", h.Me)
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
