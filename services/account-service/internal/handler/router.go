package handler

import (
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vasapolrittideah/school-site-api/shared/middleware"
	"github.com/vasapolrittideah/school-site-api/shared/provider"
)

// RouterParams holds the dependencies of NewRouter.
type RouterParams struct {
	Backend        provider.Backend
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string

	// TrustedProxies are the peers whose X-Forwarded-For and X-Real-IP
	// headers name the client. Empty means the socket address is the client.
	TrustedProxies []netip.Prefix

	// RatePerSecond and RateBurst limit the auth and public form endpoints
	// per client address.
	RatePerSecond float64
	RateBurst     int
}

// NewRouter mounts every endpoint of the service.
func NewRouter(h *Handler, params RouterParams) http.Handler {
	origins := params.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	limiter := newClientLimiter(params.RatePerSecond, params.RateBurst)
	signedIn := middleware.RequireSignIn(h.rejectAuth)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(trustedRealIP(params.TrustedProxies))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(h.metrics.Instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(params.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/site", h.Site)

		r.Group(func(r chi.Router) {
			r.Use(h.rateLimit(limiter))
			r.Post("/contact", h.SubmitContact)
			r.Post("/newsletter", h.SubscribeNewsletter)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthHandle(params.Backend, h.logger, h.rejectAuth))

			r.Route("/auth", func(r chi.Router) {
				r.Use(h.rateLimit(limiter))
				r.Post("/register", h.Register)
				r.Post("/login", h.Login)
				r.Post("/google", h.LoginWithGoogle)
				r.Post("/logout", h.Logout)
			})

			r.Route("/me", func(r chi.Router) {
				r.Use(signedIn)
				r.Use(h.requireActive)
				r.Get("/", h.Me)
				r.Patch("/", h.UpdateMe)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(signedIn)
				r.Use(h.requireAdmin)
				r.Get("/users", h.ListUsers)
				r.Put("/users/{id}/role", h.SetRole)
				r.Put("/users/{id}/ban", h.SetBanned)
				r.Get("/messages", h.ListContactMessages)
			})
		})
	})

	return r
}
