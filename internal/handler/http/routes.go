package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, withLogging, withMetrics, middleware.Recoverer)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}
	router.Use(withGzipRequest, withBodyLimit(maxBodyBytes), middleware.Compress(5))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/", h.root)
		r.Get("/health", h.health)
		r.Get("/metrics", h.modelInfo)
		r.Handle("/metrics/prometheus", promhttp.Handler())

		r.Post("/auth/register", h.register)
		r.Post("/auth/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/auth/me", h.me)

		r.Route("/predict", func(r chi.Router) {
			r.Post("/", h.predict)
			r.Get("/history", h.history)
			r.Get("/history/{id}", h.getPrediction)
			r.Delete("/history/{id}", h.deletePrediction)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Get("/users", h.adminListUsers)
			r.Post("/users", h.adminCreateUser)
			r.Patch("/users/{id}", h.adminUpdateUser)
			r.Delete("/users/{id}", h.adminDeleteUser)
			r.Get("/users/{id}/predictions", h.adminUserPredictions)
			r.Get("/stats", h.adminStats)
			r.Get("/predictions/recent", h.adminRecentPredictions)
			r.Delete("/predictions/{id}", h.adminDeletePrediction)
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed(router))

	return router
}
