// Package api wires the intake services to their HTTP routes.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"websutech/internal/config"
	"websutech/internal/metrics"
	"websutech/internal/services"
)

// Services bundles everything the router mounts.
type Services struct {
	Contact   *services.ContactService
	Inquiries *services.InquiryService
	Documents *services.DocumentService
	Security  *services.SecurityService
	Auth      *services.AuthService
	Health    *services.HealthService
}

// NewRouter builds the HTTP handler: middleware chain, API routes and the
// Prometheus endpoint.
func NewRouter(cfg *config.Config, svcs Services, log *zap.SugaredLogger) http.Handler {
	h := &handlers{
		contact:   svcs.Contact,
		inquiries: svcs.Inquiries,
		documents: svcs.Documents,
		security:  svcs.Security,
		auth:      svcs.Auth,
		health:    svcs.Health,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(securityHeaders(cfg))
	r.Use(corsHandler(cfg))
	r.Use(requestLogging(log))
	r.Use(metrics.PrometheusMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.healthCheck)

		r.Route("/contact", func(r chi.Router) {
			r.Post("/submit", h.submitContact)
			r.Post("/newsletter", h.subscribeNewsletter)
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Post("/buyer", h.submitBuyerInquiry)
			r.Post("/seller", h.submitSellerInquiry)
			r.Post("/mandate", h.submitMandateApplication)
			r.Get("/status/{id}", h.inquiryStatus)

			r.Group(func(r chi.Router) {
				r.Use(h.requireAdmin)
				r.Get("/", h.listInquiries)
			})
		})

		r.Route("/documents", func(r chi.Router) {
			r.Get("/list", h.listDocuments)
			r.Get("/category/{category}", h.documentCategory)
			r.Post("/request/{id}", h.requestDocument)
		})

		r.Post("/security/log", h.receiveSecurityLog)
		r.Post("/auth/login", h.login)

		r.NotFound(h.notFound)
	})

	return r
}
