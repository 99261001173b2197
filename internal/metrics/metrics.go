package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// Business metrics
	contactSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact form submissions",
		},
	)

	duplicateSubmissionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "duplicate_submissions_total",
			Help: "Total number of suppressed duplicate contact submissions",
		},
	)

	inquiriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiries_total",
			Help: "Total number of trade inquiries",
		},
		[]string{"type"}, // buyer, seller, mandate
	)

	newsletterSubscriptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "Total number of newsletter subscriptions",
		},
	)

	documentRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "document_requests_total",
			Help: "Total number of document access requests",
		},
	)

	emailSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "email_sends_total",
			Help: "Total number of outbound email attempts",
		},
		[]string{"recipient", "status"}, // submitter/ops, delivered/failed
	)

	authAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"status"}, // success, failure
	)

	snapshotWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "snapshot_writes_total",
			Help: "Total number of store snapshot writes",
		},
		[]string{"status"}, // success, error
	)
)

// PrometheusMiddleware creates a middleware that records Prometheus metrics
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip metrics endpoint itself
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		// The chi route pattern keeps label cardinality bounded for
		// endpoints with path parameters.
		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, endpoint, statusCode).Inc()
		httpRequestDuration.WithLabelValues(r.Method, endpoint, statusCode).Observe(duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecordContactSubmission records a new contact form submission
func RecordContactSubmission() {
	contactSubmissionsTotal.Inc()
}

// RecordDuplicateSubmission records a suppressed duplicate submission
func RecordDuplicateSubmission() {
	duplicateSubmissionsTotal.Inc()
}

// RecordInquiry records a new trade inquiry of the given kind
func RecordInquiry(kind string) {
	inquiriesTotal.WithLabelValues(kind).Inc()
}

// RecordNewsletterSubscription records a newsletter signup
func RecordNewsletterSubscription() {
	newsletterSubscriptionsTotal.Inc()
}

// RecordDocumentRequest records a document access request
func RecordDocumentRequest() {
	documentRequestsTotal.Inc()
}

// RecordEmailSend records an outbound email attempt
func RecordEmailSend(recipient string, delivered bool) {
	status := "failed"
	if delivered {
		status = "delivered"
	}
	emailSendsTotal.WithLabelValues(recipient, status).Inc()
}

// RecordAuthAttempt records an authentication attempt
func RecordAuthAttempt(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	authAttemptsTotal.WithLabelValues(status).Inc()
}

// RecordSnapshotWrite records a store snapshot write
func RecordSnapshotWrite(err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	snapshotWritesTotal.WithLabelValues(status).Inc()
}
