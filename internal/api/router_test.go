package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websutech/internal/config"
	"websutech/internal/services"
	"websutech/internal/store"
	"websutech/internal/util"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	hash, err := util.HashPassword("admin-password")
	require.NoError(t, err)

	cfg := &config.Config{
		App: config.AppConfig{Name: "Websutech API", Version: "test", Debug: true},
		Auth: config.AuthConfig{
			SecretKey:          "test-secret-key",
			TokenExpiryMinutes: 30,
			AdminUsername:      "admin",
			AdminPasswordHash:  hash,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         86400,
		},
		Email: config.EmailConfig{
			SMTPHost:    "smtp.example.com",
			SMTPPort:    587,
			FromEmail:   "contact@websutech.com",
			SendTimeout: time.Second,
			// no credentials: mailer runs in development mode
		},
		Dedup: config.DedupConfig{Window: 5 * time.Second, TTL: time.Minute},
	}

	log := zap.NewNop().Sugar()
	st := store.Open(filepath.Join(t.TempDir(), "storage.json"), time.Hour, log)
	t.Cleanup(func() { st.Close() })

	mailer := services.NewSMTPMailer(&cfg.Email, log)
	dispatcher := services.NewDispatcher(mailer, cfg.Email.OpsEmail, log)
	filter := services.NewSubmissionFilter(cfg.Dedup.Window, cfg.Dedup.TTL)

	handler := NewRouter(cfg, Services{
		Contact:   services.NewContactService(st, dispatcher, filter, log),
		Inquiries: services.NewInquiryService(st, dispatcher, log),
		Documents: services.NewDocumentService(st, log),
		Security:  services.NewSecurityService(log),
		Auth:      services.NewAuthService(&cfg.Auth, log),
		Health:    services.NewHealthService(),
	}, log)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, srv *httptest.Server, path string, body any) (*http.Response, map[string]any) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := srv.Client().Post(srv.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func getJSON(t *testing.T, srv *httptest.Server, path, token string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv, "/api/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestContactSubmitEndpoint(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"subject": "Pricing",
		"message": "Please send your price list.",
	}

	resp, body := postJSON(t, srv, "/api/contact/submit", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["emailSent"])
	messageID, _ := body["messageId"].(string)
	assert.True(t, strings.HasPrefix(messageID, "CONTACT-"))
	assert.Nil(t, body["duplicate"])

	// An identical resubmission inside the window returns the original id.
	resp, body = postJSON(t, srv, "/api/contact/submit", payload)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["duplicate"])
	assert.Equal(t, messageID, body["messageId"])
}

func TestContactSubmitValidationEnvelope(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/api/contact/submit", map[string]any{
		"name":    "J",
		"email":   "not-an-email",
		"subject": "",
		"message": "",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	fields, ok := body["errors"].([]any)
	require.True(t, ok)
	assert.Len(t, fields, 4)
}

func TestBuyerInquiryAndStatus(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/api/inquiries/buyer", map[string]any{
		"companyName":     "Acme Trading GmbH",
		"contactPerson":   "Jane Doe",
		"email":           "jane@acme.example",
		"phone":           "+4915123456789",
		"country":         "Germany",
		"productCategory": "petroleum",
		"specificProduct": "EN590 10ppm",
		"quantity":        "50,000 MT",
		"ndaAgreed":       true,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inquiryID, _ := body["inquiryId"].(string)
	require.True(t, strings.HasPrefix(inquiryID, "BUY-"))

	resp, body = getJSON(t, srv, "/api/inquiries/status/"+inquiryID, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	inquiry, ok := body["inquiry"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, inquiryID, inquiry["id"])
	assert.Equal(t, "buyer", inquiry["type"])
	assert.Equal(t, "new", inquiry["status"])
	assert.Equal(t, "EN590 10ppm", inquiry["product"])
	assert.NotContains(t, inquiry, "email", "status projection never exposes contact details")
	assert.NotContains(t, inquiry, "phone")
}

func TestInquiryStatusNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv, "/api/inquiries/status/BUY-0-deadbeef", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Inquiry not found", body["message"])
}

func TestMandateEndpointUsesMandateID(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/api/inquiries/mandate", map[string]any{
		"companyName":   "Broker Partners SA",
		"contactPerson": "Maria Silva",
		"email":         "maria@brokers.example",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	mandateID, _ := body["mandateId"].(string)
	assert.True(t, strings.HasPrefix(mandateID, "MANDATE-"))
	assert.Nil(t, body["inquiryId"])
}

func TestAdminListingRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv, "/api/inquiries/", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])

	resp, _ = getJSON(t, srv, "/api/inquiries/", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminListingWithToken(t *testing.T) {
	srv := newTestServer(t)

	postJSON(t, srv, "/api/inquiries/seller", map[string]any{
		"companyName":       "Origin Metals Ltd",
		"contactPerson":     "John Roe",
		"email":             "john@origin.example",
		"phone":             "+442071234567",
		"specificProduct":   "Copper cathodes",
		"availableQuantity": "2,000 MT/month",
	})

	resp, body := postJSON(t, srv, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	resp, body = getJSON(t, srv, "/api/inquiries/?type=seller", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["count"])
}

func TestLoginBadPassword(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/api/auth/login", map[string]any{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "incorrect username or password", body["message"])
}

func TestDocumentEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv, "/api/documents/list", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	docs, ok := body["documents"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, docs, "ndas")

	resp, body = getJSON(t, srv, "/api/documents/category/compliance", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "compliance", body["category"])

	resp, body = postJSON(t, srv, "/api/documents/request/mutual-nda", map[string]any{
		"name":  "Jane Doe",
		"email": "jane@example.com",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reference, _ := body["reference"].(string)
	assert.True(t, strings.HasPrefix(reference, "DOC-"))
}

func TestSecurityLogEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := postJSON(t, srv, "/api/security/log", map[string]any{
		"type":    "csp_violation",
		"message": "Refused to load script",
		"url":     "https://websutech.com/",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
}

func TestUnknownEndpointEnvelope(t *testing.T) {
	srv := newTestServer(t)

	resp, body := getJSON(t, srv, "/api/no/such/route", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "API endpoint not found", body["message"])
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/api/health")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
