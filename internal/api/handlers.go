package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/services"
	apperrors "websutech/pkg/errors"
)

// handlers decodes intake requests, invokes the services and encodes the
// per-kind response envelopes. The identifier field name varies by kind
// (messageId, inquiryId, mandateId, subscriptionId) for compatibility
// with the existing frontend.
type handlers struct {
	contact   *services.ContactService
	inquiries *services.InquiryService
	documents *services.DocumentService
	security  *services.SecurityService
	auth      *services.AuthService
	health    *services.HealthService
	log       *zap.SugaredLogger
}

type contactSubmitResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	MessageID string   `json:"messageId"`
	Duplicate bool     `json:"duplicate,omitempty"`
	NextSteps []string `json:"nextSteps,omitempty"`
	EmailSent bool     `json:"emailSent,omitempty"`
}

func (h *handlers) submitContact(w http.ResponseWriter, r *http.Request) {
	var sub services.ContactSubmission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, err)
		return
	}
	sub.ClientIP = clientIP(r)
	sub.UserAgent = r.UserAgent()

	res, err := h.contact.Submit(r.Context(), &sub)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contactSubmitResponse{
		Success:   true,
		Message:   res.Message,
		MessageID: res.MessageID,
		Duplicate: res.Duplicate,
		NextSteps: res.NextSteps,
		EmailSent: res.EmailSent,
	})
}

type newsletterResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	SubscriptionID string `json:"subscriptionId"`
}

func (h *handlers) subscribeNewsletter(w http.ResponseWriter, r *http.Request) {
	var signup services.NewsletterSignup
	if err := decodeJSON(r, &signup); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.contact.Subscribe(r.Context(), &signup)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newsletterResponse{
		Success:        true,
		Message:        res.Message,
		SubscriptionID: res.SubscriptionID,
	})
}

type inquiryResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	InquiryID string   `json:"inquiryId,omitempty"`
	MandateID string   `json:"mandateId,omitempty"`
	NextSteps []string `json:"nextSteps,omitempty"`
}

func (h *handlers) submitBuyerInquiry(w http.ResponseWriter, r *http.Request) {
	var in services.BuyerInquiry
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	in.ClientIP = clientIP(r)
	in.UserAgent = r.UserAgent()

	res, err := h.inquiries.SubmitBuyer(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inquiryResponse{
		Success:   true,
		Message:   res.Message,
		InquiryID: res.InquiryID,
		NextSteps: res.NextSteps,
	})
}

func (h *handlers) submitSellerInquiry(w http.ResponseWriter, r *http.Request) {
	var in services.SellerInquiry
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	in.ClientIP = clientIP(r)
	in.UserAgent = r.UserAgent()

	res, err := h.inquiries.SubmitSeller(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inquiryResponse{
		Success:   true,
		Message:   res.Message,
		InquiryID: res.InquiryID,
		NextSteps: res.NextSteps,
	})
}

func (h *handlers) submitMandateApplication(w http.ResponseWriter, r *http.Request) {
	var in services.MandateApplication
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	in.ClientIP = clientIP(r)
	in.UserAgent = r.UserAgent()

	res, err := h.inquiries.SubmitMandate(r.Context(), &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inquiryResponse{
		Success:   true,
		Message:   res.Message,
		MandateID: res.InquiryID,
		NextSteps: res.NextSteps,
	})
}

type inquiryStatusResponse struct {
	Success bool                   `json:"success"`
	Inquiry *domain.InquirySummary `json:"inquiry"`
}

func (h *handlers) inquiryStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	summary, err := h.inquiries.Status(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, inquiryStatusResponse{Success: true, Inquiry: summary})
}

type inquiryListResponse struct {
	Success   bool                    `json:"success"`
	Count     int                     `json:"count"`
	Inquiries []domain.InquirySummary `json:"inquiries"`
}

func (h *handlers) listInquiries(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	summaries := h.inquiries.List(services.ListParams{
		Kind:   r.URL.Query().Get("type"),
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
	})

	writeJSON(w, http.StatusOK, inquiryListResponse{
		Success:   true,
		Count:     len(summaries),
		Inquiries: summaries,
	})
}

func (h *handlers) listDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"documents": h.documents.Catalog(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) documentCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")

	docs, err := h.documents.Category(category)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"category":  category,
		"documents": docs,
	})
}

func (h *handlers) requestDocument(w http.ResponseWriter, r *http.Request) {
	var in services.DocumentRequestInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}
	in.ClientIP = clientIP(r)

	res, err := h.documents.Request(chi.URLParam(r, "id"), &in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   res.Message,
		"document":  res.Document,
		"reference": res.Reference,
	})
}

func (h *handlers) receiveSecurityLog(w http.ResponseWriter, r *http.Request) {
	var entry services.SecurityLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		writeError(w, err)
		return
	}
	entry.IP = clientIP(r)
	if entry.UserAgent == "" {
		entry.UserAgent = r.UserAgent()
	}

	h.security.Receive(&entry)

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Security log received",
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handlers) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *handlers) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.health.Check())
}

func (h *handlers) notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, apperrors.New(apperrors.ErrCodeNotFound, "API endpoint not found"))
}
