package services

import (
	"strings"

	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/metrics"
	"websutech/internal/store"
	"websutech/internal/util"
	apperrors "websutech/pkg/errors"
)

// catalog is the static document catalog offered for access requests.
var catalog = map[string][]domain.Document{
	"ndas": {
		{ID: "mutual-nda", Name: "Mutual Non-Disclosure Agreement", File: "mutual-nda.pdf", Description: "For mutual confidentiality between parties"},
		{ID: "seller-nda", Name: "Seller Non-Disclosure Agreement", File: "seller-nda.pdf", Description: "For seller confidentiality"},
	},
	"agreements": {
		{ID: "ncnnda", Name: "Non-Circumvention Non-Disclosure Agreement", File: "ncnnda.pdf", Description: "NCNDA for broker protection"},
		{ID: "imfpa", Name: "Irrevocable Master Fee Protection Agreement", File: "imfpa.pdf", Description: "IMFPA for commission protection"},
		{ID: "broker-agreement", Name: "Broker Agreement", File: "broker-agreement.pdf", Description: "Standard broker agreement"},
	},
	"compliance": {
		{ID: "kyc-policy", Name: "KYC Policy", File: "kyc-policy.pdf", Description: "Know Your Customer policy"},
		{ID: "aml-policy", Name: "AML Policy", File: "aml-policy.pdf", Description: "Anti-Money Laundering policy"},
		{ID: "sanctions-policy", Name: "Sanctions Policy", File: "sanctions-policy.pdf", Description: "International sanctions compliance"},
	},
	"company": {
		{ID: "company-profile", Name: "Company Profile", File: "company-profile.pdf", Description: "Websutech company overview"},
	},
}

// DocumentService serves the document catalog and records access
// requests.
type DocumentService struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewDocumentService creates a new document service.
func NewDocumentService(st *store.Store, log *zap.SugaredLogger) *DocumentService {
	return &DocumentService{store: st, log: log}
}

// Catalog returns the full document catalog keyed by category.
func (s *DocumentService) Catalog() map[string][]domain.Document {
	return catalog
}

// Category returns the documents of one catalog category.
func (s *DocumentService) Category(name string) ([]domain.Document, error) {
	docs, ok := catalog[name]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "Document category not found")
	}
	return docs, nil
}

// DocumentRequestInput is the document access request form input.
type DocumentRequestInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	ClientIP string `json:"-"`
}

// DocumentRequestResult is the access request outcome.
type DocumentRequestResult struct {
	Reference string
	Document  string
	Message   string
}

// Request records an access request for a catalog document.
func (s *DocumentService) Request(documentID string, in *DocumentRequestInput) (*DocumentRequestResult, error) {
	var found *domain.Document
	for _, docs := range catalog {
		for i := range docs {
			if docs[i].ID == documentID {
				found = &docs[i]
				break
			}
		}
	}
	if found == nil {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "Document not found")
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	ve := &apperrors.ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "name is required")
	}
	if !emailRegex.MatchString(email) {
		ve.Add("email", "valid email is required")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	req := &domain.DocumentRequest{
		ID:         util.NewTimestampID("DOC"),
		DocumentID: found.ID,
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		Company:    strings.TrimSpace(in.Company),
		ClientIP:   in.ClientIP,
	}
	s.store.SaveDocumentRequest(req)

	s.log.Infow("[DOCUMENTS] access request saved", "reference", req.ID, "document", found.Name, "email", email)
	metrics.RecordDocumentRequest()

	return &DocumentRequestResult{
		Reference: req.ID,
		Document:  found.Name,
		Message:   "Document request received. You will receive an email with download instructions.",
	}, nil
}
