package domain

import "time"

// InquiryKind distinguishes the three trade inquiry flows.
type InquiryKind string

const (
	KindBuyer   InquiryKind = "buyer"
	KindSeller  InquiryKind = "seller"
	KindMandate InquiryKind = "mandate"
)

// Inquiry statuses.
const (
	StatusNew           = "new"
	StatusPendingReview = "pending_review"
)

// Inquiry represents a buyer inquiry, seller inquiry or mandate application.
// Common fields are typed; everything kind-specific submitted by the client
// (quantity, target price, certifications, ...) is kept verbatim in Fields.
type Inquiry struct {
	ID            string         `json:"id"`
	Kind          InquiryKind    `json:"type"`
	CompanyName   string         `json:"companyName"`
	ContactPerson string         `json:"contactPerson"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone,omitempty"`
	Country       string         `json:"country,omitempty"`
	Product       string         `json:"specificProduct,omitempty"`
	Status        string         `json:"status"`
	Fields        map[string]any `json:"fields,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	ClientIP      string         `json:"ipAddress,omitempty"`
	UserAgent     string         `json:"userAgent,omitempty"`
}

// InquirySummary is the reduced projection exposed by the status endpoint
// and the admin listing. Raw contact fields are intentionally omitted.
type InquirySummary struct {
	ID        string      `json:"id"`
	Kind      InquiryKind `json:"type"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	Product   string      `json:"product,omitempty"`
	Company   string      `json:"company,omitempty"`
}

// Summary returns the public projection of the inquiry.
func (i *Inquiry) Summary() InquirySummary {
	return InquirySummary{
		ID:        i.ID,
		Kind:      i.Kind,
		Status:    i.Status,
		CreatedAt: i.CreatedAt,
		Product:   i.Product,
		Company:   i.CompanyName,
	}
}
