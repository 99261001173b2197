package domain

import "time"

// Document describes an entry of the static document catalog (NDAs,
// agreements, compliance policies).
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	File        string `json:"file"`
	Description string `json:"description"`
}

// DocumentRequest records a request for access to a catalog document.
type DocumentRequest struct {
	ID          string    `json:"id"`
	DocumentID  string    `json:"documentId"`
	Name        string    `json:"requesterName"`
	Email       string    `json:"requesterEmail"`
	Company     string    `json:"requesterCompany,omitempty"`
	RequestedAt time.Time `json:"requestedAt"`
	ClientIP    string    `json:"ipAddress,omitempty"`
}
