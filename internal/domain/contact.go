package domain

import "time"

// Contact message categories accepted by the contact form.
var ContactCategories = []string{"general", "technical", "compliance", "sales"}

// ContactMessage represents a general contact form submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Category  string    `json:"category"`
	Status    string    `json:"status"` // new, read, replied
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"ipAddress,omitempty"`
	UserAgent string    `json:"userAgent,omitempty"`
}
