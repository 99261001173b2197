package domain

import "time"

// Subscriber represents a newsletter signup. Email uniqueness is not
// enforced; lookups scan the collection.
type Subscriber struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	Type         string    `json:"type,omitempty"` // newsletter
	Active       bool      `json:"active"`
	SubscribedAt time.Time `json:"subscribedAt"`
}
