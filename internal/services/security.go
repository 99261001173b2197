package services

import (
	"time"

	"go.uber.org/zap"
)

// SecurityLogEntry is a client-side security alert reported by the
// frontend.
type SecurityLogEntry struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	URL       string         `json:"url"`
	UserAgent string         `json:"userAgent"`
	IP        string         `json:"-"`
	Timestamp string         `json:"timestamp"`
	Meta      map[string]any `json:"meta"`
}

// SecurityService records client-reported security events.
type SecurityService struct {
	log *zap.SugaredLogger
}

// NewSecurityService creates a new security service.
func NewSecurityService(log *zap.SugaredLogger) *SecurityService {
	return &SecurityService{log: log}
}

// Receive sanitizes and records one security log entry. Entries are only
// logged today; persistence and alerting can hook in here later.
func (s *SecurityService) Receive(entry *SecurityLogEntry) {
	if entry.Type == "" {
		entry.Type = "security_alert"
	}
	if len(entry.Message) > 2000 {
		entry.Message = entry.Message[:2000]
	}
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	s.log.Warnw("[SECURITY] client alert",
		"type", entry.Type,
		"message", entry.Message,
		"url", entry.URL,
		"userAgent", entry.UserAgent,
		"ip", entry.IP,
		"timestamp", entry.Timestamp,
		"meta", entry.Meta)
}
