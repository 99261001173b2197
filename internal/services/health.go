package services

import "time"

// HealthService reports process liveness.
type HealthService struct {
	started time.Time
}

// NewHealthService creates a new health service.
func NewHealthService() *HealthService {
	return &HealthService{started: time.Now()}
}

// HealthResult is the health check response.
type HealthResult struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Uptime    float64 `json:"uptime"`
}

// Check returns the current health status.
func (s *HealthService) Check() *HealthResult {
	return &HealthResult{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(s.started).Seconds(),
	}
}
