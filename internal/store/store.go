// Package store holds the four intake collections in memory and mirrors
// them to a single JSON snapshot file. The file is best-effort: writes
// happen after every mutation and on a fixed interval, failures are
// logged and the in-memory state stays authoritative.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/metrics"
	"websutech/internal/util"
)

// document is the on-disk snapshot shape. It must round-trip losslessly.
type document struct {
	Inquiries   map[string]*domain.Inquiry         `json:"inquiries"`
	Contacts    map[string]*domain.ContactMessage  `json:"contacts"`
	Users       map[string]*domain.Subscriber      `json:"users"`
	Documents   map[string]*domain.DocumentRequest `json:"documents"`
	LastUpdated string                             `json:"lastUpdated"`
}

func emptyDocument() document {
	return document{
		Inquiries:   make(map[string]*domain.Inquiry),
		Contacts:    make(map[string]*domain.ContactMessage),
		Users:       make(map[string]*domain.Subscriber),
		Documents:   make(map[string]*domain.DocumentRequest),
		LastUpdated: time.Now().UTC().Format(time.RFC3339),
	}
}

// Stats summarizes collection sizes.
type Stats struct {
	TotalInquiries int    `json:"totalInquiries"`
	TotalContacts  int    `json:"totalContacts"`
	TotalUsers     int    `json:"totalUsers"`
	TotalDocuments int    `json:"totalDocuments"`
	LastUpdated    string `json:"lastUpdated"`
}

// Store owns the in-memory collections and their persistence schedule.
type Store struct {
	mu   sync.RWMutex
	data document

	path     string
	interval time.Duration
	log      *zap.SugaredLogger

	stop chan struct{}
	done chan struct{}
}

// Open loads the snapshot at path (fail-soft: a missing or unparsable
// file starts the store empty) and begins the periodic autosave loop.
func Open(path string, interval time.Duration, log *zap.SugaredLogger) *Store {
	s := &Store{
		data:     emptyDocument(),
		path:     path,
		interval: interval,
		log:      log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	s.load()
	go s.autosaveLoop()
	return s
}

func (s *Store) load() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		s.log.Infow("no snapshot file, starting empty", "path", s.path)
		return
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.log.Warnw("snapshot file unparsable, starting empty", "path", s.path, "error", err)
		return
	}
	if doc.Inquiries == nil {
		doc.Inquiries = make(map[string]*domain.Inquiry)
	}
	if doc.Contacts == nil {
		doc.Contacts = make(map[string]*domain.ContactMessage)
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*domain.Subscriber)
	}
	if doc.Documents == nil {
		doc.Documents = make(map[string]*domain.DocumentRequest)
	}
	s.mu.Lock()
	s.data = doc
	s.mu.Unlock()
	s.log.Infow("snapshot loaded",
		"inquiries", len(doc.Inquiries),
		"contacts", len(doc.Contacts),
		"users", len(doc.Users),
		"documents", len(doc.Documents))
}

func (s *Store) autosaveLoop() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := s.Snapshot(); err != nil {
				s.log.Errorw("periodic snapshot failed", "error", err)
			}
		case <-s.stop:
			return
		}
	}
}

// Close stops the autosave loop and flushes a final snapshot.
func (s *Store) Close() error {
	close(s.stop)
	<-s.done
	return s.Snapshot()
}

// Snapshot serializes the full in-memory state to the snapshot file.
// The write is atomic (temp file + rename) so a crash mid-write never
// truncates the previous snapshot.
func (s *Store) Snapshot() error {
	err := s.snapshot()
	metrics.RecordSnapshotWrite(err)
	return err
}

func (s *Store) snapshot() error {
	s.mu.Lock()
	s.data.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	raw, err := json.MarshalIndent(&s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// scheduleSave kicks off a fire-and-forget snapshot. Callers never wait
// for it; failures are logged only.
func (s *Store) scheduleSave() {
	go func() {
		if err := s.Snapshot(); err != nil {
			s.log.Errorw("snapshot write failed", "error", err)
		}
	}()
}

// SaveInquiry inserts or overwrites an inquiry by id, assigning an
// identifier and timestamps when absent, and returns the id.
func (s *Store) SaveInquiry(inq *domain.Inquiry) string {
	if inq.ID == "" {
		inq.ID = util.NewID("INQ")
	}
	now := time.Now().UTC()
	if inq.CreatedAt.IsZero() {
		inq.CreatedAt = now
	}
	inq.UpdatedAt = now

	s.mu.Lock()
	s.data.Inquiries[inq.ID] = inq
	s.mu.Unlock()

	s.scheduleSave()
	return inq.ID
}

// GetInquiry returns a copy of the inquiry, or false if unknown.
func (s *Store) GetInquiry(id string) (domain.Inquiry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inq, ok := s.data.Inquiries[id]
	if !ok {
		return domain.Inquiry{}, false
	}
	return *inq, true
}

// ListInquiries returns copies of all inquiries matching the predicate
// (nil matches everything). No ordering is guaranteed.
func (s *Store) ListInquiries(match func(*domain.Inquiry) bool) []domain.Inquiry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Inquiry, 0, len(s.data.Inquiries))
	for _, inq := range s.data.Inquiries {
		if match == nil || match(inq) {
			out = append(out, *inq)
		}
	}
	return out
}

// SaveContact inserts or overwrites a contact message by id and returns
// the id.
func (s *Store) SaveContact(msg *domain.ContactMessage) string {
	if msg.ID == "" {
		msg.ID = util.NewID("CONTACT")
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.data.Contacts[msg.ID] = msg
	s.mu.Unlock()

	s.scheduleSave()
	return msg.ID
}

// GetContact returns a copy of the contact message, or false if unknown.
func (s *Store) GetContact(id string) (domain.ContactMessage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msg, ok := s.data.Contacts[id]
	if !ok {
		return domain.ContactMessage{}, false
	}
	return *msg, true
}

// SaveUser inserts or overwrites a subscriber by id and returns the id.
func (s *Store) SaveUser(sub *domain.Subscriber) string {
	if sub.ID == "" {
		sub.ID = util.NewID("USER")
	}
	if sub.SubscribedAt.IsZero() {
		sub.SubscribedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.data.Users[sub.ID] = sub
	s.mu.Unlock()

	s.scheduleSave()
	return sub.ID
}

// FindUserByEmail returns the first subscriber with the given email.
// Linear scan; email uniqueness is not enforced.
func (s *Store) FindUserByEmail(email string) (domain.Subscriber, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sub := range s.data.Users {
		if sub.Email == email {
			return *sub, true
		}
	}
	return domain.Subscriber{}, false
}

// SaveDocumentRequest inserts or overwrites a document request by id and
// returns the id.
func (s *Store) SaveDocumentRequest(req *domain.DocumentRequest) string {
	if req.ID == "" {
		req.ID = util.NewTimestampID("DOC")
	}
	if req.RequestedAt.IsZero() {
		req.RequestedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.data.Documents[req.ID] = req
	s.mu.Unlock()

	s.scheduleSave()
	return req.ID
}

// Stats returns collection sizes.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Stats{
		TotalInquiries: len(s.data.Inquiries),
		TotalContacts:  len(s.data.Contacts),
		TotalUsers:     len(s.data.Users),
		TotalDocuments: len(s.data.Documents),
		LastUpdated:    s.data.LastUpdated,
	}
}
