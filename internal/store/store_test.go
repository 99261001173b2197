package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websutech/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage.json")
	s := Open(path, time.Hour, zap.NewNop().Sugar())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveInquiryAssignsIDAndTimestamps(t *testing.T) {
	s := newTestStore(t)

	id := s.SaveInquiry(&domain.Inquiry{Kind: domain.KindBuyer, Status: domain.StatusNew})
	require.NotEmpty(t, id)

	got, ok := s.GetInquiry(id)
	require.True(t, ok)
	assert.Equal(t, id, got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestSaveInquiryKeepsSuppliedID(t *testing.T) {
	s := newTestStore(t)

	id := s.SaveInquiry(&domain.Inquiry{ID: "BUY-1699999999999-ab12cd34", Kind: domain.KindBuyer})
	assert.Equal(t, "BUY-1699999999999-ab12cd34", id)
}

func TestGetInquiryNotFound(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.GetInquiry("BUY-0-missing")
	assert.False(t, ok)
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage.json")
	log := zap.NewNop().Sugar()

	s := Open(path, time.Hour, log)
	inqID := s.SaveInquiry(&domain.Inquiry{
		Kind:          domain.KindSeller,
		CompanyName:   "Acme Trading",
		ContactPerson: "Jane Doe",
		Email:         "jane@acme.example",
		Product:       "EN590",
		Status:        domain.StatusNew,
		Fields:        map[string]any{"availableQuantity": "50000 MT"},
	})
	contactID := s.SaveContact(&domain.ContactMessage{
		Name:     "Jane",
		Email:    "jane@x.com",
		Subject:  "Pricing",
		Message:  "Hello, can you send pricing info for EN590?",
		Category: "general",
		Status:   domain.StatusNew,
	})
	userID := s.SaveUser(&domain.Subscriber{Email: "jane@x.com", Type: "newsletter", Active: true})
	docID := s.SaveDocumentRequest(&domain.DocumentRequest{DocumentID: "mutual-nda", Name: "Jane", Email: "jane@x.com"})
	require.NotEmpty(t, docID)
	require.NoError(t, s.Close())

	// Reload and compare the observable state.
	reloaded := Open(path, time.Hour, log)
	defer reloaded.Close()

	inq, ok := reloaded.GetInquiry(inqID)
	require.True(t, ok)
	assert.Equal(t, domain.KindSeller, inq.Kind)
	assert.Equal(t, "Acme Trading", inq.CompanyName)
	assert.Equal(t, "EN590", inq.Product)
	assert.Equal(t, "50000 MT", inq.Fields["availableQuantity"])

	msg, ok := reloaded.GetContact(contactID)
	require.True(t, ok)
	assert.Equal(t, "Pricing", msg.Subject)

	sub, ok := reloaded.FindUserByEmail("jane@x.com")
	require.True(t, ok)
	assert.Equal(t, userID, sub.ID)
	assert.True(t, sub.Active)

	stats := reloaded.Stats()
	assert.Equal(t, 1, stats.TotalInquiries)
	assert.Equal(t, 1, stats.TotalContacts)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.TotalDocuments)
}

func TestSnapshotFileShape(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage.json")

	s := Open(path, time.Hour, zap.NewNop().Sugar())
	s.SaveContact(&domain.ContactMessage{Name: "Jane", Email: "jane@x.com", Subject: "Hi", Message: "Hello"})
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &doc))
	for _, key := range []string{"inquiries", "contacts", "users", "documents", "lastUpdated"} {
		assert.Contains(t, doc, key)
	}
}

func TestLoadUnparsableSnapshotStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s := Open(path, time.Hour, zap.NewNop().Sugar())
	defer s.Close()

	assert.Equal(t, 0, s.Stats().TotalInquiries)
}

func TestListInquiriesPredicate(t *testing.T) {
	s := newTestStore(t)
	s.SaveInquiry(&domain.Inquiry{Kind: domain.KindBuyer, Status: domain.StatusNew})
	s.SaveInquiry(&domain.Inquiry{Kind: domain.KindSeller, Status: domain.StatusNew})
	s.SaveInquiry(&domain.Inquiry{Kind: domain.KindMandate, Status: domain.StatusPendingReview})

	all := s.ListInquiries(nil)
	assert.Len(t, all, 3)

	buyers := s.ListInquiries(func(i *domain.Inquiry) bool { return i.Kind == domain.KindBuyer })
	assert.Len(t, buyers, 1)
}
