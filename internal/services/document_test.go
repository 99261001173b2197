package services

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websutech/internal/store"
	apperrors "websutech/pkg/errors"
)

func newDocumentFixture(t *testing.T) (*DocumentService, *store.Store) {
	t.Helper()
	log := zap.NewNop().Sugar()
	st := store.Open(filepath.Join(t.TempDir(), "storage.json"), time.Hour, log)
	t.Cleanup(func() { st.Close() })
	return NewDocumentService(st, log), st
}

func TestDocumentCatalog(t *testing.T) {
	svc, _ := newDocumentFixture(t)

	cat := svc.Catalog()
	assert.Contains(t, cat, "ndas")
	assert.Contains(t, cat, "agreements")
	assert.Contains(t, cat, "compliance")
	assert.Contains(t, cat, "company")

	docs, err := svc.Category("agreements")
	require.NoError(t, err)
	assert.Len(t, docs, 3)

	_, err = svc.Category("recipes")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDocumentRequest(t *testing.T) {
	svc, st := newDocumentFixture(t)

	res, err := svc.Request("mutual-nda", &DocumentRequestInput{
		Name:    "Jane Doe",
		Email:   "Jane@Example.com",
		Company: "Acme",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.Reference, "DOC-"))
	assert.Equal(t, "Mutual Non-Disclosure Agreement", res.Document)
	assert.Equal(t, 1, st.Stats().TotalDocuments)
}

func TestDocumentRequestUnknownDocument(t *testing.T) {
	svc, _ := newDocumentFixture(t)

	_, err := svc.Request("no-such-doc", &DocumentRequestInput{Name: "Jane", Email: "jane@x.com"})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDocumentRequestValidation(t *testing.T) {
	svc, st := newDocumentFixture(t)

	_, err := svc.Request("mutual-nda", &DocumentRequestInput{Name: "", Email: "nope"})
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Len(t, ve.Fields, 2)
	assert.Zero(t, st.Stats().TotalDocuments)
}
