package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/store"
	apperrors "websutech/pkg/errors"
)

func newInquiryFixture(t *testing.T, mailer Mailer) (*InquiryService, *store.Store) {
	t.Helper()
	log := zap.NewNop().Sugar()
	st := store.Open(filepath.Join(t.TempDir(), "storage.json"), time.Hour, log)
	t.Cleanup(func() { st.Close() })
	dispatcher := NewDispatcher(mailer, "ops@websutech.com", log)
	return NewInquiryService(st, dispatcher, log), st
}

func validBuyer() *BuyerInquiry {
	return &BuyerInquiry{
		CompanyName:     "Acme Trading GmbH",
		ContactPerson:   "Jane Doe",
		Email:           "jane@acme.example",
		Phone:           "+4915123456789",
		Country:         "Germany",
		ProductCategory: "petroleum",
		SpecificProduct: "EN590 10ppm",
		Quantity:        "50,000 MT",
		NDAAgreed:       true,
	}
}

func TestSubmitBuyer(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	res, err := svc.SubmitBuyer(context.Background(), validBuyer())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.InquiryID, "BUY-"))
	assert.NotEmpty(t, res.NextSteps)

	saved, ok := st.GetInquiry(res.InquiryID)
	require.True(t, ok)
	assert.Equal(t, domain.KindBuyer, saved.Kind)
	assert.Equal(t, "new", saved.Status)
	assert.Equal(t, "EN590 10ppm", saved.Product)
	assert.Equal(t, "50,000 MT", saved.Fields["quantity"])
	assert.Equal(t, "normal", saved.Fields["urgency"], "urgency defaults to normal")

	require.Len(t, fake.sent, 2)
	assert.Equal(t, "jane@acme.example", fake.sent[0].To)
}

func TestSubmitBuyerMultipleProductsJoined(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	in := validBuyer()
	in.SpecificProduct = ""
	in.SpecificProducts = []string{"EN590 10ppm", "Jet A1"}

	res, err := svc.SubmitBuyer(context.Background(), in)
	require.NoError(t, err)

	saved, _ := st.GetInquiry(res.InquiryID)
	assert.Equal(t, "EN590 10ppm; Jet A1", saved.Product)
}

func TestSubmitBuyerValidation(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	tests := []struct {
		name   string
		modify func(*BuyerInquiry)
		field  string
	}{
		{"short company", func(b *BuyerInquiry) { b.CompanyName = "A" }, "companyName"},
		{"bad email", func(b *BuyerInquiry) { b.Email = "nope" }, "email"},
		{"bad phone", func(b *BuyerInquiry) { b.Phone = "call me" }, "phone"},
		{"missing country", func(b *BuyerInquiry) { b.Country = " " }, "country"},
		{"bad category", func(b *BuyerInquiry) { b.ProductCategory = "spices" }, "productCategory"},
		{"no product", func(b *BuyerInquiry) { b.SpecificProduct = ""; b.SpecificProducts = nil }, "specificProduct"},
		{"missing quantity", func(b *BuyerInquiry) { b.Quantity = "" }, "quantity"},
		{"nda not agreed", func(b *BuyerInquiry) { b.NDAAgreed = false }, "ndaAgreed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validBuyer()
			tt.modify(in)

			_, err := svc.SubmitBuyer(context.Background(), in)
			ve, ok := apperrors.AsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			require.Len(t, ve.Fields, 1)
			assert.Equal(t, tt.field, ve.Fields[0].Field)
		})
	}

	assert.Zero(t, st.Stats().TotalInquiries)
}

func TestSubmitSeller(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	res, err := svc.SubmitSeller(context.Background(), &SellerInquiry{
		CompanyName:       "Origin Metals Ltd",
		ContactPerson:     "John Roe",
		Email:             "john@origin.example",
		Phone:             "+442071234567",
		SpecificProduct:   "Copper cathodes 99.99%",
		AvailableQuantity: "2,000 MT/month",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.InquiryID, "SELL-"))

	saved, _ := st.GetInquiry(res.InquiryID)
	assert.Equal(t, domain.KindSeller, saved.Kind)
	assert.Equal(t, "2,000 MT/month", saved.Fields["availableQuantity"])
}

func TestSubmitSellerMissingQuantity(t *testing.T) {
	fake := &fakeMailer{}
	svc, _ := newInquiryFixture(t, fake)

	_, err := svc.SubmitSeller(context.Background(), &SellerInquiry{
		CompanyName:     "Origin Metals Ltd",
		ContactPerson:   "John Roe",
		Email:           "john@origin.example",
		Phone:           "+442071234567",
		SpecificProduct: "Copper cathodes",
	})
	ve, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "availableQuantity", ve.Fields[0].Field)
}

func TestSubmitMandate(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	res, err := svc.SubmitMandate(context.Background(), &MandateApplication{
		CompanyName:   "Broker Partners SA",
		ContactPerson: "Maria Silva",
		Email:         "maria@brokers.example",
		Experience:    "12 years in petroleum trading",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.InquiryID, "MANDATE-"))

	saved, _ := st.GetInquiry(res.InquiryID)
	assert.Equal(t, domain.KindMandate, saved.Kind)
	assert.Equal(t, domain.StatusPendingReview, saved.Status, "mandate applications start in pending_review")
}

func TestSubmitConfirmationFailureFailsRequest(t *testing.T) {
	fake := &fakeMailer{failTo: map[string]string{"jane@acme.example": ErrKindRelayPolicy}}
	svc, st := newInquiryFixture(t, fake)

	_, err := svc.SubmitBuyer(context.Background(), validBuyer())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternalError, apperrors.CodeOf(err))
	assert.Equal(t, 1, st.Stats().TotalInquiries, "record stays persisted when the email fails")
}

func TestInquiryStatusProjection(t *testing.T) {
	fake := &fakeMailer{}
	svc, _ := newInquiryFixture(t, fake)

	res, err := svc.SubmitBuyer(context.Background(), validBuyer())
	require.NoError(t, err)

	summary, err := svc.Status(res.InquiryID)
	require.NoError(t, err)
	assert.Equal(t, res.InquiryID, summary.ID)
	assert.Equal(t, domain.KindBuyer, summary.Kind)
	assert.Equal(t, "new", summary.Status)
	assert.Equal(t, "EN590 10ppm", summary.Product)
	assert.Equal(t, "Acme Trading GmbH", summary.Company)
	assert.False(t, summary.CreatedAt.IsZero())
}

func TestInquiryStatusNotFound(t *testing.T) {
	fake := &fakeMailer{}
	svc, _ := newInquiryFixture(t, fake)

	_, err := svc.Status("BUY-0-deadbeef")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListInquiries(t *testing.T) {
	fake := &fakeMailer{}
	svc, st := newInquiryFixture(t, fake)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.SaveInquiry(&domain.Inquiry{ID: "BUY-1-a", Kind: domain.KindBuyer, Status: "new", CreatedAt: base})
	st.SaveInquiry(&domain.Inquiry{ID: "SELL-2-b", Kind: domain.KindSeller, Status: "new", CreatedAt: base.Add(time.Minute)})
	st.SaveInquiry(&domain.Inquiry{ID: "MANDATE-3-c", Kind: domain.KindMandate, Status: domain.StatusPendingReview, CreatedAt: base.Add(2 * time.Minute)})

	all := svc.List(ListParams{})
	require.Len(t, all, 3)
	assert.Equal(t, "MANDATE-3-c", all[0].ID, "newest first")
	assert.Equal(t, "BUY-1-a", all[2].ID)

	buyers := svc.List(ListParams{Kind: "buyer"})
	require.Len(t, buyers, 1)
	assert.Equal(t, "BUY-1-a", buyers[0].ID)

	pending := svc.List(ListParams{Status: domain.StatusPendingReview})
	require.Len(t, pending, 1)
	assert.Equal(t, "MANDATE-3-c", pending[0].ID)

	limited := svc.List(ListParams{Limit: 2})
	require.Len(t, limited, 2)
	assert.Equal(t, "MANDATE-3-c", limited[0].ID)
}
