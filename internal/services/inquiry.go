package services

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/metrics"
	"websutech/internal/store"
	"websutech/internal/util"
	apperrors "websutech/pkg/errors"
)

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

var productCategories = []string{"petroleum", "metals", "diamonds", "industrial"}

// InquiryService handles buyer inquiries, seller inquiries and mandate
// applications.
type InquiryService struct {
	store      *store.Store
	dispatcher *Dispatcher
	log        *zap.SugaredLogger
}

// NewInquiryService creates a new inquiry service.
func NewInquiryService(st *store.Store, dispatcher *Dispatcher, log *zap.SugaredLogger) *InquiryService {
	return &InquiryService{store: st, dispatcher: dispatcher, log: log}
}

// InquiryResult is the outcome of a successful inquiry submission.
type InquiryResult struct {
	InquiryID string
	Message   string
	NextSteps []string
}

// BuyerInquiry is the buyer inquiry form input. Optional free-form fields
// are stored verbatim alongside the typed ones.
type BuyerInquiry struct {
	CompanyName            string   `json:"companyName"`
	ContactPerson          string   `json:"contactPerson"`
	Email                  string   `json:"email"`
	Phone                  string   `json:"phone"`
	Country                string   `json:"country"`
	ProductCategory        string   `json:"productCategory"`
	SpecificProduct        string   `json:"specificProduct"`
	SpecificProducts       []string `json:"specificProducts"`
	Quantity               string   `json:"quantity"`
	TargetPrice            string   `json:"targetPrice"`
	DeliveryLocation       string   `json:"deliveryLocation"`
	PaymentTerms           string   `json:"paymentTerms"`
	AdditionalRequirements string   `json:"additionalRequirements"`
	Urgency                string   `json:"urgency"`
	NDAAgreed              bool     `json:"ndaAgreed"`
	ClientIP               string   `json:"-"`
	UserAgent              string   `json:"-"`
}

// SubmitBuyer validates and persists a buyer inquiry and dispatches the
// confirmation and alert emails.
func (s *InquiryService) SubmitBuyer(ctx context.Context, in *BuyerInquiry) (*InquiryResult, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Urgency == "" {
		in.Urgency = "normal"
	}

	s.log.Infow("[INQUIRY] buyer submit request", "company", in.CompanyName, "email", in.Email)

	if err := s.validateBuyer(in); err != nil {
		s.log.Infow("[INQUIRY] buyer submit failed validation", "error", err)
		return nil, err
	}

	// A client can select a single product or several; several are stored
	// joined so the product column reads as one value everywhere.
	product := in.SpecificProduct
	if len(in.SpecificProducts) > 0 {
		product = strings.Join(in.SpecificProducts, "; ")
	}

	inq := &domain.Inquiry{
		ID:            util.NewID("BUY"),
		Kind:          domain.KindBuyer,
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Country:       in.Country,
		Product:       product,
		Status:        domain.StatusNew,
		Fields: map[string]any{
			"productCategory":        in.ProductCategory,
			"quantity":               in.Quantity,
			"targetPrice":            in.TargetPrice,
			"deliveryLocation":       in.DeliveryLocation,
			"paymentTerms":           in.PaymentTerms,
			"additionalRequirements": in.AdditionalRequirements,
			"urgency":                in.Urgency,
		},
		ClientIP:  in.ClientIP,
		UserAgent: in.UserAgent,
	}
	s.store.SaveInquiry(inq)

	s.log.Infow("[INQUIRY] buyer inquiry saved", "inquiryId", inq.ID, "product", product)
	metrics.RecordInquiry(string(domain.KindBuyer))

	res := s.dispatcher.Dispatch(ctx, buyerConfirmationEmail(inq), buyerAlertEmail(inq))
	if !res.Submitter.Delivered {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "Failed to submit buyer inquiry", res.Submitter.Err)
	}

	return &InquiryResult{
		InquiryID: inq.ID,
		Message:   "Buyer inquiry submitted successfully",
		NextSteps: []string{
			"Our team will review your inquiry within 24 hours",
			"We will prepare a Mutual NDA for signing",
			"After NDA execution you will receive offers from verified suppliers",
		},
	}, nil
}

func (s *InquiryService) validateBuyer(in *BuyerInquiry) error {
	ve := &apperrors.ValidationError{}

	if len(in.CompanyName) < 2 || len(in.CompanyName) > 200 {
		ve.Add("companyName", "valid company name is required")
	}
	if len(in.ContactPerson) < 2 || len(in.ContactPerson) > 100 {
		ve.Add("contactPerson", "valid contact person name is required")
	}
	if !emailRegex.MatchString(in.Email) {
		ve.Add("email", "valid email is required")
	}
	if !phoneRegex.MatchString(strings.TrimSpace(in.Phone)) {
		ve.Add("phone", "valid phone number is required")
	}
	if strings.TrimSpace(in.Country) == "" {
		ve.Add("country", "country is required")
	}
	validCategory := false
	for _, c := range productCategories {
		if in.ProductCategory == c {
			validCategory = true
			break
		}
	}
	if !validCategory {
		ve.Add("productCategory", "invalid product category")
	}
	if strings.TrimSpace(in.SpecificProduct) == "" && len(in.SpecificProducts) == 0 {
		ve.Add("specificProduct", "specific product is required (single or multiple)")
	}
	if strings.TrimSpace(in.Quantity) == "" {
		ve.Add("quantity", "quantity is required")
	}
	if !in.NDAAgreed {
		ve.Add("ndaAgreed", "you must agree to the NDA")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// SellerInquiry is the seller registration form input.
type SellerInquiry struct {
	CompanyName       string `json:"companyName"`
	ContactPerson     string `json:"contactPerson"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Country           string `json:"country"`
	SpecificProduct   string `json:"specificProduct"`
	AvailableQuantity string `json:"availableQuantity"`
	PriceRange        string `json:"priceRange"`
	Origin            string `json:"origin"`
	Specifications    string `json:"specifications"`
	Certifications    string `json:"certifications"`
	DeliveryTerms     string `json:"deliveryTerms"`
	PaymentTerms      string `json:"paymentTerms"`
	AdditionalInfo    string `json:"additionalInfo"`
	ClientIP          string `json:"-"`
	UserAgent         string `json:"-"`
}

// SubmitSeller validates and persists a seller inquiry and dispatches the
// confirmation and alert emails.
func (s *InquiryService) SubmitSeller(ctx context.Context, in *SellerInquiry) (*InquiryResult, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	s.log.Infow("[INQUIRY] seller submit request", "company", in.CompanyName, "email", in.Email)

	ve := &apperrors.ValidationError{}
	if in.CompanyName == "" {
		ve.Add("companyName", "company name is required")
	}
	if in.ContactPerson == "" {
		ve.Add("contactPerson", "contact person is required")
	}
	if !emailRegex.MatchString(in.Email) {
		ve.Add("email", "valid email is required")
	}
	if !phoneRegex.MatchString(strings.TrimSpace(in.Phone)) {
		ve.Add("phone", "valid phone number is required")
	}
	if strings.TrimSpace(in.SpecificProduct) == "" {
		ve.Add("specificProduct", "product description is required")
	}
	if strings.TrimSpace(in.AvailableQuantity) == "" {
		ve.Add("availableQuantity", "available quantity is required")
	}
	if ve.HasErrors() {
		s.log.Infow("[INQUIRY] seller submit failed validation", "error", ve)
		return nil, ve
	}

	inq := &domain.Inquiry{
		ID:            util.NewID("SELL"),
		Kind:          domain.KindSeller,
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Country:       in.Country,
		Product:       in.SpecificProduct,
		Status:        domain.StatusNew,
		Fields: map[string]any{
			"availableQuantity": in.AvailableQuantity,
			"priceRange":        in.PriceRange,
			"origin":            in.Origin,
			"specifications":    in.Specifications,
			"certifications":    in.Certifications,
			"deliveryTerms":     in.DeliveryTerms,
			"paymentTerms":      in.PaymentTerms,
			"additionalInfo":    in.AdditionalInfo,
		},
		ClientIP:  in.ClientIP,
		UserAgent: in.UserAgent,
	}
	s.store.SaveInquiry(inq)

	s.log.Infow("[INQUIRY] seller inquiry saved", "inquiryId", inq.ID, "product", in.SpecificProduct)
	metrics.RecordInquiry(string(domain.KindSeller))

	res := s.dispatcher.Dispatch(ctx, sellerConfirmationEmail(inq), sellerAlertEmail(inq))
	if !res.Submitter.Delivered {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "Failed to submit seller inquiry", res.Submitter.Err)
	}

	return &InquiryResult{
		InquiryID: inq.ID,
		Message:   "Seller inquiry submitted successfully",
		NextSteps: []string{
			"Our team will review your registration within 24 hours",
			"We may request product specifications and certifications",
		},
	}, nil
}

// MandateApplication is the mandate application form input.
type MandateApplication struct {
	CompanyName    string `json:"companyName"`
	ContactPerson  string `json:"contactPerson"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	Experience     string `json:"experience"`
	Network        string `json:"network"`
	References     string `json:"references"`
	AdditionalInfo string `json:"additionalInfo"`
	ClientIP       string `json:"-"`
	UserAgent      string `json:"-"`
}

// SubmitMandate validates and persists a mandate application. Mandate
// applications start in pending_review rather than new.
func (s *InquiryService) SubmitMandate(ctx context.Context, in *MandateApplication) (*InquiryResult, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.ContactPerson = strings.TrimSpace(in.ContactPerson)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	s.log.Infow("[INQUIRY] mandate submit request", "company", in.CompanyName, "email", in.Email)

	ve := &apperrors.ValidationError{}
	if in.CompanyName == "" {
		ve.Add("companyName", "company name is required")
	}
	if in.ContactPerson == "" {
		ve.Add("contactPerson", "contact person is required")
	}
	if !emailRegex.MatchString(in.Email) {
		ve.Add("email", "valid email is required")
	}
	if ve.HasErrors() {
		s.log.Infow("[INQUIRY] mandate submit failed validation", "error", ve)
		return nil, ve
	}

	inq := &domain.Inquiry{
		ID:            util.NewID("MANDATE"),
		Kind:          domain.KindMandate,
		CompanyName:   in.CompanyName,
		ContactPerson: in.ContactPerson,
		Email:         in.Email,
		Phone:         in.Phone,
		Country:       in.Country,
		Status:        domain.StatusPendingReview,
		Fields: map[string]any{
			"experience":     in.Experience,
			"network":        in.Network,
			"references":     in.References,
			"additionalInfo": in.AdditionalInfo,
		},
		ClientIP:  in.ClientIP,
		UserAgent: in.UserAgent,
	}
	s.store.SaveInquiry(inq)

	s.log.Infow("[INQUIRY] mandate application saved", "mandateId", inq.ID)
	metrics.RecordInquiry(string(domain.KindMandate))

	res := s.dispatcher.Dispatch(ctx, mandateConfirmationEmail(inq), mandateAlertEmail(inq))
	if !res.Submitter.Delivered {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "Failed to submit mandate application", res.Submitter.Err)
	}

	return &InquiryResult{
		InquiryID: inq.ID,
		Message:   "Mandate application submitted successfully",
		NextSteps: []string{
			"Your application is pending review by our team",
			"We will contact you to discuss mandate terms",
		},
	}, nil
}

// Status returns the public projection of an inquiry: never the
// submitter's raw contact fields.
func (s *InquiryService) Status(id string) (*domain.InquirySummary, error) {
	inq, ok := s.store.GetInquiry(id)
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeNotFound, "Inquiry not found")
	}
	summary := inq.Summary()
	return &summary, nil
}

// ListParams filters the admin inquiry listing.
type ListParams struct {
	Kind   string
	Status string
	Limit  int
}

// List returns inquiry summaries, newest first, optionally filtered by
// kind and status. Staff/Admin only; enforced at the HTTP layer.
func (s *InquiryService) List(p ListParams) []domain.InquirySummary {
	if p.Limit <= 0 {
		p.Limit = 50
	}

	inquiries := s.store.ListInquiries(func(i *domain.Inquiry) bool {
		if p.Kind != "" && string(i.Kind) != p.Kind {
			return false
		}
		if p.Status != "" && i.Status != p.Status {
			return false
		}
		return true
	})

	sort.Slice(inquiries, func(a, b int) bool {
		return inquiries[a].CreatedAt.After(inquiries[b].CreatedAt)
	})
	if len(inquiries) > p.Limit {
		inquiries = inquiries[:p.Limit]
	}

	summaries := make([]domain.InquirySummary, len(inquiries))
	for i := range inquiries {
		summaries[i] = inquiries[i].Summary()
	}

	s.log.Infow("[INQUIRY] list", "returned", len(summaries), "type", p.Kind, "status", p.Status)
	return summaries
}
