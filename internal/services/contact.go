package services

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"websutech/internal/domain"
	"websutech/internal/metrics"
	"websutech/internal/store"
	"websutech/internal/util"
	apperrors "websutech/pkg/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Human-readable next steps returned with successful contact submissions.
var contactNextSteps = []string{
	"We will respond to your message within 24 hours",
	"Check your email for confirmation",
}

// ContactService handles the general contact form and newsletter signups.
type ContactService struct {
	store      *store.Store
	dispatcher *Dispatcher
	filter     *SubmissionFilter
	log        *zap.SugaredLogger
}

// NewContactService creates a new contact service.
func NewContactService(st *store.Store, dispatcher *Dispatcher, filter *SubmissionFilter, log *zap.SugaredLogger) *ContactService {
	return &ContactService{store: st, dispatcher: dispatcher, filter: filter, log: log}
}

// ContactSubmission is the contact form input.
type ContactSubmission struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Category  string `json:"category"`
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// ContactSubmitResult is the contact form outcome.
type ContactSubmitResult struct {
	MessageID string
	Message   string
	Duplicate bool
	EmailSent bool
	NextSteps []string
}

// Submit validates, deduplicates, persists and acknowledges a contact
// form submission. A submission matching a fingerprint recorded within
// the duplicate window short-circuits with the original message id and a
// duplicate flag; the user is never shown an error for a double-click.
func (s *ContactService) Submit(ctx context.Context, sub *ContactSubmission) (*ContactSubmitResult, error) {
	sub.Name = strings.TrimSpace(sub.Name)
	sub.Email = strings.ToLower(strings.TrimSpace(sub.Email))
	sub.Subject = strings.TrimSpace(sub.Subject)
	sub.Message = strings.TrimSpace(sub.Message)
	if sub.Category == "" {
		sub.Category = "general"
	}

	s.log.Infow("[CONTACT] submit request", "name", sub.Name, "email", sub.Email)

	if err := s.validate(sub); err != nil {
		s.log.Infow("[CONTACT] submit failed validation", "error", err)
		return nil, err
	}

	fingerprint := s.filter.Fingerprint(sub.Email, sub.Subject, sub.Message)
	if originalID, dup := s.filter.Check(fingerprint); dup {
		s.log.Warnw("[CONTACT] duplicate submission suppressed", "email", sub.Email, "subject", sub.Subject, "messageId", originalID)
		metrics.RecordDuplicateSubmission()
		return &ContactSubmitResult{
			MessageID: originalID,
			Message:   "Your message was already received successfully!",
			Duplicate: true,
			EmailSent: true,
			NextSteps: contactNextSteps,
		}, nil
	}

	messageID := util.NewID("CONTACT")
	s.filter.Remember(fingerprint, messageID)

	msg := &domain.ContactMessage{
		ID:        messageID,
		Name:      sub.Name,
		Email:     sub.Email,
		Subject:   sub.Subject,
		Message:   sub.Message,
		Category:  sub.Category,
		Status:    domain.StatusNew,
		ClientIP:  sub.ClientIP,
		UserAgent: sub.UserAgent,
	}
	s.store.SaveContact(msg)

	s.log.Infow("[CONTACT] submission saved", "messageId", messageID, "category", sub.Category)
	metrics.RecordContactSubmission()

	res := s.dispatcher.Dispatch(ctx, contactConfirmationEmail(msg), contactAlertEmail(msg))
	if !res.Submitter.Delivered {
		// The record stays persisted; the user-facing guarantee is the
		// confirmation email, so its failure fails the request.
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "Failed to send contact message", res.Submitter.Err)
	}

	return &ContactSubmitResult{
		MessageID: messageID,
		Message:   "Contact message sent successfully",
		EmailSent: true,
		NextSteps: contactNextSteps,
	}, nil
}

func (s *ContactService) validate(sub *ContactSubmission) error {
	ve := &apperrors.ValidationError{}

	if len(sub.Name) < 2 || len(sub.Name) > 100 {
		ve.Add("name", "name must be between 2 and 100 characters")
	}
	if !emailRegex.MatchString(sub.Email) {
		ve.Add("email", "valid email is required")
	}
	if sub.Subject == "" {
		ve.Add("subject", "subject is required")
	} else if len(sub.Subject) > 200 {
		ve.Add("subject", "subject must not exceed 200 characters")
	}
	if sub.Message == "" {
		ve.Add("message", "message is required")
	} else if len(sub.Message) > 5000 {
		ve.Add("message", "message must not exceed 5000 characters")
	}
	validCategory := false
	for _, c := range domain.ContactCategories {
		if sub.Category == c {
			validCategory = true
			break
		}
	}
	if !validCategory {
		ve.Add("category", "invalid category")
	}

	if ve.HasErrors() {
		return ve
	}
	return nil
}

// NewsletterSignup is the newsletter form input.
type NewsletterSignup struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewsletterResult is the newsletter signup outcome.
type NewsletterResult struct {
	SubscriptionID string
	Message        string
}

// Subscribe persists a newsletter subscription and sends the welcome
// email. Duplicate emails are possible; subscriptions are looked up by a
// linear scan and uniqueness is not enforced.
func (s *ContactService) Subscribe(ctx context.Context, signup *NewsletterSignup) (*NewsletterResult, error) {
	email := strings.ToLower(strings.TrimSpace(signup.Email))
	name := strings.TrimSpace(signup.Name)

	if !emailRegex.MatchString(email) {
		ve := &apperrors.ValidationError{}
		return nil, ve.Add("email", "valid email is required")
	}

	sub := &domain.Subscriber{
		ID:     util.NewTimestampID("NEWS"),
		Email:  email,
		Name:   name,
		Type:   "newsletter",
		Active: true,
	}
	s.store.SaveUser(sub)

	s.log.Infow("[NEWSLETTER] subscription saved", "subscriptionId", sub.ID, "email", email)
	metrics.RecordNewsletterSubscription()

	res := s.dispatcher.Dispatch(ctx, newsletterWelcomeEmail(sub), newsletterAlertEmail(sub))
	if !res.Submitter.Delivered {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "Failed to subscribe to newsletter", res.Submitter.Err)
	}

	return &NewsletterResult{
		SubscriptionID: sub.ID,
		Message:        "Successfully subscribed to newsletter",
	}, nil
}
