package services

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"net/textproto"
	"strings"

	"go.uber.org/zap"

	"websutech/internal/config"
	"websutech/internal/metrics"
)

// Delivery failure classification. Diagnostic only; no retries.
const (
	ErrKindAuth        = "auth"
	ErrKindConnection  = "connection"
	ErrKindRelayPolicy = "relay-policy"
	ErrKindUnknown     = "unknown"
)

// Message is an outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// SendResult is the outcome of a single send attempt.
type SendResult struct {
	Delivered bool
	DevMode   bool
	ErrorKind string
	Err       error
}

// Mailer sends a single email.
type Mailer interface {
	Send(ctx context.Context, msg Message) SendResult
}

// SMTPMailer sends multipart HTML+text email over SMTP. When credentials
// are absent it runs in development mode: the send is logged and reported
// as delivered, so intake never fails just because outbound email is not
// configured in a given environment.
type SMTPMailer struct {
	cfg *config.EmailConfig
	log *zap.SugaredLogger
}

// NewSMTPMailer creates a new SMTP mailer.
func NewSMTPMailer(cfg *config.EmailConfig, log *zap.SugaredLogger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, log: log}
}

// Send delivers the message, bounded by the configured send timeout.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) SendResult {
	if !m.cfg.Configured() {
		m.log.Infow("[EMAIL] dev mode, would send", "to", msg.To, "subject", msg.Subject)
		return SendResult{Delivered: true, DevMode: true}
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.SendTimeout)
	defer cancel()

	if err := m.send(ctx, msg); err != nil {
		kind := classifySMTPError(err)
		m.log.Errorw("[EMAIL] send failed", "to", msg.To, "subject", msg.Subject, "kind", kind, "error", err)
		return SendResult{Delivered: false, ErrorKind: kind, Err: err}
	}

	m.log.Infow("[EMAIL] sent", "to", msg.To, "subject", msg.Subject)
	return SendResult{Delivered: true}
}

// send runs the SMTP session by hand; smtp.SendMail takes no context, and
// an unbounded send would hold the request for as long as the relay cares
// to stall.
func (m *SMTPMailer) send(ctx context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.SMTPHost)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake failed: %w", err)
	}
	defer c.Close()

	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: m.cfg.SMTPHost}); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth failed: %w", err)
	}

	// Zoho and similar relays reject a from address that does not match
	// the authenticated user, so the envelope sender is always Username.
	if err := c.Mail(m.cfg.Username); err != nil {
		return fmt.Errorf("mail from rejected: %w", err)
	}
	if err := c.Rcpt(msg.To); err != nil {
		return fmt.Errorf("rcpt to rejected: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("data command failed: %w", err)
	}
	if _, err := w.Write(m.buildMessage(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("message rejected: %w", err)
	}

	return c.Quit()
}

// buildMessage builds a multipart/alternative body with a plain text part
// and an optional HTML part.
func (m *SMTPMailer) buildMessage(msg Message) []byte {
	from := m.cfg.Username
	if m.cfg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username)
	}
	replyTo := m.cfg.ReplyTo
	if replyTo == "" {
		replyTo = m.cfg.Username
	}

	boundary := "----=_NextPart_1234567890"

	message := fmt.Sprintf("From: %s\r\n", from) +
		fmt.Sprintf("To: %s\r\n", msg.To) +
		fmt.Sprintf("Reply-To: %s\r\n", replyTo) +
		fmt.Sprintf("Subject: %s\r\n", msg.Subject) +
		"MIME-Version: 1.0\r\n" +
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary) +
		"\r\n"

	message += fmt.Sprintf("--%s\r\n", boundary) +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		msg.Text + "\r\n"

	if msg.HTML != "" {
		message += fmt.Sprintf("--%s\r\n", boundary) +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			msg.HTML + "\r\n"
	}

	message += fmt.Sprintf("--%s--\r\n", boundary)
	return []byte(message)
}

// classifySMTPError buckets a send failure into the small diagnostic
// taxonomy: auth, connection, relay-policy or unknown.
func classifySMTPError(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrKindConnection
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch {
		case protoErr.Code == 530 || protoErr.Code == 534 || protoErr.Code == 535:
			return ErrKindAuth
		case protoErr.Code == 553 || protoErr.Code == 554:
			return ErrKindRelayPolicy
		}
	}

	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "auth"):
		return ErrKindAuth
	case strings.Contains(lower, "relay"):
		return ErrKindRelayPolicy
	case strings.Contains(lower, "connect") || strings.Contains(lower, "connection") ||
		strings.Contains(lower, "dial") || strings.Contains(lower, "timeout"):
		return ErrKindConnection
	}
	return ErrKindUnknown
}

// DispatchResult carries the two independent send outcomes of an intake.
type DispatchResult struct {
	Submitter SendResult
	Ops       SendResult
}

// Dispatcher sends the acknowledgment email to the submitter and the
// alert email to the operations mailbox. The acknowledgment is the one
// request-level success depends on; the alert is always best-effort.
type Dispatcher struct {
	mailer   Mailer
	opsEmail string
	log      *zap.SugaredLogger
}

// NewDispatcher creates a new dispatcher.
func NewDispatcher(mailer Mailer, opsEmail string, log *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{mailer: mailer, opsEmail: opsEmail, log: log}
}

// Dispatch sends the acknowledgment first, then the operations alert.
// Neither failure aborts the other; both outcomes are returned.
func (d *Dispatcher) Dispatch(ctx context.Context, ack, alert Message) DispatchResult {
	var res DispatchResult

	res.Submitter = d.mailer.Send(ctx, ack)
	metrics.RecordEmailSend("submitter", res.Submitter.Delivered)
	if !res.Submitter.Delivered {
		d.log.Errorw("[DISPATCH] submitter acknowledgment failed",
			"to", ack.To, "kind", res.Submitter.ErrorKind, "error", res.Submitter.Err)
	}

	alert.To = d.opsEmail
	res.Ops = d.mailer.Send(ctx, alert)
	metrics.RecordEmailSend("ops", res.Ops.Delivered)
	if !res.Ops.Delivered {
		d.log.Warnw("[DISPATCH] operations alert failed (non-critical)",
			"kind", res.Ops.ErrorKind, "error", res.Ops.Err)
	}

	return res
}
