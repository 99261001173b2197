package services

import (
	"fmt"
	"strings"
	"time"

	"websutech/internal/domain"
)

const emailFooter = `
        <div style="background: #f1f1f1; padding: 20px; text-align: center; font-size: 12px; color: #666;">
            <p>Websutech - Global Commodity Trading Solutions</p>
            <p>Dubai | Singapore | London | Houston</p>
            <p>&copy; %s Websutech. All rights reserved.</p>
        </div>`

func footerHTML() string {
	return fmt.Sprintf(emailFooter, time.Now().Format("2006"))
}

func headerHTML(tagline string) string {
	return fmt.Sprintf(`
        <div style="background: #1a365d; color: white; padding: 20px; text-align: center;">
            <h1>Websutech</h1>
            <p>%s</p>
        </div>`, tagline)
}

func wrapHTML(header, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto;">%s
        <div style="padding: 30px; background: white; border: 1px solid #ddd; border-top: none;">%s
        </div>%s
</body>
</html>`, header, body, footerHTML())
}

// contactConfirmationEmail is the acknowledgment sent to a contact form
// submitter.
func contactConfirmationEmail(msg *domain.ContactMessage) Message {
	body := fmt.Sprintf(`
            <h2>Dear %s,</h2>
            <p>Thank you for reaching out to Websutech! We have received your message and appreciate you taking the time to contact us.</p>
            <div style="background: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0; border-left: 4px solid #d4af37;">
                <p><strong>Message Reference:</strong> #%s</p>
                <p><strong>Subject:</strong> %s</p>
                <p><strong>Category:</strong> %s</p>
            </div>
            <p>Our team will review your message and respond to you within <strong>24 hours</strong> during business days.</p>
            <p>Best regards,<br><strong>The Websutech Team</strong></p>`,
		msg.Name, msg.ID, msg.Subject, msg.Category)

	text := fmt.Sprintf(`Dear %s,

Thank you for reaching out to Websutech! We have received your message.

Message Reference: #%s
Subject: %s

Our team will respond within 24 hours during business days.

Best regards,
The Websutech Team`, msg.Name, msg.ID, msg.Subject)

	return Message{
		To:      msg.Email,
		Subject: fmt.Sprintf("Thank You for Your Inquiry - %s", msg.ID),
		HTML:    wrapHTML(headerHTML("Thank You for Contacting Us"), body),
		Text:    text,
	}
}

// contactAlertEmail is the operations notification for a new contact
// message.
func contactAlertEmail(msg *domain.ContactMessage) Message {
	body := fmt.Sprintf(`
            <h2>New Contact Message</h2>
            <p><strong>Message ID:</strong> %s</p>
            <p><strong>From:</strong> %s (%s)</p>
            <p><strong>Category:</strong> %s</p>
            <p><strong>Subject:</strong> %s</p>
            <p><strong>Message:</strong></p>
            <div style="background: #f5f5f5; padding: 15px; border-radius: 5px;">%s</div>`,
		msg.ID, msg.Name, msg.Email, msg.Category, msg.Subject,
		strings.ReplaceAll(msg.Message, "\n", "<br>"))

	text := fmt.Sprintf(`New Contact Message

Message ID: %s
From: %s (%s)
Category: %s
Subject: %s

%s`, msg.ID, msg.Name, msg.Email, msg.Category, msg.Subject, msg.Message)

	return Message{
		Subject: fmt.Sprintf("New Contact Message: %s", msg.Subject),
		HTML:    wrapHTML(headerHTML("Global Commodity Trading"), body),
		Text:    text,
	}
}

// buyerConfirmationEmail is the acknowledgment for a buyer inquiry.
func buyerConfirmationEmail(inq *domain.Inquiry) Message {
	body := fmt.Sprintf(`
            <h2>Dear %s,</h2>
            <p>Thank you for submitting your inquiry for <strong>%s</strong>.</p>
            <p><strong>Inquiry Reference:</strong> #%s</p>
            <p>Our trading team has received your request and will review it shortly. Here's what happens next:</p>
            <ol>
                <li>Our team will review your inquiry (within 24 hours)</li>
                <li>We will prepare a Mutual NDA for signing</li>
                <li>After NDA execution, we'll share available offers</li>
                <li>You'll receive formal offers from verified suppliers</li>
            </ol>
            <p>Best regards,<br><strong>The Websutech Team</strong></p>`,
		inq.ContactPerson, inq.Product, inq.ID)

	text := fmt.Sprintf(`Dear %s,

Thank you for submitting your inquiry for %s.

Inquiry Reference: #%s

Our trading team will review it within 24 hours, prepare a Mutual NDA,
and share available offers after NDA execution.

Best regards,
The Websutech Team`, inq.ContactPerson, inq.Product, inq.ID)

	return Message{
		To:      inq.Email,
		Subject: fmt.Sprintf("Inquiry Confirmation - %s (%s)", inq.Product, inq.ID),
		HTML:    wrapHTML(headerHTML("Thank You for Your Inquiry"), body),
		Text:    text,
	}
}

// buyerAlertEmail is the operations notification for a buyer inquiry.
func buyerAlertEmail(inq *domain.Inquiry) Message {
	quantity, _ := inq.Fields["quantity"].(string)
	body := fmt.Sprintf(`
            <h2>New Buyer Inquiry</h2>
            <p><strong>Reference:</strong> #%s</p>
            <p><strong>Company:</strong> %s</p>
            <p><strong>Contact:</strong> %s (%s)</p>
            <p><strong>Product:</strong> %s</p>
            <p><strong>Quantity:</strong> %s</p>
            <div style="background: #e8f4fc; padding: 15px; border-radius: 5px; margin: 15px 0;">
                <p><strong>Action Required:</strong> Please contact the buyer within 24 hours.</p>
            </div>`,
		inq.ID, inq.CompanyName, inq.ContactPerson, inq.Email, inq.Product, quantity)

	text := fmt.Sprintf(`New Buyer Inquiry

Reference: #%s
Company: %s
Contact: %s (%s)
Product: %s
Quantity: %s

Action Required: contact the buyer within 24 hours.`,
		inq.ID, inq.CompanyName, inq.ContactPerson, inq.Email, inq.Product, quantity)

	return Message{
		Subject: fmt.Sprintf("New Buyer Inquiry: %s - %s", inq.Product, inq.ID),
		HTML:    wrapHTML(headerHTML("Global Commodity Trading"), body),
		Text:    text,
	}
}

// sellerConfirmationEmail is the acknowledgment for a seller inquiry.
func sellerConfirmationEmail(inq *domain.Inquiry) Message {
	return Message{
		To:      inq.Email,
		Subject: fmt.Sprintf("Seller Registration Confirmation - %s (%s)", inq.Product, inq.ID),
		HTML:    fmt.Sprintf("<p>Thank you %s, we received your seller registration (%s).</p>", inq.ContactPerson, inq.ID),
		Text:    fmt.Sprintf("Thank you %s, we received your seller registration (%s).", inq.ContactPerson, inq.ID),
	}
}

// sellerAlertEmail is the operations notification for a seller inquiry.
func sellerAlertEmail(inq *domain.Inquiry) Message {
	return Message{
		Subject: fmt.Sprintf("New Seller Inquiry: %s - %s", inq.Product, inq.ID),
		HTML:    fmt.Sprintf("<p>Seller inquiry received: %s - %s</p>", inq.CompanyName, inq.Product),
		Text:    fmt.Sprintf("Seller inquiry received: %s - %s", inq.CompanyName, inq.Product),
	}
}

// mandateConfirmationEmail is the acknowledgment for a mandate
// application.
func mandateConfirmationEmail(inq *domain.Inquiry) Message {
	return Message{
		To:      inq.Email,
		Subject: fmt.Sprintf("Mandate Application Received - %s", inq.ID),
		HTML:    fmt.Sprintf("<p>Thank you %s, your application (%s) has been received.</p>", inq.ContactPerson, inq.ID),
		Text:    fmt.Sprintf("Thank you %s, your application (%s) has been received.", inq.ContactPerson, inq.ID),
	}
}

// mandateAlertEmail is the operations notification for a mandate
// application.
func mandateAlertEmail(inq *domain.Inquiry) Message {
	return Message{
		Subject: fmt.Sprintf("New Mandate Application - %s (%s)", inq.CompanyName, inq.ID),
		HTML:    fmt.Sprintf("<p>Mandate application received: %s (%s)</p>", inq.CompanyName, inq.ID),
		Text:    fmt.Sprintf("Mandate application received: %s (%s)", inq.CompanyName, inq.ID),
	}
}

// newsletterWelcomeEmail is the acknowledgment for a newsletter signup.
func newsletterWelcomeEmail(sub *domain.Subscriber) Message {
	name := sub.Name
	if name == "" {
		name = "Subscriber"
	}
	body := fmt.Sprintf(`
            <h2>Welcome to Our Community!</h2>
            <p>Dear %s,</p>
            <p>Thank you for subscribing to the Websutech newsletter. You'll now receive:</p>
            <ul>
                <li>Market trends and commodity insights</li>
                <li>New product offerings and availability</li>
                <li>Industry news and analysis</li>
                <li>Compliance and regulatory updates</li>
            </ul>
            <p>We respect your privacy. You can unsubscribe at any time by clicking the link in our emails.</p>
            <p>Best regards,<br>The Websutech Team</p>`, name)

	text := fmt.Sprintf(`Dear %s,

Thank you for subscribing to the Websutech newsletter. You'll receive
market trends, product offerings, industry news, and regulatory updates.

You can unsubscribe at any time by clicking the link in our emails.

Best regards,
The Websutech Team`, name)

	return Message{
		To:      sub.Email,
		Subject: "Welcome to Websutech Newsletter",
		HTML:    wrapHTML(headerHTML("Websutech Newsletter"), body),
		Text:    text,
	}
}

// newsletterAlertEmail is the operations notification for a newsletter
// signup.
func newsletterAlertEmail(sub *domain.Subscriber) Message {
	return Message{
		Subject: fmt.Sprintf("New Newsletter Subscription - %s", sub.ID),
		HTML:    fmt.Sprintf("<p>New newsletter subscription: %s (%s)</p>", sub.Email, sub.ID),
		Text:    fmt.Sprintf("New newsletter subscription: %s (%s)", sub.Email, sub.ID),
	}
}
