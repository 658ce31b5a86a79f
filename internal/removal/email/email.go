// Package email implements the email-based removal handler: template
// selection, reference-id generation, and SMTP submission via STARTTLS+LOGIN
// auth (spec §4.5 "Email remover"). Grounded on
// original_source/digital_footprint/removers/email_remover.py.
package email

import (
	"crypto/rand"
	"fmt"
	"strings"
	"text/template"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/untoldecay/footprint/internal/removal"
)

// Config carries the SMTP settings this handler submits through.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
}

// Configured reports whether SMTP is usable (spec §7 category 3: missing
// config is a recorded error outcome, not a panic).
func (c Config) Configured() bool {
	return c.Host != "" && c.User != ""
}

// SelectTemplate picks CCPA deletion over GDPR erasure over a generic
// removal letter; CCPA wins when a broker declares both (spec §4.5).
func SelectTemplate(broker removal.BrokerCtx) string {
	switch {
	case broker.CCPACompliant:
		return ccpaDeletionTemplate
	case broker.GDPRCompliant:
		return gdprErasureTemplate
	default:
		return genericRemovalTemplate
	}
}

// NewReferenceID mints a REF-XXXXXXXX reference id: 8 uppercase hex digits.
func NewReferenceID() string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failure is effectively unreachable on any supported
		// platform; fall back to a timestamp-derived id rather than panic.
		return fmt.Sprintf("REF-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("REF-%02X%02X%02X%02X", buf[0], buf[1], buf[2], buf[3])
}

type templateData struct {
	Person    removal.PersonCtx
	Broker    removal.BrokerCtx
	Date      string
	Reference string
}

// RenderEmail selects a template by broker compliance flags and renders it
// with the person, broker, current date, and reference id. The rendered
// text's first line is "Subject: ...", the remainder is the body.
func RenderEmail(person removal.PersonCtx, broker removal.BrokerCtx, reference string, now time.Time) (subject, body string, err error) {
	tmpl, err := template.New("removal-email").Parse(SelectTemplate(broker))
	if err != nil {
		return "", "", fmt.Errorf("parse email template: %w", err)
	}

	var b strings.Builder
	data := templateData{Person: person, Broker: broker, Date: now.Format("2006-01-02"), Reference: reference}
	if err := tmpl.Execute(&b, data); err != nil {
		return "", "", fmt.Errorf("render email template: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	subject = strings.TrimSpace(strings.TrimPrefix(lines[0], "Subject:"))
	body = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return subject, body, nil
}

// Submit renders and sends the removal email via SMTP with STARTTLS and
// LOGIN auth. Missing SMTP config or a missing broker opt-out address
// returns an error outcome without attempting to send (spec §7 category 3).
func Submit(cfg Config, person removal.PersonCtx, broker removal.BrokerCtx) removal.Outcome {
	if !cfg.Configured() {
		return removal.Outcome{
			Status:  removal.StatusError,
			Method:  "email",
			Message: "SMTP not configured. Set SMTP_HOST, SMTP_USER, SMTP_PASSWORD",
		}
	}
	if broker.OptOutEmail == "" {
		return removal.Outcome{
			Status:  removal.StatusError,
			Method:  "email",
			Message: fmt.Sprintf("no opt-out email for %s", broker.Name),
		}
	}

	reference := NewReferenceID()
	subject, body, err := RenderEmail(person, broker, reference, time.Now())
	if err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "email", Message: err.Error()}
	}

	msg := gomail.NewMsg()
	if err := msg.From(cfg.User); err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "email", Message: err.Error()}
	}
	if err := msg.To(broker.OptOutEmail); err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "email", Message: err.Error()}
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
	)
	if err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "email", Message: err.Error()}
	}

	if err := client.DialAndSend(msg); err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "email", Message: err.Error()}
	}

	submittedAt := time.Now().UTC().Format(time.RFC3339)
	return removal.Outcome{
		Status:      removal.StatusSubmitted,
		Method:      "email",
		ReferenceID: reference,
		Recipient:   broker.OptOutEmail,
		Subject:     subject,
		SubmittedAt: &submittedAt,
	}
}
