// Package alert sends an email notification when a scheduled scan turns up
// more findings than its previous run (spec §4.6 "Alerting"). Grounded on
// original_source/digital_footprint/pipeline/alerter.py.
package alert

import (
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/untoldecay/footprint/internal/config"
)

// ShouldAlert reports whether newCount exceeds previousCount.
func ShouldAlert(newCount, previousCount int) bool {
	return newCount > previousCount
}

// BuildAlertBody renders the plain-text alert body.
func BuildAlertBody(personName, jobName string, newCount, previousCount int) string {
	delta := newCount - previousCount
	return fmt.Sprintf(
		"Digital Footprint Alert\n"+
			"=======================\n\n"+
			"Person: %s\n"+
			"Scan type: %s\n"+
			"Findings: %d total (%d new)\n"+
			"Previous: %d\n\n"+
			"Action: Review new findings and take appropriate steps.\n"+
			"Run the protect command for a full pipeline scan.\n",
		personName, jobName, newCount, delta, previousCount,
	)
}

// SendAlert delivers subject/body via SMTP. It returns false (never an
// error) on missing config or any send failure — an alert that can't go
// out must never fail the scheduled job it rode in on.
func SendAlert(subject, body string, cfg *config.Config) bool {
	if cfg.SMTPHost == "" || cfg.AlertEmail == "" {
		return false
	}

	msg := gomail.NewMsg()
	from := cfg.SMTPUser
	if from == "" {
		from = "digital-footprint@localhost"
	}
	if err := msg.From(from); err != nil {
		return false
	}
	if err := msg.To(cfg.AlertEmail); err != nil {
		return false
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	opts := []gomail.Option{gomail.WithPort(cfg.SMTPPort)}
	if cfg.SMTPUser != "" && cfg.SMTPPassword != "" {
		opts = append(opts,
			gomail.WithTLSPolicy(gomail.TLSOpportunistic),
			gomail.WithSMTPAuth(gomail.SMTPAuthLogin),
			gomail.WithUsername(cfg.SMTPUser),
			gomail.WithPassword(cfg.SMTPPassword),
		)
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.NoTLS))
	}

	client, err := gomail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return false
	}

	return client.DialAndSend(msg) == nil
}

// CheckAndAlert sends an alert iff newCount exceeds previousCount, returning
// whether one was sent.
func CheckAndAlert(jobName string, newCount, previousCount int, personName string, cfg *config.Config) bool {
	if !ShouldAlert(newCount, previousCount) {
		return false
	}
	delta := newCount - previousCount
	subject := fmt.Sprintf("[Digital Footprint] %d new findings for %s (%s)", delta, personName, jobName)
	body := BuildAlertBody(personName, jobName, newCount, previousCount)
	return SendAlert(subject, body, cfg)
}
