package alert

import (
	"strings"
	"testing"

	"github.com/untoldecay/footprint/internal/config"
)

func TestShouldAlert(t *testing.T) {
	cases := []struct {
		newCount, prevCount int
		want                bool
	}{
		{5, 3, true},
		{3, 5, false},
		{3, 3, false},
		{0, 0, false},
	}
	for _, c := range cases {
		if got := ShouldAlert(c.newCount, c.prevCount); got != c.want {
			t.Errorf("ShouldAlert(%d, %d) = %v, want %v", c.newCount, c.prevCount, got, c.want)
		}
	}
}

func TestBuildAlertBodyIncludesDeltaAndFields(t *testing.T) {
	body := BuildAlertBody("Jane Doe", "breach_recheck", 8, 5)
	for _, want := range []string{"Jane Doe", "breach_recheck", "8 total", "3 new", "Previous: 5"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
}

func TestSendAlertWithoutConfigReturnsFalse(t *testing.T) {
	if SendAlert("subject", "body", &config.Config{}) {
		t.Error("SendAlert with no SMTP host/alert email should return false")
	}
}

func TestSendAlertMissingAlertEmailReturnsFalse(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com"}
	if SendAlert("subject", "body", cfg) {
		t.Error("SendAlert with no alert email should return false")
	}
}

func TestCheckAndAlertSkipsWhenNotIncreased(t *testing.T) {
	cfg := &config.Config{SMTPHost: "smtp.example.com", AlertEmail: "jane@example.com"}
	if CheckAndAlert("breach_recheck", 3, 5, "Jane Doe", cfg) {
		t.Error("CheckAndAlert should not send when count did not increase")
	}
}

func TestCheckAndAlertSkipsWhenNoSMTPConfigured(t *testing.T) {
	if CheckAndAlert("breach_recheck", 5, 3, "Jane Doe", &config.Config{}) {
		t.Error("CheckAndAlert should not send when SMTP is unconfigured, even if count increased")
	}
}
