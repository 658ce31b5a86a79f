package scanner

import (
	"context"
	"strings"
	"time"

	"github.com/untoldecay/footprint/internal/browser"
)

// BrokerScanResult is the outcome of probing one broker's site for a person.
type BrokerScanResult struct {
	BrokerSlug string
	BrokerName string
	URL        string
	Found      bool
	PageText   string // populated only when Found, truncated to 500 runes
	Error      string
}

// RiskLevel is high when the person's data was found, low otherwise.
func (r BrokerScanResult) RiskLevel() string {
	if r.Found {
		return "high"
	}
	return "low"
}

// BuildSearchURL substitutes {first}, {last}, {state}, {city} placeholders
// in a broker's declared search URL pattern; unbound placeholders become
// empty strings (spec §4.3).
func BuildSearchURL(pattern, first, last, state, city string) string {
	r := strings.NewReplacer(
		"{first}", first,
		"{last}", last,
		"{state}", state,
		"{city}", city,
	)
	return r.Replace(pattern)
}

// CheckNameInResults declares a hit iff both first and last name
// (case-insensitive) appear in the extracted page text (spec §4.3, testable
// property 7).
func CheckNameInResults(pageText, first, last string) bool {
	lower := strings.ToLower(pageText)
	return strings.Contains(lower, strings.ToLower(first)) && strings.Contains(lower, strings.ToLower(last))
}

// ScanBroker opens a broker's search URL in a stealth browser context,
// waits for the page to settle, and declares a hit by name-substring match.
// The browser is always closed on every exit path.
func ScanBroker(ctx context.Context, slug, name, urlPattern, first, last, state, city string, timeout time.Duration) BrokerScanResult {
	url := BuildSearchURL(urlPattern, first, last, state, city)
	result := BrokerScanResult{BrokerSlug: slug, BrokerName: name, URL: url}

	sess, err := browser.New(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer sess.Close()
	defer browser.RandomDelay(ctx)

	_, bodyText, err := sess.Navigate(ctx, url, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.Found = CheckNameInResults(bodyText, first, last)
	if result.Found {
		result.PageText = truncateRunes(bodyText, 500)
	}
	return result
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
