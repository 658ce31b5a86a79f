package scanner

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/untoldecay/footprint/internal/browser"
)

// SocialAuditResult is one profile's public-exposure audit.
type SocialAuditResult struct {
	Platform      string
	URL           string
	VisibleFields map[string]string
	PIIFlags      []string
	PrivacyScore  int
	Error         string
}

var platformDomains = map[string]string{
	"twitter.com": "twitter", "x.com": "twitter",
	"github.com": "github", "instagram.com": "instagram",
	"linkedin.com": "linkedin", "reddit.com": "reddit",
	"tiktok.com": "tiktok", "facebook.com": "facebook",
}

// DetectPlatform resolves a platform name from the URL host, falling back
// to "unknown" (spec §4.3).
func DetectPlatform(url string) string {
	for domain, platform := range platformDomains {
		if strings.Contains(url, domain) {
			return platform
		}
	}
	return "unknown"
}

var metaTagPattern = regexp.MustCompile(`(?i)<meta\s+property="([^"]+)"\s+content="([^"]*)"`)

// ExtractMetaTags pulls OpenGraph-style `<meta property=... content=...>`
// pairs out of raw HTML by regex (spec §4.3).
func ExtractMetaTags(html string) map[string]string {
	tags := map[string]string{}
	for _, m := range metaTagPattern.FindAllStringSubmatch(html, -1) {
		tags[m[1]] = m[2]
	}
	return tags
}

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
	locationPhrases = []string{"located in", "based in", "lives in", "from "}
)

func detectPII(text string) []string {
	var flags []string
	if emailPattern.MatchString(text) {
		flags = append(flags, "email_visible")
	}
	if phonePattern.MatchString(text) {
		flags = append(flags, "phone_visible")
	}
	lower := strings.ToLower(text)
	for _, phrase := range locationPhrases {
		if strings.Contains(lower, phrase) {
			flags = append(flags, "location_visible")
			break
		}
	}
	return flags
}

var privacyDeductions = map[string]int{
	"email_visible":     30,
	"phone_visible":      30,
	"real_name_visible":  10,
	"location_visible":   15,
	"address_visible":    25,
}

// ComputePrivacyScore starts from 100 and subtracts each flagged PII
// category's deduction, clamped to 0 (spec §4.3).
func ComputePrivacyScore(flags []string) int {
	score := 100
	for _, f := range flags {
		if d, ok := privacyDeductions[f]; ok {
			score -= d
		} else {
			score -= 5
		}
	}
	if score < 0 {
		score = 0
	}
	return score
}

// looksLikeRealName reports whether a title contains a space and begins with
// an uppercase letter, the heuristic spec §4.3 uses to set
// real_name_visible. Tokens after the first are not checked.
func looksLikeRealName(title string) bool {
	if !strings.Contains(title, " ") {
		return false
	}
	r := []rune(title)
	return len(r) > 0 && unicode.IsUpper(r[0])
}

// AuditProfile opens a social profile URL in a stealth browser, extracts
// OpenGraph meta tags and body text, and scans both for PII markers. The
// browser is always closed on every exit path.
func AuditProfile(ctx context.Context, url string, timeout time.Duration) SocialAuditResult {
	platform := DetectPlatform(url)
	result := SocialAuditResult{Platform: platform, URL: url, VisibleFields: map[string]string{}}

	sess, err := browser.New(ctx)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	defer sess.Close()

	html, bodyText, err := sess.Navigate(ctx, url, timeout)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	meta := ExtractMetaTags(html)
	if v := meta["og:title"]; v != "" {
		result.VisibleFields["name"] = v
	}
	if v := meta["og:description"]; v != "" {
		result.VisibleFields["description"] = v
	}

	allText := strings.Join([]string{bodyText, meta["og:title"], meta["og:description"]}, " ")
	flags := detectPII(allText)
	if name := result.VisibleFields["name"]; looksLikeRealName(name) {
		flags = append(flags, "real_name_visible")
	}

	result.PIIFlags = flags
	result.PrivacyScore = ComputePrivacyScore(flags)
	return result
}
