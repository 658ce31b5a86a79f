// Package webform implements the web-form removal handler: CAPTCHA
// detection, heuristic field filling, and submission via a stealth headless
// browser (spec §4.5 "Web-form remover"). Grounded on
// original_source/digital_footprint/removers/web_form_remover.py, with the
// form-filling heuristics spec §4.5 adds beyond that original.
package webform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/untoldecay/footprint/internal/browser"
	"github.com/untoldecay/footprint/internal/removal"
)

// captchaMarkers are matched case-insensitively against the full page HTML
// (spec §4.5).
var captchaMarkers = []string{
	"recaptcha", "hcaptcha", "h-captcha", "g-recaptcha", "captcha", "cf-turnstile",
}

// DetectCaptcha reports whether any known CAPTCHA marker appears in html.
func DetectCaptcha(html string) bool {
	lower := strings.ToLower(html)
	for _, marker := range captchaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// fieldSelectors is the heuristic selector table: for each logical form
// field, the CSS selectors tried in order until one matches a visible,
// present element (spec §4.5).
var fieldSelectors = map[string][]string{
	"name":       {"input[name='name']", "input[name='fullname']", "input#name", "input[placeholder*='name' i]"},
	"first_name": {"input[name='first_name']", "input[name='firstname']", "input#first_name"},
	"last_name":  {"input[name='last_name']", "input[name='lastname']", "input#last_name"},
	"email":      {"input[type='email']", "input[name='email']", "input#email"},
	"phone":      {"input[type='tel']", "input[name='phone']", "input#phone"},
	"address":    {"input[name='address']", "input[name='street']", "input#address", "textarea[name='address']"},
}

// fieldOrder fixes the iteration order spec §4.5 implies: name fields
// before contact fields.
var fieldOrder = []string{"name", "first_name", "last_name", "email", "phone", "address"}

// submitSelectors is the heuristic submit-button selector table, tried in
// order (spec §4.5).
var submitSelectors = []string{
	"button[type='submit']",
	"input[type='submit']",
	"button#submit",
	"button.submit",
}

func fieldValue(person removal.PersonCtx, field string) string {
	switch field {
	case "name":
		return person.Name
	case "first_name":
		return firstToken(person.Name)
	case "last_name":
		return lastToken(person.Name)
	case "email":
		return person.Email
	case "phone":
		return person.Phone
	case "address":
		return person.Address
	default:
		return ""
	}
}

func firstToken(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func lastToken(name string) string {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// fillFirstVisible tries each selector for a field in order, setting the
// value of the first one whose first matching element is visible (has a
// rendered layout box). Returns true if a fill happened.
func fillFirstVisible(ctx context.Context, selectors []string, value string) bool {
	if value == "" {
		return false
	}
	for _, sel := range selectors {
		var nodes []*cdp.Node
		if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
			continue
		}
		if len(nodes) == 0 {
			continue
		}
		var visible bool
		check := fmt.Sprintf(`(() => { const el = document.querySelector(%q); return !!el && el.getClientRects().length > 0; })()`, sel)
		if err := chromedp.Run(ctx, chromedp.Evaluate(check, &visible)); err != nil || !visible {
			continue
		}
		if err := chromedp.Run(ctx, chromedp.SetValue(sel, value, chromedp.ByQuery)); err != nil {
			continue
		}
		return true
	}
	return false
}

// clickFirstVisible tries each selector in order, clicking the first one
// present. Returns true if a click happened.
func clickFirstVisible(ctx context.Context, selectors []string) bool {
	for _, sel := range selectors {
		var nodes []*cdp.Node
		if err := chromedp.Run(ctx, chromedp.Nodes(sel, &nodes, chromedp.ByQuery, chromedp.AtLeast(0))); err != nil {
			continue
		}
		if len(nodes) == 0 {
			continue
		}
		if err := chromedp.Run(ctx, chromedp.Click(sel, chromedp.ByQuery)); err != nil {
			continue
		}
		return true
	}
	return false
}

// Submit opens a broker's opt-out URL, checks for a CAPTCHA, fills whatever
// form fields it can find, and submits. The browser is always closed on
// every exit path.
func Submit(ctx context.Context, person removal.PersonCtx, broker removal.BrokerCtx, timeout time.Duration) removal.Outcome {
	if broker.OptOutURL == "" {
		return removal.Outcome{
			Status:  removal.StatusError,
			Method:  "web_form",
			Message: fmt.Sprintf("no opt-out URL for %s", broker.Name),
		}
	}
	if timeout <= 0 {
		timeout = browser.DefaultNavigationTimeout
	}

	sess, err := browser.New(ctx)
	if err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "web_form", Message: err.Error()}
	}
	defer sess.Close()

	html, _, err := sess.Navigate(ctx, broker.OptOutURL, timeout)
	if err != nil {
		return removal.Outcome{Status: removal.StatusError, Method: "web_form", Message: err.Error()}
	}

	if DetectCaptcha(html) {
		return removal.Outcome{
			Status:  removal.StatusCaptchaRequired,
			Method:  "web_form",
			Message: fmt.Sprintf("CAPTCHA detected on %s. Please solve manually at %s", broker.Name, broker.OptOutURL),
		}
	}

	fills := 0
	for _, field := range fieldOrder {
		value := fieldValue(person, field)
		if fillFirstVisible(sess.Ctx, fieldSelectors[field], value) {
			fills++
		}
	}

	if fills == 0 {
		return removal.Outcome{
			Status:  removal.StatusNoFormFound,
			Method:  "web_form",
			Message: fmt.Sprintf("no form fields found on %s", broker.Name),
		}
	}

	if !clickFirstVisible(sess.Ctx, submitSelectors) {
		return removal.Outcome{
			Status:  removal.StatusFilledNotSubmitted,
			Method:  "web_form",
			Message: fmt.Sprintf("filled %d field(s) on %s but found no submit button", fills, broker.Name),
		}
	}

	_ = chromedp.Run(sess.Ctx, chromedp.Sleep(500*time.Millisecond))

	submittedAt := time.Now().UTC().Format(time.RFC3339)
	return removal.Outcome{
		Status:      removal.StatusSubmitted,
		Method:      "web_form",
		SubmittedAt: &submittedAt,
	}
}
