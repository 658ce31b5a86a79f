package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// ahmiaBase is a var, not a const, so tests can point it at an httptest server.
var ahmiaBase = "https://ahmia.fi"

// PasteResult is one HIBP paste-account appearance.
type PasteResult struct {
	Source     string
	PasteID    string
	Title      string
	Date       string
	EmailCount int
}

// Severity is always high for a paste appearance (spec §4.1).
func (PasteResult) Severity() string { return "high" }

// AhmiaResult is one Ahmia.fi clearnet search hit indexing a Tor hidden
// service.
type AhmiaResult struct {
	Title   string
	URL     string
	Snippet string
}

var darkWebCriticalKeywords = []string{"password", "credential", "dump", "leak", "breach"}

// Severity flags a title/snippet match against the credential-dump keyword
// list as critical, else high (spec §4.1).
func (a AhmiaResult) Severity() string {
	text := strings.ToLower(a.Title + " " + a.Snippet)
	for _, kw := range darkWebCriticalKeywords {
		if strings.Contains(text, kw) {
			return "critical"
		}
	}
	return "high"
}

// DarkWebResult aggregates HIBP pastes and Ahmia clearnet hits for an email.
type DarkWebResult struct {
	Email        string
	Pastes       []PasteResult
	AhmiaResults []AhmiaResult
	Total        int
}

// CheckHIBPPastes calls HIBP's paste-account endpoint; any non-200 response
// (including 404 "no pastes") collapses to empty (spec §4.3).
func CheckHIBPPastes(ctx context.Context, email, apiKey string, client *http.Client) ([]PasteResult, error) {
	if apiKey == "" {
		return nil, nil
	}
	if client == nil {
		client = defaultHTTPClient
	}

	u := fmt.Sprintf("%s/pasteaccount/%s", hibpBase, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build hibp paste request: %w", err)
	}
	req.Header.Set("hibp-api-key", apiKey)
	req.Header.Set("user-agent", "DigitalFootprint-Scanner")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var raw []struct {
		Source     string `json:"Source"`
		ID         string `json:"Id"`
		Title      string `json:"Title"`
		Date       string `json:"Date"`
		EmailCount int    `json:"EmailCount"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, nil
	}

	out := make([]PasteResult, 0, len(raw))
	for _, p := range raw {
		source := p.Source
		if source == "" {
			source = "Unknown"
		}
		out = append(out, PasteResult{Source: source, PasteID: p.ID, Title: p.Title, Date: p.Date, EmailCount: p.EmailCount})
	}
	return out, nil
}

// ahmiaResultPattern extracts Ahmia's `<li class="result">` blocks, matching
// the tolerant regex shape spec §4.3 describes.
var ahmiaResultPattern = regexp.MustCompile(`(?s)<li\s+class="result">\s*<h4><a\s+href="([^"]+)">([^<]+)</a></h4>\s*<p>([^<]*)</p>`)

// ParseAhmiaHTML parses the Ahmia search-results page. Malformed HTML (no
// matches) yields an empty result, never an error.
func ParseAhmiaHTML(html string) []AhmiaResult {
	matches := ahmiaResultPattern.FindAllStringSubmatch(html, -1)
	out := make([]AhmiaResult, 0, len(matches))
	for _, m := range matches {
		out = append(out, AhmiaResult{
			URL:     strings.TrimSpace(m[1]),
			Title:   strings.TrimSpace(m[2]),
			Snippet: strings.TrimSpace(m[3]),
		})
	}
	return out
}

// SearchAhmia issues a single clearnet GET against Ahmia.fi and parses the
// results out of the returned HTML.
func SearchAhmia(ctx context.Context, query string, client *http.Client) ([]AhmiaResult, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	u := fmt.Sprintf("%s/search/?q=%s", ahmiaBase, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build ahmia request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}
	return ParseAhmiaHTML(string(body)), nil
}

// ScanDarkWeb runs the HIBP paste check and the Ahmia clearnet search for an
// email (spec §4.6 pipeline stage 2 "dark-web scan").
func ScanDarkWeb(ctx context.Context, email, hibpAPIKey string, client *http.Client) (DarkWebResult, error) {
	pastes, err := CheckHIBPPastes(ctx, email, hibpAPIKey, client)
	if err != nil {
		return DarkWebResult{}, err
	}
	ahmia, err := SearchAhmia(ctx, email, client)
	if err != nil {
		return DarkWebResult{}, err
	}

	return DarkWebResult{
		Email:        email,
		Pastes:       pastes,
		AhmiaResults: ahmia,
		Total:        len(pastes) + len(ahmia),
	}, nil
}
