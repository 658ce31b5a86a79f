package scanner

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// hibpBase and dehashedBase are vars, not consts, so tests can point them at
// an httptest server instead of the real upstream API.
var (
	hibpBase     = "https://haveibeenpwned.com/api/v3"
	dehashedBase = "https://api.dehashed.com"
)

// HIBPBreach is one entry from HIBP's breachedaccount endpoint.
type HIBPBreach struct {
	Name        string
	Title       string
	Domain      string
	BreachDate  string
	DataClasses []string
	IsVerified  bool
}

// criticalDataClasses and highDataClasses implement the severity derivation
// in spec §4.1.
var (
	criticalDataClasses = map[string]bool{"Passwords": true, "Credit cards": true, "Social security numbers": true}
	highDataClasses     = map[string]bool{"Phone numbers": true, "Physical addresses": true, "IP addresses": true}
)

// Severity derives this breach's risk level from its declared data classes.
func (b HIBPBreach) Severity() string {
	for _, c := range b.DataClasses {
		if criticalDataClasses[c] {
			return "critical"
		}
	}
	for _, c := range b.DataClasses {
		if highDataClasses[c] {
			return "high"
		}
	}
	return "medium"
}

// DehashedRecord is one entry from a DeHashed search result.
type DehashedRecord struct {
	Email          string
	Username       string
	Password       string
	HashedPassword string
	Name           string
	DatabaseName   string
}

// Severity derives this record's risk level (spec §4.1): plaintext password
// beats hashed password beats medium.
func (r DehashedRecord) Severity() string {
	if r.Password != "" {
		return "critical"
	}
	if r.HashedPassword != "" {
		return "high"
	}
	return "medium"
}

// BreachResult aggregates both sources for one email.
type BreachResult struct {
	Email           string
	HIBPBreaches    []HIBPBreach
	DehashedRecords []DehashedRecord
	Total           int
}

// BreachConfig carries the per-source credentials a breach scan needs.
// Missing credentials are not an error: the corresponding source is skipped
// and contributes an empty result (spec §4.3, §7 category 1).
type BreachConfig struct {
	HIBPAPIKey     string
	DehashedAPIKey string
	DehashedEmail  string
	HTTPClient     *http.Client
}

func (c BreachConfig) client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return defaultHTTPClient
}

// defaultHTTPClient bounds every scanner HTTP call so a hung upstream never
// blocks a scheduled invocation indefinitely.
var defaultHTTPClient = &http.Client{Timeout: 30 * time.Second}

// CheckHIBP calls HIBP's breached-account endpoint. A 404 means no breaches
// (empty, not an error); any other non-200 response also collapses to empty
// per the policy in spec §7 category 2.
func CheckHIBP(ctx context.Context, email, apiKey string, client *http.Client) ([]HIBPBreach, error) {
	if apiKey == "" {
		return nil, nil
	}
	if client == nil {
		client = defaultHTTPClient
	}

	u := fmt.Sprintf("%s/breachedaccount/%s?truncateResponse=false", hibpBase, url.PathEscape(email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build hibp request: %w", err)
	}
	req.Header.Set("hibp-api-key", apiKey)
	req.Header.Set("user-agent", "DigitalFootprint-Scanner")

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil // transient network failure -> empty (spec §7 category 2)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var raw []struct {
		Name        string   `json:"Name"`
		Title       string   `json:"Title"`
		Domain      string   `json:"Domain"`
		BreachDate  string   `json:"BreachDate"`
		DataClasses []string `json:"DataClasses"`
		IsVerified  bool     `json:"IsVerified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, nil
	}

	out := make([]HIBPBreach, 0, len(raw))
	for _, b := range raw {
		out = append(out, HIBPBreach{
			Name:        b.Name,
			Title:       b.Title,
			Domain:      b.Domain,
			BreachDate:  b.BreachDate,
			DataClasses: b.DataClasses,
			IsVerified:  b.IsVerified,
		})
	}
	return out, nil
}

// CheckDehashed queries DeHashed's search endpoint for an email, using HTTP
// basic auth with the configured DeHashed account email and API key.
func CheckDehashed(ctx context.Context, email, dehashedEmail, apiKey string, client *http.Client) ([]DehashedRecord, error) {
	if apiKey == "" {
		return nil, nil
	}
	if client == nil {
		client = defaultHTTPClient
	}

	u := fmt.Sprintf("%s/search?query=%s", dehashedBase, url.QueryEscape("email:"+email))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build dehashed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if dehashedEmail != "" {
		req.SetBasicAuth(dehashedEmail, apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Entries []struct {
			Email          string `json:"email"`
			Username       string `json:"username"`
			Password       string `json:"password"`
			HashedPassword string `json:"hashed_password"`
			Name           string `json:"name"`
			DatabaseName   string `json:"database_name"`
		} `json:"entries"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, nil
	}

	out := make([]DehashedRecord, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		out = append(out, DehashedRecord{
			Email:          e.Email,
			Username:       e.Username,
			Password:       e.Password,
			HashedPassword: e.HashedPassword,
			Name:           e.Name,
			DatabaseName:   e.DatabaseName,
		})
	}
	return out, nil
}

// ScanBreaches runs both breach checks for an email address sequentially,
// as spec §4.3 requires ("calls two APIs sequentially").
func ScanBreaches(ctx context.Context, email string, cfg BreachConfig) (BreachResult, error) {
	hibp, err := CheckHIBP(ctx, email, cfg.HIBPAPIKey, cfg.client())
	if err != nil {
		return BreachResult{}, err
	}
	dehashed, err := CheckDehashed(ctx, email, cfg.DehashedEmail, cfg.DehashedAPIKey, cfg.client())
	if err != nil {
		return BreachResult{}, err
	}

	return BreachResult{
		Email:           email,
		HIBPBreaches:    hibp,
		DehashedRecords: dehashed,
		Total:           len(hibp) + len(dehashed),
	}, nil
}
