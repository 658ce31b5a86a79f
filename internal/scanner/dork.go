// Package scanner holds the independent probe modules that each encapsulate
// one external exposure source (spec §4.3). Every scanner follows the same
// contract: small plain-data input, one I/O pass, a typed result — and it
// never raises for "not found", collapsing failures to an empty result.
package scanner

import (
	"fmt"
	"strings"
)

// highRiskDorkDomains flags paste/doxing hosts for DorkResult.RiskLevel.
var highRiskDorkDomains = []string{
	"pastebin.com", "paste.ee", "ghostbin.com", "hastebin.com", "doxbin.com", "doxbin.org",
}

// DorkResult is one search-engine hit attributed to a dork query.
type DorkResult struct {
	Query   string
	URL     string
	Title   string
	Snippet string
}

// RiskLevel classifies a dork hit: paste/doxing hosts and document filetypes
// are high risk, everything else medium (spec §4.3 "Dork generator").
func (d DorkResult) RiskLevel() string {
	lower := strings.ToLower(d.URL)
	for _, domain := range highRiskDorkDomains {
		if strings.Contains(lower, domain) {
			return "high"
		}
	}
	if strings.HasSuffix(lower, ".pdf") || strings.HasSuffix(lower, ".doc") || strings.HasSuffix(lower, ".docx") {
		return "high"
	}
	return "medium"
}

// BuildDorkQueries deterministically emits the fixed ordered list of quoted
// Google search expressions for a person (spec §4.3, scenario S5). Pure: no
// I/O, identical inputs produce an identical ordered output every time.
func BuildDorkQueries(name, email, phone, address string) []string {
	var queries []string

	queries = append(queries, fmt.Sprintf("%q", name))

	if email != "" {
		queries = append(queries,
			fmt.Sprintf("%q %q", name, email),
			fmt.Sprintf(`site:pastebin.com %q`, email),
			fmt.Sprintf("%q", email),
		)
	}

	if phone != "" {
		queries = append(queries,
			fmt.Sprintf("%q %q", name, phone),
			fmt.Sprintf("%q", phone),
		)
	}

	if address != "" {
		queries = append(queries, fmt.Sprintf("%q %q", name, address))
	}

	queries = append(queries,
		fmt.Sprintf(`filetype:pdf %q`, name),
		fmt.Sprintf(`filetype:xls %q`, name),
	)

	return queries
}

// ParseSearchResults attaches a query to a set of raw (url, title, snippet)
// hits. Consumers beyond this module (a search-API integration, out of
// scope per spec §1) are expected to supply the raw triples.
func ParseSearchResults(query string, raw [][3]string) []DorkResult {
	out := make([]DorkResult, 0, len(raw))
	for _, r := range raw {
		out = append(out, DorkResult{Query: query, URL: r[0], Title: r[1], Snippet: r[2]})
	}
	return out
}
