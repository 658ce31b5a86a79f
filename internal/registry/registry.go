// Package registry loads declarative broker definitions from a directory of
// YAML documents, validates them, and upserts them into the Store (spec §4.2).
// Grounded on original_source/digital_footprint/broker_registry.py.
package registry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/untoldecay/footprint/internal/model"
	"github.com/untoldecay/footprint/internal/store"
)

// optOutYAML mirrors the broker YAML schema's opt_out sub-document (spec §6).
type optOutYAML struct {
	Method      string   `yaml:"method"`
	URL         string   `yaml:"url"`
	Email       string   `yaml:"email"`
	Phone       string   `yaml:"phone"`
	MailAddress string   `yaml:"mail_address"`
	Steps       []string `yaml:"steps"`
}

type brokerYAML struct {
	Name          string     `yaml:"name"`
	URL           string     `yaml:"url"`
	Category      string     `yaml:"category"`
	Difficulty    string     `yaml:"difficulty"`
	Automatable   bool       `yaml:"automatable"`
	RecheckDays   int        `yaml:"recheck_days"`
	CCPACompliant bool       `yaml:"ccpa_compliant"`
	GDPRCompliant bool       `yaml:"gdpr_compliant"`
	Notes         string     `yaml:"notes"`
	OptOut        optOutYAML `yaml:"opt_out"`
}

// LoadResult summarises one registry load pass.
type LoadResult struct {
	Loaded int
	Errors []string // one entry per invalid document, "<file>: <message>"
}

// LoadAll reads every non-leading-underscore *.yaml file in dir, in sorted
// filename order, validates each, and upserts valid ones into the store.
// Invalid documents are skipped with a reported error; a bad file never
// fails the whole load (spec §4.2).
func LoadAll(ctx context.Context, st *store.Store, dir string) (*LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read broker directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasPrefix(name, "_") {
			continue
		}
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := &LoadResult{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		slug := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		raw, err := os.ReadFile(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		var doc brokerYAML
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}

		if errs := Validate(doc); len(errs) > 0 {
			for _, e := range errs {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", name, e))
			}
			continue
		}

		broker := toBroker(slug, doc)
		if _, err := st.UpsertBrokerBySlug(ctx, broker); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		result.Loaded++
	}

	return result, nil
}

// Validate checks required fields and closed-set enum membership, returning
// one human-readable error string per problem (never raising).
func Validate(doc brokerYAML) []string {
	var errs []string

	if strings.TrimSpace(doc.Name) == "" {
		errs = append(errs, "missing required field: name")
	}
	if strings.TrimSpace(doc.URL) == "" {
		errs = append(errs, "missing required field: url")
	}
	if strings.TrimSpace(doc.Category) == "" {
		errs = append(errs, "missing required field: category")
	} else if !model.ValidCategories[doc.Category] {
		errs = append(errs, fmt.Sprintf("invalid category: %s", doc.Category))
	}

	if doc.Difficulty != "" && !model.ValidDifficulties[doc.Difficulty] {
		errs = append(errs, fmt.Sprintf("invalid difficulty: %s", doc.Difficulty))
	}
	if doc.OptOut.Method != "" && !model.ValidMethods[doc.OptOut.Method] {
		errs = append(errs, fmt.Sprintf("invalid opt_out.method: %s", doc.OptOut.Method))
	}

	return errs
}

func toBroker(slug string, doc brokerYAML) *model.Broker {
	difficulty := doc.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}
	recheckDays := doc.RecheckDays
	if recheckDays == 0 {
		recheckDays = 30
	}

	return &model.Broker{
		Slug:          slug,
		Name:          doc.Name,
		URL:           doc.URL,
		Category:      doc.Category,
		OptOutMethod:  doc.OptOut.Method,
		OptOutURL:     doc.OptOut.URL,
		OptOutEmail:   doc.OptOut.Email,
		OptOutPhone:   doc.OptOut.Phone,
		OptOutMail:    doc.OptOut.MailAddress,
		OptOutSteps:   doc.OptOut.Steps,
		Difficulty:    difficulty,
		Automatable:   doc.Automatable,
		RecheckDays:   recheckDays,
		CCPACompliant: doc.CCPACompliant,
		GDPRCompliant: doc.GDPRCompliant,
		Notes:         doc.Notes,
	}
}
