// Package model defines the durable entities the store persists: Person,
// Broker, Finding, Removal, Breach, and the append-only run records.
package model

import "time"

// Person is a protected individual being monitored.
type Person struct {
	ID        int64
	Name      string
	Relation  string // self, spouse, child, parent, other
	Emails    []string
	Phones    []string
	Addresses []string
	Usernames []string
	DOB       *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FirstEmail returns the first email or "" if none are recorded.
func (p *Person) FirstEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// FirstPhone returns the first phone number or "".
func (p *Person) FirstPhone() string {
	if len(p.Phones) == 0 {
		return ""
	}
	return p.Phones[0]
}

// FirstAddress returns the first address or "".
func (p *Person) FirstAddress() string {
	if len(p.Addresses) == 0 {
		return ""
	}
	return p.Addresses[0]
}

// Broker categories, closed set per spec §3 / §6.
const (
	CategoryPeopleSearch    = "people_search"
	CategoryBackgroundCheck = "background_check"
	CategoryPublicRecords   = "public_records"
	CategoryMarketing       = "marketing"
	CategorySocialAggregate = "social_aggregator"
	CategoryProperty        = "property"
	CategoryFinancial       = "financial"
	CategoryGenealogy       = "genealogy"
	CategoryReverseLookup   = "reverse_lookup"
	CategoryImageSearch     = "image_search"
)

// ValidCategories is the closed set of broker categories.
var ValidCategories = map[string]bool{
	CategoryPeopleSearch:    true,
	CategoryBackgroundCheck: true,
	CategoryPublicRecords:   true,
	CategoryMarketing:       true,
	CategorySocialAggregate: true,
	CategoryProperty:        true,
	CategoryFinancial:       true,
	CategoryGenealogy:       true,
	CategoryReverseLookup:   true,
	CategoryImageSearch:     true,
}

// Opt-out methods, closed set.
const (
	MethodWebForm = "web_form"
	MethodEmail   = "email"
	MethodAPI     = "api"
	MethodPhone   = "phone"
	MethodMail    = "mail"
)

// ValidMethods is the closed set of opt-out methods.
var ValidMethods = map[string]bool{
	MethodWebForm: true,
	MethodEmail:   true,
	MethodAPI:     true,
	MethodPhone:   true,
	MethodMail:    true,
}

// Difficulty levels, closed set.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyManual = "manual"
)

// ValidDifficulties is the closed set of broker difficulty levels.
var ValidDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
	DifficultyManual: true,
}

// Broker is a data broker with a declared opt-out channel.
type Broker struct {
	ID             int64
	Slug           string
	Name           string
	URL            string
	Category       string
	OptOutMethod   string
	OptOutURL      string
	OptOutEmail    string
	OptOutPhone    string
	OptOutMail     string
	OptOutSteps    []string
	Difficulty     string
	Automatable    bool
	RecheckDays    int
	CCPACompliant  bool
	GDPRCompliant  bool
	Notes          string
}

// Risk levels shared by findings, breaches, and scanner results.
const (
	RiskCritical = "critical"
	RiskHigh     = "high"
	RiskMedium   = "medium"
	RiskLow      = "low"
)

// Finding statuses.
const (
	FindingActive          = "active"
	FindingRemovalPending  = "removal_pending"
	FindingRemoved         = "removed"
)

// Finding is a single piece of discovered exposure tied to a person.
type Finding struct {
	ID            int64
	PersonID      int64
	BrokerID      *int64
	Source        string
	FindingType   string
	DataFound     map[string]any
	RiskLevel     string
	URL           string
	ScreenshotPath string
	Status        string
	DiscoveredAt  time.Time
	UpdatedAt     time.Time
}

// Removal lifecycle statuses (spec §4.5 state machine).
const (
	RemovalPending                = "pending"
	RemovalSubmitted               = "submitted"
	RemovalInstructionsGenerated   = "instructions_generated"
	RemovalConfirmed               = "confirmed"
	RemovalStillFound              = "still_found"
	RemovalFailed                  = "failed"
)

// MaxVerificationAttempts caps the still_found -> failed transition (spec §4.5/§7).
const MaxVerificationAttempts = 3

// Removal tracks one opt-out request against one broker for one person.
type Removal struct {
	ID            int64
	PersonID      int64
	BrokerID      int64
	Method        string
	FindingID     *int64
	Status        string
	ReferenceID   string
	SubmittedAt   *time.Time
	ConfirmedAt   *time.Time
	LastCheckedAt *time.Time
	Attempts      int
	NextCheckAt   *time.Time
	Notes         string
}

// Breach sources.
const (
	BreachSourceHIBP     = "hibp"
	BreachSourceDehashed = "dehashed"
	BreachSourcePaste    = "paste"
)

// Breach records one credential/paste exposure for a person.
type Breach struct {
	ID          int64
	PersonID    int64
	BreachName  string
	Source      string
	BreachDate  string
	DataTypes   []string
	Severity    string
	DiscoveredAt time.Time
	ActionTaken string
}

// PipelineRun statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunError     = "error"
)

// PipelineRun is an append-only record of one protect_person invocation.
type PipelineRun struct {
	ID                int64
	PersonID          int64
	StartedAt         time.Time
	CompletedAt       *time.Time
	Status            string
	BreachesFound     int
	DarkWebFindings   int
	AccountsFound     int
	RemovalsSubmitted int
	RiskScore         int
	Error             string
}

// ScheduledRun statuses.
const (
	ScheduledSuccess = "success"
	ScheduledSkipped = "skipped"
	ScheduledFailed  = "failed"
)

// ScheduledRun is an append-only record of one scheduled job execution.
type ScheduledRun struct {
	ID          int64
	JobName     string
	StartedAt   time.Time
	CompletedAt *time.Time
	Status      string
	Details     map[string]any
	Error       string
}
