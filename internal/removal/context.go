// Package removal implements the removal orchestrator and lifecycle state
// machine (spec §4.5): dispatching an opt-out request to the remover that
// matches a broker's declared method, recording the outcome, and driving
// submitted -> confirmed/still_found/failed via verification.
package removal

import "github.com/untoldecay/footprint/internal/model"

// PersonCtx is the normalised person view every remover consumes: list
// fields collapsed to their first-element singulars (spec §4.5 "Dispatch").
type PersonCtx struct {
	Name    string
	Email   string
	Phone   string
	Address string
	State   string
}

// NewPersonCtx builds a PersonCtx from a stored Person.
func NewPersonCtx(p *model.Person) PersonCtx {
	return PersonCtx{
		Name:    p.Name,
		Email:   p.FirstEmail(),
		Phone:   p.FirstPhone(),
		Address: p.FirstAddress(),
	}
}

// BrokerCtx is the normalised broker view every remover consumes.
type BrokerCtx struct {
	Name          string
	URL           string
	OptOutMethod  string
	OptOutURL     string
	OptOutEmail   string
	OptOutPhone   string
	OptOutMail    string
	OptOutSteps   []string
	CCPACompliant bool
	GDPRCompliant bool
	RecheckDays   int
}

// NewBrokerCtx builds a BrokerCtx from a stored Broker, defaulting the
// opt-out method to "manual" when the broker declares none (spec §4.5).
func NewBrokerCtx(b *model.Broker) BrokerCtx {
	method := b.OptOutMethod
	if method == "" {
		method = "manual"
	}
	return BrokerCtx{
		Name:          b.Name,
		URL:           b.URL,
		OptOutMethod:  method,
		OptOutURL:     b.OptOutURL,
		OptOutEmail:   b.OptOutEmail,
		OptOutPhone:   b.OptOutPhone,
		OptOutMail:    b.OptOutMail,
		OptOutSteps:   b.OptOutSteps,
		CCPACompliant: b.CCPACompliant,
		GDPRCompliant: b.GDPRCompliant,
		RecheckDays:   b.RecheckDays,
	}
}

// Outcome statuses a remover handler may return (spec §4.5/§7).
const (
	StatusSubmitted             = "submitted"
	StatusInstructionsGenerated = "instructions_generated"
	StatusCaptchaRequired       = "captcha_required"
	StatusNoFormFound           = "no_form_found"
	StatusFilledNotSubmitted    = "filled_not_submitted"
	StatusError                 = "error"
)

// Outcome is the result of one removal handler invocation.
type Outcome struct {
	Status       string
	Method       string
	ReferenceID  string
	Message      string
	Instructions string // manual handler only
	Recipient    string // email handler only
	Subject      string // email handler only
	SubmittedAt  *string
}
