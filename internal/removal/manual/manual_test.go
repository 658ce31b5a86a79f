package manual

import (
	"strings"
	"testing"

	"github.com/untoldecay/footprint/internal/removal"
)

func TestSubmitAlwaysInstructionsGenerated(t *testing.T) {
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, removal.BrokerCtx{Name: "Spokeo"})
	if outcome.Status != removal.StatusInstructionsGenerated {
		t.Errorf("Status = %q, want %q", outcome.Status, removal.StatusInstructionsGenerated)
	}
}

func TestSubmitPhoneMethodIncludesPhoneLine(t *testing.T) {
	broker := removal.BrokerCtx{Name: "Spokeo", OptOutMethod: "phone", OptOutPhone: "800-555-0100"}
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, broker)

	if !strings.Contains(outcome.Instructions, "Phone: 800-555-0100") {
		t.Errorf("instructions missing phone contact line:\n%s", outcome.Instructions)
	}
	if strings.Contains(outcome.Instructions, "Mail to:") {
		t.Errorf("instructions should not include a mail line for a phone-method broker:\n%s", outcome.Instructions)
	}
	if outcome.Method != "phone" {
		t.Errorf("Method = %q, want phone", outcome.Method)
	}
}

func TestSubmitMailMethodIncludesMailLine(t *testing.T) {
	broker := removal.BrokerCtx{Name: "Spokeo", OptOutMethod: "mail", OptOutMail: "PO Box 123, Anytown"}
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, broker)

	if !strings.Contains(outcome.Instructions, "Mail to: PO Box 123, Anytown") {
		t.Errorf("instructions missing mail contact line:\n%s", outcome.Instructions)
	}
	if strings.Contains(outcome.Instructions, "Phone:") {
		t.Errorf("instructions should not include a phone line for a mail-method broker:\n%s", outcome.Instructions)
	}
}

func TestSubmitEmptyMethodDefaultsToUnknown(t *testing.T) {
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, removal.BrokerCtx{Name: "Spokeo"})
	if outcome.Method != "unknown" {
		t.Errorf("Method = %q, want unknown", outcome.Method)
	}
	if !strings.Contains(outcome.Instructions, "Method: UNKNOWN") {
		t.Errorf("instructions missing uppercased method line:\n%s", outcome.Instructions)
	}
}

func TestSubmitIncludesPersonIdentifyingInfo(t *testing.T) {
	person := removal.PersonCtx{Name: "Jane Doe", Email: "jane@example.com", Phone: "555-0100", Address: "1 Main St"}
	outcome := Submit(person, removal.BrokerCtx{Name: "Spokeo"})

	for _, want := range []string{"Name: Jane Doe", "Email: jane@example.com", "Phone: 555-0100", "Address: 1 Main St"} {
		if !strings.Contains(outcome.Instructions, want) {
			t.Errorf("instructions missing %q:\n%s", want, outcome.Instructions)
		}
	}
}

func TestSubmitOmitsEmptyOptionalPersonFields(t *testing.T) {
	person := removal.PersonCtx{Name: "Jane Doe", Email: "jane@example.com"}
	outcome := Submit(person, removal.BrokerCtx{Name: "Spokeo"})

	if strings.Contains(outcome.Instructions, "Phone:") {
		t.Errorf("instructions should omit phone when person has none:\n%s", outcome.Instructions)
	}
	if strings.Contains(outcome.Instructions, "Address:") {
		t.Errorf("instructions should omit address when person has none:\n%s", outcome.Instructions)
	}
}

func TestSubmitRendersNumberedSteps(t *testing.T) {
	broker := removal.BrokerCtx{Name: "Spokeo", OptOutSteps: []string{"search for yourself", "click remove"}}
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, broker)

	for _, want := range []string{"Steps:", "1. search for yourself", "2. click remove"} {
		if !strings.Contains(outcome.Instructions, want) {
			t.Errorf("instructions missing %q:\n%s", want, outcome.Instructions)
		}
	}
	if strings.Contains(outcome.Instructions, "Contact Spokeo using the method above") {
		t.Errorf("instructions should not include the generic fallback sentence when steps are present")
	}
}

func TestSubmitFallsBackToGenericInstructionWhenNoSteps(t *testing.T) {
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, removal.BrokerCtx{Name: "Spokeo"})

	if !strings.Contains(outcome.Instructions, "Contact Spokeo using the method above and request removal of your personal data.") {
		t.Errorf("instructions missing generic fallback sentence:\n%s", outcome.Instructions)
	}
	if strings.Contains(outcome.Instructions, "Steps:") {
		t.Errorf("instructions should not include a Steps header when broker has none")
	}
}

func TestSubmitHeaderNamesBroker(t *testing.T) {
	outcome := Submit(removal.PersonCtx{Name: "Jane Doe"}, removal.BrokerCtx{Name: "Spokeo"})
	if !strings.HasPrefix(outcome.Instructions, "Removal Instructions for Spokeo\n===") {
		t.Errorf("instructions should start with an underlined header naming the broker:\n%s", outcome.Instructions)
	}
}
