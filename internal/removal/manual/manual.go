// Package manual generates plain-text removal instructions for brokers
// whose opt-out channel is phone, mail, or otherwise unautomatable (spec
// §4.5 "Manual remover"). It never performs I/O.
package manual

import (
	"fmt"
	"strings"

	"github.com/untoldecay/footprint/internal/removal"
)

// Submit produces an instruction block: method, contact info, the person's
// identifying fields, and any declared step list. Outcome is always
// instructions_generated — this handler cannot fail.
func Submit(person removal.PersonCtx, broker removal.BrokerCtx) removal.Outcome {
	method := broker.OptOutMethod
	if method == "" {
		method = "unknown"
	}

	var b strings.Builder
	header := fmt.Sprintf("Removal Instructions for %s", broker.Name)
	fmt.Fprintf(&b, "%s\n%s\n\n", header, strings.Repeat("=", len(header)))
	fmt.Fprintf(&b, "Method: %s\n", strings.ToUpper(method))

	if method == "phone" && broker.OptOutPhone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", broker.OptOutPhone)
	}
	if method == "mail" && broker.OptOutMail != "" {
		fmt.Fprintf(&b, "Mail to: %s\n", broker.OptOutMail)
	}

	b.WriteString("\nYour information to reference:\n")
	fmt.Fprintf(&b, "  Name: %s\n", person.Name)
	fmt.Fprintf(&b, "  Email: %s\n", person.Email)
	if person.Phone != "" {
		fmt.Fprintf(&b, "  Phone: %s\n", person.Phone)
	}
	if person.Address != "" {
		fmt.Fprintf(&b, "  Address: %s\n", person.Address)
	}

	b.WriteString("\n")
	if len(broker.OptOutSteps) > 0 {
		b.WriteString("Steps:\n")
		for i, step := range broker.OptOutSteps {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	} else {
		fmt.Fprintf(&b, "Contact %s using the method above and request removal of your personal data.\n", broker.Name)
	}

	return removal.Outcome{
		Status:       removal.StatusInstructionsGenerated,
		Method:       method,
		Instructions: b.String(),
	}
}
