// Package validate runs heuristic, advisory checks of a response against the
// active persona contract. Findings are warnings for logs and telemetry; they
// never block or mutate the response.
package validate

import (
	"fmt"
	"strings"

	"agenthub/internal/persona"
)

// Report carries the advisory outcome of one validation pass.
type Report struct {
	OK       bool
	Warnings []string
}

// Generic filler openers that flatten a persona's voice.
var fillerOpeners = []string{
	"i would suggest",
	"let me help you",
	"as requested",
	"certainly!",
	"of course!",
	"here is the information",
}

// Phrases that disclose the responder as an automated system.
var selfDisclosures = []string{
	"as an ai",
	"i am an ai",
	"i'm an ai",
	"as a language model",
	"as an assistant",
	"i am a language model",
	"i'm a language model",
	"i am an artificial intelligence",
}

// Validate checks text against the contract's expectations. Pure and
// read-only; callers decide what to do with the warnings.
func Validate(contract persona.Contract, text string) Report {
	var warnings []string
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, opener := range fillerOpeners {
		if strings.HasPrefix(lower, opener) {
			warnings = append(warnings, fmt.Sprintf("response opens with generic filler %q", opener))
			break
		}
	}

	for _, phrase := range selfDisclosures {
		if strings.Contains(lower, phrase) {
			warnings = append(warnings, fmt.Sprintf("response self-identifies as automated (%q)", phrase))
			break
		}
	}

	n := len([]rune(text))
	if contract.MinExpectedLength > 0 && n < contract.MinExpectedLength {
		warnings = append(warnings, fmt.Sprintf("response length %d below persona minimum %d", n, contract.MinExpectedLength))
	}
	if contract.MaxExpectedLength > 0 && n > contract.MaxExpectedLength {
		warnings = append(warnings, fmt.Sprintf("response length %d above persona maximum %d", n, contract.MaxExpectedLength))
	}

	return Report{OK: len(warnings) == 0, Warnings: warnings}
}
