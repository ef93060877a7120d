package prompt

import (
	"strings"
	"testing"

	"agenthub/internal/persona"
)

func TestComposeAppendsSuffixLast(t *testing.T) {
	c := persona.Contract{AgentID: "einstein", SystemPrompt: "You are Einstein."}

	out := Compose(c, "")
	if !strings.HasSuffix(out, EnforcementSuffix) {
		t.Fatalf("composed prompt does not end with enforcement suffix:\n%s", out)
	}
	if strings.Count(out, EnforcementSuffix) != 1 {
		t.Fatalf("enforcement suffix must appear exactly once")
	}
}

func TestComposeWithContext(t *testing.T) {
	c := persona.Contract{AgentID: "einstein", SystemPrompt: "You are Einstein."}

	out := Compose(c, "User's language preference: French")
	if !strings.Contains(out, "ADDITIONAL CONTEXT:\nUser's language preference: French") {
		t.Fatalf("context block missing:\n%s", out)
	}
	if !strings.HasSuffix(out, EnforcementSuffix) {
		t.Fatalf("suffix must still come last when context is present")
	}
	if strings.Count(out, EnforcementSuffix) != 1 {
		t.Fatalf("enforcement suffix must appear exactly once")
	}
	if strings.Index(out, "ADDITIONAL CONTEXT:") > strings.Index(out, EnforcementSuffix) {
		t.Fatalf("context block must precede the enforcement suffix")
	}
}

func TestComposeNoContextNoBlock(t *testing.T) {
	c := persona.Contract{SystemPrompt: "prompt"}
	out := Compose(c, "   ")
	if strings.Contains(out, "ADDITIONAL CONTEXT") {
		t.Fatalf("blank context must not produce a context block")
	}
}

func TestSituationalContext(t *testing.T) {
	got := SituationalContext([]HistoryEntry{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}, "es", nil)

	if !strings.Contains(got, "User's language preference: Spanish") {
		t.Fatalf("missing language hint: %q", got)
	}
	if !strings.Contains(got, "user: hi") || !strings.Contains(got, "assistant: hello") {
		t.Fatalf("missing history turns: %q", got)
	}
}

func TestSituationalContextAttachments(t *testing.T) {
	got := SituationalContext(nil, "", []AttachmentMeta{
		{Name: "chart.png", MimeType: "image/png", Size: 2048},
		{Name: "notes.txt"},
	})

	if !strings.Contains(got, "Attached files:") {
		t.Fatalf("missing attachments block: %q", got)
	}
	if !strings.Contains(got, "- chart.png (image/png, 2048 bytes)") {
		t.Fatalf("missing attachment line: %q", got)
	}
	if !strings.Contains(got, "- notes.txt") {
		t.Fatalf("missing bare attachment line: %q", got)
	}
}

func TestLanguageNameDefaultsToEnglish(t *testing.T) {
	if got := LanguageName("xx"); got != "English" {
		t.Fatalf("LanguageName(xx) = %q", got)
	}
	if got := LanguageName("FR"); got != "French" {
		t.Fatalf("LanguageName(FR) = %q", got)
	}
}
