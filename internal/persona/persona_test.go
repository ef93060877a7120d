package persona

import "testing"

func TestResolveKnownAgent(t *testing.T) {
	r := NewRegistry()

	c := r.Resolve("einstein")
	if c.AgentID != "einstein" {
		t.Fatalf("expected einstein contract, got %q", c.AgentID)
	}
	if c.SystemPrompt == "" {
		t.Fatalf("einstein has empty system prompt")
	}
	if c.Temperature != 0.75 {
		t.Fatalf("unexpected einstein temperature %v", c.Temperature)
	}
}

func TestResolveUnknownFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{"", "no-such-agent", "   ", "EINSTEIN-2"} {
		c := r.Resolve(id)
		if c.AgentID != DefaultAgentID {
			t.Fatalf("Resolve(%q) = %q, want default %q", id, c.AgentID, DefaultAgentID)
		}
		if c.SystemPrompt == "" {
			t.Fatalf("default contract has empty system prompt")
		}
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	r := NewRegistry()
	if got := r.Resolve("  Comedy-King "); got.AgentID != "comedy-king" {
		t.Fatalf("expected comedy-king, got %q", got.AgentID)
	}
}

func TestContractsHaveSaneSampling(t *testing.T) {
	r := NewRegistry()
	for _, id := range r.IDs() {
		c := r.Resolve(id)
		if c.Temperature < 0 || c.Temperature > 2 {
			t.Fatalf("%s: temperature %v out of [0,2]", id, c.Temperature)
		}
		if c.TopP < 0 || c.TopP > 1 {
			t.Fatalf("%s: topP %v out of [0,1]", id, c.TopP)
		}
		if c.MaxTokens <= 0 {
			t.Fatalf("%s: max tokens %d", id, c.MaxTokens)
		}
		if c.MinExpectedLength > 0 && c.MaxExpectedLength > 0 && c.MinExpectedLength > c.MaxExpectedLength {
			t.Fatalf("%s: inverted length band [%d,%d]", id, c.MinExpectedLength, c.MaxExpectedLength)
		}
	}
}

func TestIDsContainsDefault(t *testing.T) {
	r := NewRegistry()
	found := false
	for _, id := range r.IDs() {
		if id == DefaultAgentID {
			found = true
		}
	}
	if !found {
		t.Fatalf("catalog does not list the default persona")
	}
}
