package storage

import (
	"context"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), "sqlite", "file:audit_test?mode=memory&cache=shared", true, "")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestInsertAndGetDispatch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := DispatchRecord{
		EventID:      "ev-100",
		Agent:        "einstein",
		Provider:     "gemini",
		Language:     "en",
		Message:      "what is light?",
		Response:     "an electromagnetic wave, and also a particle!",
		WarningsJSON: `["response shorter than expected"]`,
		LatencyMS:    340,
	}
	if err := st.InsertDispatch(ctx, rec); err != nil {
		t.Fatalf("insert: %v", err)
	}

	got, err := st.GetDispatchByEventID(ctx, "ev-100")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Agent != "einstein" || got.Provider != "gemini" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if got.WarningsJSON != rec.WarningsJSON {
		t.Fatalf("warnings = %q", got.WarningsJSON)
	}
	if got.Encrypted {
		t.Fatal("record should not be marked encrypted")
	}
}

func TestInsertDispatchIsIdempotentPerEvent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := DispatchRecord{EventID: "ev-dup", Agent: "comedy-king", Provider: "simulation", Message: "hi", Response: "👑 ha!"}
	if err := st.InsertDispatch(ctx, rec); err != nil {
		t.Fatalf("insert#1: %v", err)
	}
	rec.Response = "changed"
	if err := st.InsertDispatch(ctx, rec); err != nil {
		t.Fatalf("insert#2: %v", err)
	}

	got, err := st.GetDispatchByEventID(ctx, "ev-dup")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Response != "👑 ha!" {
		t.Fatalf("duplicate insert overwrote row: %q", got.Response)
	}
}

func TestGetDispatchNotFound(t *testing.T) {
	st := openTestStore(t)
	if _, err := st.GetDispatchByEventID(context.Background(), "missing"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListRecentDispatchesFiltersByAgent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, rec := range []DispatchRecord{
		{EventID: "ev-1", Agent: "einstein", Provider: "openai", Message: "a", Response: "b"},
		{EventID: "ev-2", Agent: "drama-queen", Provider: "openai", Message: "c", Response: "d"},
		{EventID: "ev-3", Agent: "einstein", Provider: "cohere", Message: "e", Response: "f"},
	} {
		if err := st.InsertDispatch(ctx, rec); err != nil {
			t.Fatalf("insert %s: %v", rec.EventID, err)
		}
	}

	got, err := st.ListRecentDispatches(ctx, "einstein", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	for _, r := range got {
		if r.Agent != "einstein" {
			t.Fatalf("unexpected agent %q", r.Agent)
		}
	}
}

func TestProviderAndAgentStats(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	for _, rec := range []DispatchRecord{
		{EventID: "s-1", Agent: "einstein", Provider: "gemini", Message: "a", Response: "b"},
		{EventID: "s-2", Agent: "einstein", Provider: "gemini", Message: "c", Response: "d"},
		{EventID: "s-3", Agent: "chef-biew", Provider: "simulation", Message: "e", Response: "f"},
	} {
		if err := st.InsertDispatch(ctx, rec); err != nil {
			t.Fatalf("insert %s: %v", rec.EventID, err)
		}
	}

	ps, err := st.ProviderStats(ctx)
	if err != nil {
		t.Fatalf("provider stats: %v", err)
	}
	if len(ps) != 2 || ps[0].Provider != "gemini" || ps[0].Dispatches != 2 {
		t.Fatalf("provider stats = %+v", ps)
	}

	as, err := st.AgentStats(ctx)
	if err != nil {
		t.Fatalf("agent stats: %v", err)
	}
	if len(as) != 2 || as[0].Agent != "einstein" || as[0].Dispatches != 2 {
		t.Fatalf("agent stats = %+v", as)
	}
}
