package briefing

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"audio-briefing/src/workflows"
)

func TestStoreGetOrCreate(t *testing.T) {
	store := newTestStore(&fakeSubmitter{})
	s, created := store.GetOrCreate("")
	if !created || s.ID == "" {
		t.Fatal("expected a new session")
	}
	again, created := store.GetOrCreate(s.ID)
	if created || again != s {
		t.Fatal("expected the existing session")
	}
	if _, created := store.GetOrCreate("unknown"); !created {
		t.Fatal("expected a new session for an unknown id")
	}
	if store.Len() != 2 {
		t.Fatalf("len = %d", store.Len())
	}
}

func TestStorePrune(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	store := NewStore(workflows.BuildBriefingDefinition(), &fakeSubmitter{},
		WithClock(clock), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	old := store.Create()
	now = now.Add(90 * time.Minute)
	fresh := store.Create()
	now = now.Add(45 * time.Minute)

	if removed := store.Prune(2 * time.Hour); removed != 1 {
		t.Fatalf("removed = %d", removed)
	}
	if _, ok := store.Get(old.ID); ok {
		t.Fatal("idle session kept")
	}
	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatal("active session pruned")
	}
}
