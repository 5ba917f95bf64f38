package library

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"lyrebird/internal/testsupport"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "abc123", "Test Video", "EN")
	if err != nil {
		t.Fatalf("NewRun returned error: %v", err)
	}
	if run.Status != StatusRunning {
		t.Errorf("new run status = %q", run.Status)
	}
	if run.Lang != "en" {
		t.Errorf("lang should be normalized, got %q", run.Lang)
	}
	if _, err := uuid.Parse(run.RunID); err != nil {
		t.Errorf("run id %q is not a uuid: %v", run.RunID, err)
	}

	run.Status = StatusCompleted
	run.Provenance = "manual"
	run.Fallback = false
	run.OutputPath = "/music/Test Video [abc123].mp3"
	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	found, err := store.FindCompleted(ctx, "abc123", "en")
	if err != nil {
		t.Fatalf("FindCompleted returned error: %v", err)
	}
	if found == nil {
		t.Fatal("expected completed run")
	}
	if !found.Succeeded() {
		t.Errorf("run should report success: %+v", found)
	}
	if found.OutputPath != run.OutputPath {
		t.Errorf("output path = %q", found.OutputPath)
	}
	if found.Provenance != "manual" {
		t.Errorf("provenance = %q", found.Provenance)
	}
}

func TestFindCompletedIgnoresFailures(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "abc123", "Test Video", "en")
	if err != nil {
		t.Fatalf("NewRun returned error: %v", err)
	}
	run.Status = StatusFailed
	run.ErrorMessage = "no subtitles"
	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	found, err := store.FindCompleted(ctx, "abc123", "en")
	if err != nil {
		t.Fatalf("FindCompleted returned error: %v", err)
	}
	if found != nil {
		t.Errorf("failed run must not satisfy FindCompleted, got %+v", found)
	}
}

func TestFindCompletedDistinguishesLanguages(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	run, err := store.NewRun(ctx, "abc123", "Test Video", "en")
	if err != nil {
		t.Fatalf("NewRun returned error: %v", err)
	}
	run.Status = StatusCompleted
	run.OutputPath = "/music/out.mp3"
	if err := store.Update(ctx, run); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	found, err := store.FindCompleted(ctx, "abc123", "ja")
	if err != nil {
		t.Fatalf("FindCompleted returned error: %v", err)
	}
	if found != nil {
		t.Errorf("completed en run must not match ja lookup, got %+v", found)
	}
}

func TestListNewestFirst(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"one", "two", "three"} {
		if _, err := store.NewRun(ctx, id, "Video "+id, "en"); err != nil {
			t.Fatalf("NewRun(%s) returned error: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].VideoID != "three" || runs[1].VideoID != "two" {
		t.Errorf("unexpected order: %s, %s", runs[0].VideoID, runs[1].VideoID)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 runs, got %d", len(all))
	}
}

func TestSchemaVersionMismatch(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if _, err := store.db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := Open(cfg); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
