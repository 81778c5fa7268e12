package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"rezonans/internal/domain"
	"rezonans/internal/infrastructure/storage"
)

func TestTrackerInsertPrepends(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)

	tracker.Insert(ctx, task("a", domain.StatusReady))
	tracker.Insert(ctx, task("b", domain.StatusPending))

	if got := ids(tracker.Snapshot()); !sameIDs(got, "b", "a") {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestTrackerSnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, readyTask("t1"))

	view := tracker.Snapshot()
	view[0].Posts[0].Content = "mutated"
	view[0].Analysis.Summary = "mutated"

	stored, _ := tracker.Get("t1")
	if stored.Posts[0].Content != "tg text" || stored.Analysis.Summary != "summary" {
		t.Fatal("snapshot shares memory with stored tasks")
	}
}

func TestTrackerReplaceUnknown(t *testing.T) {
	t.Parallel()

	tracker := NewTracker(nil, nil)
	if err := tracker.Replace(context.Background(), task("ghost", domain.StatusReady)); err == nil {
		t.Fatal("expected error replacing unknown task")
	}
}

func TestTrackerUpdateMutatesLiveValue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, readyTask("t1"))

	updated, err := tracker.Update(ctx, "t1", func(task *domain.Task) error {
		task.Posts[0].Content = "rewritten"
		return nil
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Posts[0].Content != "rewritten" {
		t.Fatalf("mutation not returned: %+v", updated.Posts[0])
	}

	stored, _ := tracker.Get("t1")
	if stored.Posts[0].Content != "rewritten" {
		t.Fatal("mutation not stored")
	}

	// The returned copy must not alias the stored value.
	updated.Posts[0].Content = "aliased"
	stored, _ = tracker.Get("t1")
	if stored.Posts[0].Content != "rewritten" {
		t.Fatal("Update result shares memory with stored task")
	}
}

func TestTrackerUpdateErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, readyTask("t1"))

	if _, err := tracker.Update(ctx, "ghost", func(*domain.Task) error { return nil }); !errors.Is(err, ErrUnknownTask) {
		t.Fatalf("expected ErrUnknownTask, got %v", err)
	}

	if _, err := tracker.Update(ctx, "t1", func(task *domain.Task) error {
		task.Posts[0].Content = "discarded"
		return errors.New("validation failed")
	}); err == nil {
		t.Fatal("expected fn error to propagate")
	}

	stored, _ := tracker.Get("t1")
	if stored.Posts[0].Content != "tg text" {
		t.Fatal("failed Update must leave the task untouched")
	}
}

func TestTrackerConcurrentUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, task("t1", domain.StatusPending))
	tracker.Insert(ctx, task("t2", domain.StatusPending))

	// Two asynchronous completions interleaving must both land; structural
	// replacement means no lost updates.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			tracker.Upsert(ctx, readyTask("t1"))
		}()
		go func() {
			defer wg.Done()
			done := task("t2", domain.StatusError)
			done.Error = "boom"
			tracker.Upsert(ctx, done)
		}()
	}
	wg.Wait()

	t1, _ := tracker.Get("t1")
	t2, _ := tracker.Get("t2")
	if t1.Status != domain.StatusReady || t2.Status != domain.StatusError {
		t.Fatalf("lost update: t1=%s t2=%s", t1.Status, t2.Status)
	}
}

func TestTrackerRestoreFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	db, err := storage.Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := storage.NewSQLiteRepository(db)

	first := NewTracker(repo, nil)
	first.Insert(ctx, domain.Task{
		ID:        "t1",
		Status:    domain.StatusPending,
		CreatedAt: time.Now().UTC(),
		URL:       "https://example.com/a",
	})

	// A fresh tracker over the same cache sees the in-flight task, the way
	// a new CLI invocation would.
	second := NewTracker(repo, nil)
	if err := second.Restore(ctx); err != nil {
		t.Fatalf("Restore error: %v", err)
	}

	restored, ok := second.Get("t1")
	if !ok {
		t.Fatal("pending task lost across restart")
	}
	if restored.Status != domain.StatusPending || restored.URL != "https://example.com/a" {
		t.Fatalf("unexpected restored task: %+v", restored)
	}
}
