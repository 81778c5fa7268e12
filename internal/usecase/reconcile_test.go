package usecase

import (
	"context"
	"errors"
	"testing"

	"rezonans/internal/domain"
)

func task(id string, status domain.Status) domain.Task {
	return domain.Task{ID: id, Status: status}
}

func ids(tasks []domain.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func sameIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestMergeLocalPendingFirst(t *testing.T) {
	t.Parallel()

	local := []domain.Task{
		task("p2", domain.StatusPending),
		task("p1", domain.StatusProcessing),
		task("h1", domain.StatusReady),
	}
	remote := []domain.Task{
		task("h2", domain.StatusReady),
		task("h1", domain.StatusReady),
	}

	merged := Merge(local, remote)

	if got := ids(merged); !sameIDs(got, "p2", "p1", "h2", "h1") {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestMergeNoDuplicates(t *testing.T) {
	t.Parallel()

	local := []domain.Task{task("a", domain.StatusPending), task("b", domain.StatusReady)}
	remote := []domain.Task{task("a", domain.StatusReady), task("a", domain.StatusReady), task("c", domain.StatusError)}

	merged := Merge(local, remote)

	seen := map[string]int{}
	for _, m := range merged {
		seen[m.ID]++
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("id %s appears %d times", id, n)
		}
	}
}

func TestMergeServerCopyWins(t *testing.T) {
	t.Parallel()

	local := []domain.Task{{ID: "a", Status: domain.StatusProcessing, URL: "local"}}
	remote := []domain.Task{{ID: "a", Status: domain.StatusReady, URL: "server"}}

	merged := Merge(local, remote)

	if len(merged) != 1 {
		t.Fatalf("expected 1 task, got %d", len(merged))
	}
	if merged[0].URL != "server" || merged[0].Status != domain.StatusReady {
		t.Fatalf("server copy must win: %+v", merged[0])
	}
}

func TestMergeKeepsLocallyTerminalUnindexed(t *testing.T) {
	t.Parallel()

	// The poller completed t1 locally, but the server has not indexed it
	// yet: the terminal local content must stay visible.
	local := []domain.Task{readyTask("t1")}
	remote := []domain.Task{task("h1", domain.StatusReady)}

	merged := Merge(local, remote)

	if got := ids(merged); !sameIDs(got, "t1", "h1") {
		t.Fatalf("unexpected order: %v", got)
	}
	if merged[0].Status != domain.StatusReady || merged[0].Analysis == nil {
		t.Fatalf("local terminal content lost: %+v", merged[0])
	}
}

func TestRefresherAppliesRemote(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, task("p1", domain.StatusPending))

	api := newStubService()
	api.historyFn = func() ([]domain.Task, error) {
		return []domain.Task{task("h1", domain.StatusReady)}, nil
	}

	refresher := NewRefresher(api, tracker, nil)

	merged, err := refresher.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if got := ids(merged); !sameIDs(got, "p1", "h1") {
		t.Fatalf("unexpected merged view: %v", got)
	}

	// The tracker now holds the merged view.
	if got := ids(tracker.Snapshot()); !sameIDs(got, "p1", "h1") {
		t.Fatalf("tracker not updated: %v", got)
	}
}

func TestRefresherFailureLeavesLocalUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, task("p1", domain.StatusPending))

	api := newStubService()
	api.historyFn = func() ([]domain.Task, error) {
		return nil, errors.New("backend down")
	}

	refresher := NewRefresher(api, tracker, nil)

	if _, err := refresher.Refresh(ctx); err == nil {
		t.Fatal("expected refresh error")
	}
	if got := ids(tracker.Snapshot()); !sameIDs(got, "p1") {
		t.Fatalf("local collection mutated on failed refresh: %v", got)
	}
}
