package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// Tracker is the locally-visible task collection: optimistic pending
// records plus whatever the last history refresh brought in, newest first.
// All mutations replace whole Task values; callers never reach into the
// stored slices. Mutations are mirrored into the cache repository so
// in-flight work survives process restarts.
type Tracker struct {
	mu     sync.Mutex
	tasks  []domain.Task
	index  map[string]int
	repo   ports.TaskRepository
	logger *slog.Logger
}

// NewTracker builds an empty collection over an optional cache repository.
func NewTracker(repo ports.TaskRepository, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		index:  map[string]int{},
		repo:   repo,
		logger: logger,
	}
}

// Restore loads the cached collection from the repository.
func (t *Tracker) Restore(ctx context.Context) error {
	if t.repo == nil {
		return nil
	}

	cached, err := t.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("restore task cache: %w", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.tasks = t.tasks[:0]
	t.index = make(map[string]int, len(cached))
	for _, task := range cached {
		if _, dup := t.index[task.ID]; dup {
			continue
		}
		t.index[task.ID] = len(t.tasks)
		t.tasks = append(t.tasks, task)
	}

	return nil
}

// Insert prepends a new task (optimistic submission record).
func (t *Tracker) Insert(ctx context.Context, task domain.Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.index[task.ID]; exists {
		t.replaceLocked(ctx, task)
		return
	}

	t.tasks = append([]domain.Task{task}, t.tasks...)
	t.reindexLocked()
	t.persistLocked(ctx, task)
}

// Replace swaps the stored task for the same id with the given value.
func (t *Tracker) Replace(ctx context.Context, task domain.Task) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.index[task.ID]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownTask, task.ID)
	}
	t.replaceLocked(ctx, task)
	return nil
}

// Upsert replaces in place when the id is known, otherwise prepends.
func (t *Tracker) Upsert(ctx context.Context, task domain.Task) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.index[task.ID]; exists {
		t.replaceLocked(ctx, task)
		return
	}
	t.tasks = append([]domain.Task{task}, t.tasks...)
	t.reindexLocked()
	t.persistLocked(ctx, task)
}

// Update applies fn to the currently stored task under the lock and
// persists the result. fn receives a deep copy of the live value, so
// mutations based on a snapshot taken before a network call cannot revert
// writes that landed in the meantime. Returning an error from fn discards
// the mutation.
func (t *Tracker) Update(ctx context.Context, id string, fn func(task *domain.Task) error) (domain.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return domain.Task{}, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}

	updated := t.tasks[i].Clone()
	if err := fn(&updated); err != nil {
		return domain.Task{}, err
	}

	t.tasks[i] = updated
	t.persistLocked(ctx, updated)
	return updated.Clone(), nil
}

// Get returns a deep copy of the task for the id.
func (t *Tracker) Get(id string) (domain.Task, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.index[id]
	if !ok {
		return domain.Task{}, false
	}
	return t.tasks[i].Clone(), true
}

// Snapshot returns a deep copy of the whole collection in display order.
func (t *Tracker) Snapshot() []domain.Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]domain.Task, len(t.tasks))
	for i, task := range t.tasks {
		out[i] = task.Clone()
	}
	return out
}

// ApplyRemote reconciles the collection with the authoritative server
// history and returns the merged view.
func (t *Tracker) ApplyRemote(ctx context.Context, remote []domain.Task) []domain.Task {
	t.mu.Lock()
	defer t.mu.Unlock()

	merged := Merge(t.tasks, remote)

	t.tasks = merged
	t.reindexLocked()
	for _, task := range merged {
		t.persistLocked(ctx, task)
	}

	out := make([]domain.Task, len(merged))
	for i, task := range merged {
		out[i] = task.Clone()
	}
	return out
}

func (t *Tracker) replaceLocked(ctx context.Context, task domain.Task) {
	t.tasks[t.index[task.ID]] = task
	t.persistLocked(ctx, task)
}

func (t *Tracker) reindexLocked() {
	t.index = make(map[string]int, len(t.tasks))
	for i, task := range t.tasks {
		t.index[task.ID] = i
	}
}

// persistLocked mirrors a mutation into the cache. Cache failures must not
// break the in-memory view, so they are logged and dropped.
func (t *Tracker) persistLocked(ctx context.Context, task domain.Task) {
	if t.repo == nil {
		return
	}
	if err := t.repo.Save(ctx, task); err != nil {
		t.logger.Warn("task cache write failed", "task", task.ID, "error", err)
	}
}
