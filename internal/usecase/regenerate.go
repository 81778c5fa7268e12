package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// Regenerator re-invokes generation for a single artifact of a ready plan:
// one platform's text, or one post's image. Everything else in the plan is
// left bit-identical. Failures surface to the caller and never touch the
// stored task.
type Regenerator struct {
	api      ports.PlanService
	tracker  *Tracker
	provider string
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewRegenerator constructs the regeneration use case.
func NewRegenerator(api ports.PlanService, tracker *Tracker, provider string, logger *slog.Logger) *Regenerator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Regenerator{
		api:      api,
		tracker:  tracker,
		provider: provider,
		logger:   logger,
		inflight: map[string]struct{}{},
	}
}

// Text requests a replacement post for one platform and swaps exactly that
// post in place. Returns the updated task.
func (r *Regenerator) Text(ctx context.Context, id, platform string) (domain.Task, error) {
	task, idx, err := r.target(id, func(t domain.Task) int { return t.PostIndex(platform) })
	if err != nil {
		return domain.Task{}, fmt.Errorf("regenerate text: %w", err)
	}

	slot := id + "/text/" + platform
	if err := r.acquire(slot); err != nil {
		return domain.Task{}, err
	}
	defer r.release(slot)

	replacement, err := r.api.Regenerate(ctx, domain.RegenerateRequest{
		PlanID:         id,
		Platform:       platform,
		OriginalNews:   r.originalNews(task),
		Analysis:       task.Analysis,
		CurrentContent: task.Posts[idx].Content,
	})
	if err != nil {
		return domain.Task{}, err
	}

	if replacement.Platform == "" {
		replacement.Platform = platform
	}

	// Apply against the live task, not the pre-call snapshot: another
	// regeneration for a different post may have landed during the request.
	updated, err := r.tracker.Update(ctx, id, func(t *domain.Task) error {
		i := t.PostIndex(platform)
		if i < 0 {
			return fmt.Errorf("task %s has no %s post", id, platform)
		}
		// Text regeneration may come back without visuals; keep the
		// existing image rather than blanking the post.
		if replacement.ImageURL == "" {
			replacement.ImageURL = t.Posts[i].ImageURL
			replacement.ImagePrompt = t.Posts[i].ImagePrompt
		}
		t.Posts[i] = replacement
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	r.logger.Info("post regenerated", "task", id, "platform", platform)
	return updated, nil
}

// Image requests a new image_url/image_prompt pair for the post at index
// and replaces only those two fields; content is untouched. Concurrent
// requests for different posts are independent; a second request for the
// same post while one is outstanding is rejected.
func (r *Regenerator) Image(ctx context.Context, id string, index int) (domain.Task, error) {
	task, _, err := r.target(id, func(t domain.Task) int {
		if index < 0 || index >= len(t.Posts) {
			return -1
		}
		return index
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("regenerate image: %w", err)
	}

	slot := fmt.Sprintf("%s/image/%d", id, index)
	if err := r.acquire(slot); err != nil {
		return domain.Task{}, err
	}
	defer r.release(slot)

	fragment, err := r.api.Regenerate(ctx, domain.RegenerateRequest{
		PlanID:         id,
		Platform:       domain.PlatformImage,
		OriginalNews:   r.originalNews(task),
		Analysis:       task.Analysis,
		CurrentContent: task.Posts[index].Content,
	})
	if err != nil {
		return domain.Task{}, err
	}

	updated, err := r.tracker.Update(ctx, id, func(t *domain.Task) error {
		if index >= len(t.Posts) {
			return fmt.Errorf("task %s has no post %d", id, index)
		}
		t.Posts[index].ImageURL = fragment.ImageURL
		t.Posts[index].ImagePrompt = fragment.ImagePrompt
		return nil
	})
	if err != nil {
		return domain.Task{}, err
	}

	r.logger.Info("image regenerated", "task", id, "post", index)
	return updated, nil
}

// target validates the task is ready and resolves the addressed post.
func (r *Regenerator) target(id string, locate func(domain.Task) int) (domain.Task, int, error) {
	task, ok := r.tracker.Get(id)
	if !ok {
		return domain.Task{}, 0, fmt.Errorf("%w: %s", ErrUnknownTask, id)
	}
	if task.Status != domain.StatusReady {
		return domain.Task{}, 0, fmt.Errorf("%w: %s is %s", ErrNotReady, id, task.Status)
	}

	idx := locate(task)
	if idx < 0 {
		return domain.Task{}, 0, fmt.Errorf("task %s has no such post", id)
	}
	return task, idx, nil
}

func (r *Regenerator) originalNews(task domain.Task) domain.GenerationRequest {
	return domain.GenerationRequest{
		URL:           task.URL,
		ModelProvider: r.provider,
		Mode:          "pr",
	}
}

func (r *Regenerator) acquire(slot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, busy := r.inflight[slot]; busy {
		return fmt.Errorf("%w: %s", ErrRegenerationInFlight, slot)
	}
	r.inflight[slot] = struct{}{}
	return nil
}

func (r *Regenerator) release(slot string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, slot)
}
