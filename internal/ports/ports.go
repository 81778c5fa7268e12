package ports

import (
	"context"

	"rezonans/internal/domain"
)

// PlanService is the backend contract the engine depends on. Submission is
// fire-and-track: it returns as soon as the backend accepts the request.
type PlanService interface {
	SubmitGeneration(ctx context.Context, req domain.GenerationRequest) (string, error)
	PlanStatus(ctx context.Context, id string) (domain.StatusReport, error)
	History(ctx context.Context) ([]domain.Task, error)
	Plan(ctx context.Context, id string) (domain.Task, error)
	ScanProfile(ctx context.Context, profile domain.BrandProfile) ([]domain.ScanResult, error)
	ScanBrand(ctx context.Context, targetBrand string) ([]domain.ScanResult, error)
	Regenerate(ctx context.Context, req domain.RegenerateRequest) (domain.Post, error)
	Feedback(ctx context.Context, planID string, like bool) error
	Publish(ctx context.Context, content, platform string) (string, error)
}

// TaskRepository caches the locally-known task collection between runs so
// in-flight work survives process restarts until the server indexes it.
type TaskRepository interface {
	Save(ctx context.Context, task domain.Task) error
	List(ctx context.Context) ([]domain.Task, error)
	Delete(ctx context.Context, id string) error
}

// Publisher pushes a finished post to an outside channel directly,
// bypassing the backend (e.g., the Telegram Bot API).
type Publisher interface {
	Publish(ctx context.Context, post domain.Post) error
}

// ProfileStore owns the client-held brand profile.
type ProfileStore interface {
	Load() (*domain.BrandProfile, error)
	Save(profile domain.BrandProfile) error
}

// ScanEnricher decorates scan results with locally-derived display data.
type ScanEnricher interface {
	Enrich(ctx context.Context, results []domain.ScanResult) []domain.ScanResult
}

// TokenSource yields the bearer credential attached to every request.
// Issuance and refresh belong to an external session manager.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed credential.
type StaticToken string

// Token returns the fixed credential.
func (s StaticToken) Token() string { return string(s) }
