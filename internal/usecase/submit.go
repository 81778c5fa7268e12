package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// SubmitterDeps wires the driven adapters into the submission use case.
type SubmitterDeps struct {
	API      ports.PlanService
	Tracker  *Tracker
	Profiles ports.ProfileStore
	Enricher ports.ScanEnricher
	Provider string
	Now      func() time.Time
	Logger   *slog.Logger
}

// Submitter turns user intents into backend calls: link-mode submissions
// become tracked pending tasks, monitoring scans return candidates
// synchronously.
type Submitter struct {
	api      ports.PlanService
	tracker  *Tracker
	profiles ports.ProfileStore
	enricher ports.ScanEnricher
	provider string
	now      func() time.Time
	logger   *slog.Logger
}

// NewSubmitter constructs the submission use case.
func NewSubmitter(deps SubmitterDeps) *Submitter {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Submitter{
		api:      deps.API,
		tracker:  deps.Tracker,
		profiles: deps.Profiles,
		enricher: deps.Enricher,
		provider: deps.Provider,
		now:      now,
		logger:   logger,
	}
}

// SubmitLink submits a link-mode generation. Fire-and-track: the backend
// acknowledges acceptance with an id, and a pending task is prepended to
// the local collection immediately, before any poll completes.
func (s *Submitter) SubmitLink(ctx context.Context, sourceURL, text string) (domain.Task, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return domain.Task{}, fmt.Errorf("%w: source url is required", ErrPrecondition)
	}

	req := domain.GenerationRequest{
		URL:           sourceURL,
		Text:          text,
		ModelProvider: s.provider,
		Mode:          "pr",
	}
	if profile := s.loadProfile(); profile != nil {
		req.BrandProfile = profile
	}

	id, err := s.api.SubmitGeneration(ctx, req)
	if err != nil {
		return domain.Task{}, err
	}

	task := domain.Task{
		ID:        id,
		Status:    domain.StatusPending,
		CreatedAt: s.now(),
		URL:       sourceURL,
	}
	s.tracker.Insert(ctx, task)
	s.logger.Info("generation submitted", "task", id, "url", sourceURL)

	return task, nil
}

// SubmitFromScan seeds a link-mode submission from a picked scan result,
// passing along the snippet the scanner found.
func (s *Submitter) SubmitFromScan(ctx context.Context, result domain.ScanResult) (domain.Task, error) {
	return s.SubmitLink(ctx, result.URL, result.Text)
}

// Scan runs a PR-mode mention scan. Requires a configured brand profile;
// without one it fails locally before any network call.
func (s *Submitter) Scan(ctx context.Context) ([]domain.ScanResult, error) {
	profile, err := s.profiles.Load()
	if err != nil {
		return nil, fmt.Errorf("load brand profile: %w", err)
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: brand profile is not configured", ErrPrecondition)
	}

	results, err := s.api.ScanProfile(ctx, *profile)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, results), nil
}

// ScanBrand runs a blogger-mode scan for an arbitrary brand name.
func (s *Submitter) ScanBrand(ctx context.Context, targetBrand string) ([]domain.ScanResult, error) {
	targetBrand = strings.TrimSpace(targetBrand)
	if targetBrand == "" {
		return nil, fmt.Errorf("%w: target brand is required", ErrPrecondition)
	}

	results, err := s.api.ScanBrand(ctx, targetBrand)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, results), nil
}

func (s *Submitter) enrich(ctx context.Context, results []domain.ScanResult) []domain.ScanResult {
	if s.enricher == nil || len(results) == 0 {
		return results
	}
	return s.enricher.Enrich(ctx, results)
}

// loadProfile attaches brand context when available; a broken profile file
// must not block a link-mode submission.
func (s *Submitter) loadProfile() *domain.BrandProfile {
	if s.profiles == nil {
		return nil
	}
	profile, err := s.profiles.Load()
	if err != nil {
		s.logger.Warn("brand profile unavailable", "error", err)
		return nil
	}
	return profile
}
