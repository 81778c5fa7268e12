package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// Merge combines the locally-known collection with the authoritative
// server history: local tasks the server has not indexed yet come first in
// local order, then the server list in server order. An id present in both
// resolves to the server copy. The result never contains duplicates.
//
// A task that completed locally but is absent from the server list stays
// visible with its terminal content until a refresh includes it.
func Merge(local, remote []domain.Task) []domain.Task {
	indexed := make(map[string]struct{}, len(remote))
	for _, r := range remote {
		indexed[r.ID] = struct{}{}
	}

	out := make([]domain.Task, 0, len(local)+len(remote))
	for _, l := range local {
		if _, ok := indexed[l.ID]; !ok {
			out = append(out, l)
		}
	}

	seen := make(map[string]struct{}, len(remote))
	for _, r := range remote {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}

	return out
}

// Refresher pulls the server history and reconciles it into the tracker.
// Runs on initial load, after profile changes, and at the start of an
// interactive session; there is no push channel to subscribe to.
type Refresher struct {
	api     ports.PlanService
	tracker *Tracker
	logger  *slog.Logger
}

// NewRefresher wires the history source with the local collection.
func NewRefresher(api ports.PlanService, tracker *Tracker, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{api: api, tracker: tracker, logger: logger}
}

// Refresh fetches the authoritative list and returns the merged view. On
// fetch failure the local collection is left untouched.
func (r *Refresher) Refresh(ctx context.Context) ([]domain.Task, error) {
	remote, err := r.api.History(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh history: %w", err)
	}

	merged := r.tracker.ApplyRemote(ctx, remote)
	r.logger.Debug("history reconciled", "remote", len(remote), "merged", len(merged))
	return merged, nil
}

// Plan fetches one plan from the server and folds it into the local
// collection.
func (r *Refresher) Plan(ctx context.Context, id string) (domain.Task, error) {
	task, err := r.api.Plan(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("fetch plan %s: %w", id, err)
	}
	r.tracker.Upsert(ctx, task)
	return task, nil
}
