package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// DefaultPollInterval bounds staleness without overwhelming the backend;
// generation time is backend-driven and unpredictable, so the client polls
// at a fixed rate instead of guessing a backoff curve.
const DefaultPollInterval = 3 * time.Second

// Poller drives a task's status machine to a terminal state:
// pending -> processing -> {ready, error}. One loop per task id; a second
// Track call for the same id is rejected while the first is running, so no
// two status queries for one task are ever in flight together.
type Poller struct {
	api      ports.PlanService
	tracker  *Tracker
	interval time.Duration
	maxWait  time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewPoller builds a poller. interval <= 0 selects the default; maxWait
// zero polls forever, matching the backend's unbounded generation time.
func NewPoller(api ports.PlanService, tracker *Tracker, interval, maxWait time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		api:      api,
		tracker:  tracker,
		interval: interval,
		maxWait:  maxWait,
		logger:   logger,
		inflight: map[string]struct{}{},
	}
}

// Track polls the id until terminal and returns the final task. Transport
// failures during a poll attempt are swallowed and retried next interval:
// a network blip must not destroy in-flight work visibility. Context
// cancellation stops the loop without touching the task.
func (p *Poller) Track(ctx context.Context, id string) (domain.Task, error) {
	if err := p.acquire(id); err != nil {
		return domain.Task{}, err
	}
	defer p.release(id)

	if task, ok := p.tracker.Get(id); ok && task.Status.Terminal() {
		return task, nil
	}

	var deadline time.Time
	if p.maxWait > 0 {
		deadline = time.Now().Add(p.maxWait)
	}

	for {
		report, err := p.api.PlanStatus(ctx, id)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return domain.Task{}, ctx.Err()
			}
			p.logger.Debug("poll attempt failed", "task", id, "error", err)
		case report.Status == domain.StatusReady:
			if report.Data == nil {
				p.logger.Warn("ready report without data", "task", id)
				break
			}
			return p.complete(ctx, id, report), nil
		case report.Status == domain.StatusError:
			return p.fail(ctx, id, report.Error), nil
		default:
			p.advance(ctx, id, report.Status)
		}

		if !deadline.IsZero() && time.Now().After(deadline) {
			msg := fmt.Sprintf("generation timed out after %s", p.maxWait)
			p.logger.Warn("poll deadline exceeded", "task", id)
			return p.fail(ctx, id, msg), nil
		}

		select {
		case <-ctx.Done():
			return domain.Task{}, ctx.Err()
		case <-time.After(p.interval):
		}
	}
}

// Tracking reports whether a poll loop is currently running for the id.
func (p *Poller) Tracking(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.inflight[id]
	return ok
}

func (p *Poller) acquire(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.inflight[id]; busy {
		return fmt.Errorf("%w: %s", ErrPollInFlight, id)
	}
	p.inflight[id] = struct{}{}
	return nil
}

func (p *Poller) release(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.inflight, id)
}

// complete replaces the task wholesale with the ready payload. The swap is
// structural: analysis and posts come from this one report, never merged
// field-by-field with an earlier snapshot.
func (p *Poller) complete(ctx context.Context, id string, report domain.StatusReport) domain.Task {
	task := p.base(id)
	task.Status = domain.StatusReady
	task.Error = ""
	task.Analysis = report.Data.Analysis
	task.Posts = report.Data.Posts
	p.tracker.Upsert(ctx, task)
	p.logger.Info("task ready", "task", id, "posts", len(task.Posts))
	return task
}

func (p *Poller) fail(ctx context.Context, id, message string) domain.Task {
	task := p.base(id)
	task.Status = domain.StatusError
	task.Error = message
	task.Analysis = nil
	task.Posts = nil
	p.tracker.Upsert(ctx, task)
	p.logger.Info("task failed", "task", id, "error", message)
	return task
}

// advance records an in-flight status transition so the display stays
// current between terminal states.
func (p *Poller) advance(ctx context.Context, id string, status domain.Status) {
	task, ok := p.tracker.Get(id)
	if !ok {
		return
	}
	if task.Status == status || task.Status.Terminal() {
		return
	}
	task.Status = status
	p.tracker.Upsert(ctx, task)
}

func (p *Poller) base(id string) domain.Task {
	if task, ok := p.tracker.Get(id); ok {
		return task
	}
	return domain.Task{ID: id, CreatedAt: time.Now()}
}
