package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// Delivery handles the outward-facing actions on a finished plan:
// publishing a post and recording like feedback.
type Delivery struct {
	api      ports.PlanService
	tracker  *Tracker
	telegram ports.Publisher
	logger   *slog.Logger
}

// NewDelivery wires the backend and the optional direct Telegram channel.
func NewDelivery(api ports.PlanService, tracker *Tracker, telegram ports.Publisher, logger *slog.Logger) *Delivery {
	if logger == nil {
		logger = slog.Default()
	}
	return &Delivery{api: api, tracker: tracker, telegram: telegram, logger: logger}
}

// Publish delivers the platform's post. Telegram goes out through the Bot
// API when configured; every other platform goes through the backend. The
// post is marked published locally on success.
func (d *Delivery) Publish(ctx context.Context, id, platform string) (string, error) {
	task, ok := d.tracker.Get(id)
	if !ok {
		return "", fmt.Errorf("publish: %w: %s", ErrUnknownTask, id)
	}
	if task.Status != domain.StatusReady {
		return "", fmt.Errorf("publish: %w: %s is %s", ErrNotReady, id, task.Status)
	}

	idx := task.PostIndex(platform)
	if idx < 0 {
		return "", fmt.Errorf("publish: task %s has no %s post", id, platform)
	}
	post := task.Posts[idx]

	var message string
	if platform == domain.PlatformTelegram && d.telegram != nil {
		if err := d.telegram.Publish(ctx, post); err != nil {
			return "", err
		}
		message = "delivered via telegram bot"
	} else {
		msg, err := d.api.Publish(ctx, post.Content, platform)
		if err != nil {
			return "", err
		}
		message = msg
	}

	// Mark against the live task so a regeneration that landed while the
	// delivery was in flight is not reverted.
	if _, err := d.tracker.Update(ctx, id, func(t *domain.Task) error {
		if i := t.PostIndex(platform); i >= 0 {
			t.Posts[i].PostStatus = "published"
		}
		return nil
	}); err != nil {
		d.logger.Warn("publish state not recorded", "task", id, "error", err)
	}

	d.logger.Info("post published", "task", id, "platform", platform)
	return message, nil
}

// Like records feedback for a plan and flips the local flag on ack.
func (d *Delivery) Like(ctx context.Context, id string, like bool) (domain.Task, error) {
	if _, ok := d.tracker.Get(id); !ok {
		return domain.Task{}, fmt.Errorf("feedback: %w: %s", ErrUnknownTask, id)
	}

	if err := d.api.Feedback(ctx, id, like); err != nil {
		return domain.Task{}, err
	}

	return d.tracker.Update(ctx, id, func(t *domain.Task) error {
		t.Liked = like
		return nil
	})
}
