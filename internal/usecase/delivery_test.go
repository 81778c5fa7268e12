package usecase

import (
	"context"
	"errors"
	"testing"

	"rezonans/internal/domain"
)

func TestPublishViaBackend(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	api := newStubService()
	api.publishFn = func(content, platform string) (string, error) {
		if platform != domain.PlatformVK || content != "vk text" {
			t.Errorf("unexpected publish: %s %q", platform, content)
		}
		return "queued", nil
	}

	d := NewDelivery(api, tracker, nil, nil)

	msg, err := d.Publish(ctx, "t1", domain.PlatformVK)
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if msg != "queued" {
		t.Fatalf("unexpected message %q", msg)
	}

	task, _ := tracker.Get("t1")
	if task.Posts[1].PostStatus != "published" {
		t.Fatalf("post not marked published: %+v", task.Posts[1])
	}
}

func TestPublishTelegramUsesDirectChannel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	api := newStubService()
	pub := &stubPublisher{}

	d := NewDelivery(api, tracker, pub, nil)

	if _, err := d.Publish(ctx, "t1", domain.PlatformTelegram); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(pub.posts) != 1 || pub.posts[0].Content != "tg text" {
		t.Fatalf("direct channel not used: %+v", pub.posts)
	}
	if api.callCount("publish") != 0 {
		t.Fatal("telegram publish must bypass the backend")
	}
}

func TestPublishRequiresReadyTask(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := NewTracker(nil, nil)
	tracker.Insert(ctx, domain.Task{ID: "t1", Status: domain.StatusPending})

	d := NewDelivery(newStubService(), tracker, nil, nil)

	if _, err := d.Publish(ctx, "t1", domain.PlatformVK); !errors.Is(err, ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestLikeFlipsLocalFlagOnAck(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	api := newStubService()
	api.feedbackFn = func(id string, like bool) error {
		if id != "t1" || !like {
			t.Errorf("unexpected feedback %s %v", id, like)
		}
		return nil
	}

	d := NewDelivery(api, tracker, nil, nil)

	updated, err := d.Like(ctx, "t1", true)
	if err != nil {
		t.Fatalf("Like error: %v", err)
	}
	if !updated.Liked {
		t.Fatal("like flag not set")
	}

	task, _ := tracker.Get("t1")
	if !task.Liked {
		t.Fatal("like flag not stored")
	}
}

func TestPublishKeepsUpdatesLandedDuringDelivery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	entered := make(chan struct{})
	release := make(chan struct{})

	api := newStubService()
	api.publishFn = func(content, platform string) (string, error) {
		close(entered)
		<-release
		return "queued", nil
	}

	d := NewDelivery(api, tracker, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.Publish(ctx, "t1", domain.PlatformVK)
		done <- err
	}()

	<-entered
	if _, err := tracker.Update(ctx, "t1", func(task *domain.Task) error {
		task.Posts[0].Content = "tg rewritten"
		return nil
	}); err != nil {
		t.Fatalf("interleaved update failed: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	task, _ := tracker.Get("t1")
	if task.Posts[1].PostStatus != "published" {
		t.Fatalf("post not marked published: %+v", task.Posts[1])
	}
	if task.Posts[0].Content != "tg rewritten" {
		t.Fatalf("update landed during delivery was reverted: %q", task.Posts[0].Content)
	}
}

func TestLikeKeepsUpdatesLandedDuringFeedback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	entered := make(chan struct{})
	release := make(chan struct{})

	api := newStubService()
	api.feedbackFn = func(string, bool) error {
		close(entered)
		<-release
		return nil
	}

	d := NewDelivery(api, tracker, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := d.Like(ctx, "t1", true)
		done <- err
	}()

	<-entered
	if _, err := tracker.Update(ctx, "t1", func(task *domain.Task) error {
		task.Posts[0].ImageURL = "https://img/tg-v2.png"
		return nil
	}); err != nil {
		t.Fatalf("interleaved update failed: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Like error: %v", err)
	}

	task, _ := tracker.Get("t1")
	if !task.Liked {
		t.Fatal("like flag not stored")
	}
	if task.Posts[0].ImageURL != "https://img/tg-v2.png" {
		t.Fatalf("update landed during feedback was reverted: %q", task.Posts[0].ImageURL)
	}
}

func TestLikeFailureLeavesFlagUntouched(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	tracker := newReadyTracker(ctx, "t1")

	api := newStubService()
	api.feedbackFn = func(string, bool) error { return errors.New("backend down") }

	d := NewDelivery(api, tracker, nil, nil)

	if _, err := d.Like(ctx, "t1", true); err == nil {
		t.Fatal("expected feedback error")
	}

	task, _ := tracker.Get("t1")
	if task.Liked {
		t.Fatal("failed feedback must not flip the flag")
	}
}
