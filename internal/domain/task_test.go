package domain

import "testing"

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	if StatusPending.Terminal() || StatusProcessing.Terminal() {
		t.Fatal("in-flight statuses must not be terminal")
	}
	if !StatusReady.Terminal() || !StatusError.Terminal() {
		t.Fatal("ready and error must be terminal")
	}
}

func TestPostIndex(t *testing.T) {
	t.Parallel()

	task := Task{Posts: []Post{
		{Platform: PlatformTelegram},
		{Platform: PlatformVK},
		{Platform: PlatformEmail},
	}}

	if i := task.PostIndex(PlatformVK); i != 1 {
		t.Fatalf("expected index 1 for vk, got %d", i)
	}
	if i := task.PostIndex(PlatformDzen); i != -1 {
		t.Fatalf("expected -1 for absent platform, got %d", i)
	}
}

func TestCloneIsStructurallyIndependent(t *testing.T) {
	t.Parallel()

	task := Task{
		ID:     "t1",
		Status: StatusReady,
		Analysis: &Analysis{
			Summary: "s",
			Facts:   []string{"f1"},
			Topics:  []string{"x"},
		},
		Posts: []Post{{Platform: PlatformTelegram, Content: "hello"}},
	}

	clone := task.Clone()
	clone.Posts[0].Content = "changed"
	clone.Analysis.Facts[0] = "changed"
	clone.Analysis.Summary = "changed"

	if task.Posts[0].Content != "hello" {
		t.Fatal("clone shares posts slice with original")
	}
	if task.Analysis.Facts[0] != "f1" {
		t.Fatal("clone shares analysis facts with original")
	}
	if task.Analysis.Summary != "s" {
		t.Fatal("clone shares analysis pointer with original")
	}
}
