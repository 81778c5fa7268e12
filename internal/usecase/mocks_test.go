package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// stubService implements ports.PlanService with per-method hooks and call
// counters so tests can script backend behavior.
type stubService struct {
	mu    sync.Mutex
	calls map[string]int

	submitFn     func(domain.GenerationRequest) (string, error)
	statusFn     func(string) (domain.StatusReport, error)
	historyFn    func() ([]domain.Task, error)
	planFn       func(string) (domain.Task, error)
	scanFn       func(domain.BrandProfile) ([]domain.ScanResult, error)
	scanBrandFn  func(string) ([]domain.ScanResult, error)
	regenerateFn func(domain.RegenerateRequest) (domain.Post, error)
	feedbackFn   func(string, bool) error
	publishFn    func(string, string) (string, error)
}

var _ ports.PlanService = (*stubService)(nil)

func newStubService() *stubService {
	return &stubService{calls: map[string]int{}}
}

func (s *stubService) count(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *stubService) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubService) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.calls {
		total += n
	}
	return total
}

func (s *stubService) SubmitGeneration(_ context.Context, req domain.GenerationRequest) (string, error) {
	s.count("submit")
	if s.submitFn == nil {
		return "", errors.New("submit not scripted")
	}
	return s.submitFn(req)
}

func (s *stubService) PlanStatus(_ context.Context, id string) (domain.StatusReport, error) {
	s.count("status")
	if s.statusFn == nil {
		return domain.StatusReport{}, errors.New("status not scripted")
	}
	return s.statusFn(id)
}

func (s *stubService) History(_ context.Context) ([]domain.Task, error) {
	s.count("history")
	if s.historyFn == nil {
		return nil, errors.New("history not scripted")
	}
	return s.historyFn()
}

func (s *stubService) Plan(_ context.Context, id string) (domain.Task, error) {
	s.count("plan")
	if s.planFn == nil {
		return domain.Task{}, errors.New("plan not scripted")
	}
	return s.planFn(id)
}

func (s *stubService) ScanProfile(_ context.Context, profile domain.BrandProfile) ([]domain.ScanResult, error) {
	s.count("scan")
	if s.scanFn == nil {
		return nil, errors.New("scan not scripted")
	}
	return s.scanFn(profile)
}

func (s *stubService) ScanBrand(_ context.Context, target string) ([]domain.ScanResult, error) {
	s.count("scanBrand")
	if s.scanBrandFn == nil {
		return nil, errors.New("scan brand not scripted")
	}
	return s.scanBrandFn(target)
}

func (s *stubService) Regenerate(_ context.Context, req domain.RegenerateRequest) (domain.Post, error) {
	s.count("regenerate")
	if s.regenerateFn == nil {
		return domain.Post{}, errors.New("regenerate not scripted")
	}
	return s.regenerateFn(req)
}

func (s *stubService) Feedback(_ context.Context, id string, like bool) error {
	s.count("feedback")
	if s.feedbackFn == nil {
		return errors.New("feedback not scripted")
	}
	return s.feedbackFn(id, like)
}

func (s *stubService) Publish(_ context.Context, content, platform string) (string, error) {
	s.count("publish")
	if s.publishFn == nil {
		return "", errors.New("publish not scripted")
	}
	return s.publishFn(content, platform)
}

// stubProfiles is an in-memory ports.ProfileStore.
type stubProfiles struct {
	profile *domain.BrandProfile
	err     error
}

func (s *stubProfiles) Load() (*domain.BrandProfile, error) { return s.profile, s.err }
func (s *stubProfiles) Save(p domain.BrandProfile) error {
	s.profile = &p
	return nil
}

// stubPublisher records what was pushed to the direct channel.
type stubPublisher struct {
	posts []domain.Post
	err   error
}

func (s *stubPublisher) Publish(_ context.Context, post domain.Post) error {
	if s.err != nil {
		return s.err
	}
	s.posts = append(s.posts, post)
	return nil
}

func readyTask(id string) domain.Task {
	return domain.Task{
		ID:        id,
		Status:    domain.StatusReady,
		CreatedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		URL:       "https://example.com/news",
		Analysis: &domain.Analysis{
			Summary:        "summary",
			Sentiment:      "позитивная",
			RelevanceScore: 70,
			PRVerdict:      "Отвечать",
			Facts:          []string{"fact"},
			Topics:         []string{"topic"},
		},
		Posts: []domain.Post{
			{Platform: domain.PlatformTelegram, Content: "tg text", ImageURL: "https://img/tg.png", ImagePrompt: "tg prompt"},
			{Platform: domain.PlatformVK, Content: "vk text"},
			{Platform: domain.PlatformEmail, Content: "email text"},
			{Platform: domain.PlatformDzen, Content: "dzen text", ImageURL: "https://img/dzen.png", ImagePrompt: "dzen prompt"},
			{Platform: domain.PlatformPressRelease, Content: "pr text"},
		},
	}
}
