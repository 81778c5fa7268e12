package domain

import "time"

// Status enumerates the lifecycle of a generation task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReady      Status = "ready"
	StatusError      Status = "error"
)

// Terminal reports whether the status accepts no further transitions.
func (s Status) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// Known platform identifiers assigned by the backend.
const (
	PlatformTelegram     = "telegram"
	PlatformVK           = "vk"
	PlatformTenchat      = "tenchat"
	PlatformVC           = "vc"
	PlatformDzen         = "dzen"
	PlatformEmail        = "email"
	PlatformPressRelease = "press_release"
	PlatformImage        = "image"
)

// Task is one generation request's full lifecycle record, from submission
// to ready/error content. Analysis and Posts are present only when ready;
// Error only when the task failed; both are absent while in flight.
type Task struct {
	ID        string    `json:"id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	URL       string    `json:"url,omitempty"`
	Analysis  *Analysis `json:"analysis,omitempty"`
	Posts     []Post    `json:"posts,omitempty"`
	Error     string    `json:"error,omitempty"`
	Liked     bool      `json:"liked"`
}

// Analysis carries the backend's editorial read of the source material.
type Analysis struct {
	Summary        string   `json:"summary"`
	Facts          []string `json:"facts"`
	Quotes         []string `json:"quotes,omitempty"`
	Sentiment      string   `json:"sentiment"`
	Topics         []string `json:"topics"`
	RelevanceScore int      `json:"relevance_score"`
	PRVerdict      string   `json:"pr_verdict"`
	PRReasoning    string   `json:"pr_reasoning"`
	Category       string   `json:"category,omitempty"`
	Tips           []string `json:"tips,omitempty"`
}

// Post is one platform's rendition of the plan. At most one post per
// platform exists within a task.
type Post struct {
	Platform    string `json:"platform"`
	Content     string `json:"content"`
	ImagePrompt string `json:"image_prompt,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	PostStatus  string `json:"status,omitempty"`
}

// ScanResult is a candidate mention found by a monitoring scan. Transient:
// consumed immediately to seed a new submission, never persisted.
type ScanResult struct {
	URL   string `json:"url"`
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
}

// BrandProfile is the client-held brand context sent along with scans and
// generations. Only Name gates whether monitoring mode may run.
type BrandProfile struct {
	Name           string   `json:"name" yaml:"name"`
	Description    string   `json:"description" yaml:"description"`
	ToneOfVoice    string   `json:"tone_of_voice" yaml:"tone_of_voice"`
	TargetAudience string   `json:"target_audience" yaml:"target_audience"`
	Keywords       []string `json:"keywords" yaml:"keywords"`
	Examples       []string `json:"examples" yaml:"examples"`
}

// GenerationRequest mirrors the backend's submission payload.
type GenerationRequest struct {
	URL           string        `json:"url,omitempty"`
	Text          string        `json:"text,omitempty"`
	ModelProvider string        `json:"model_provider"`
	Mode          string        `json:"mode"`
	TargetBrand   string        `json:"target_brand,omitempty"`
	BrandProfile  *BrandProfile `json:"brand_profile,omitempty"`
}

// RegenerateRequest addresses a single artifact within a ready plan.
type RegenerateRequest struct {
	PlanID         string            `json:"plan_id"`
	Platform       string            `json:"platform"`
	OriginalNews   GenerationRequest `json:"original_news"`
	Analysis       *Analysis         `json:"analysis"`
	CurrentContent string            `json:"current_content,omitempty"`
}

// PlanData is the content payload attached to a ready status report.
type PlanData struct {
	Analysis *Analysis `json:"analysis"`
	Posts    []Post    `json:"posts"`
}

// StatusReport is one poll response for a task id.
type StatusReport struct {
	Status Status    `json:"status"`
	Data   *PlanData `json:"data,omitempty"`
	Error  string    `json:"error,omitempty"`
}

// PostIndex returns the position of the post for the given platform,
// or -1 when the task carries none.
func (t Task) PostIndex(platform string) int {
	for i, p := range t.Posts {
		if p.Platform == platform {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers can replace a task structurally
// without sharing slices with the stored value.
func (t Task) Clone() Task {
	out := t
	if t.Analysis != nil {
		a := t.Analysis.Clone()
		out.Analysis = &a
	}
	if t.Posts != nil {
		out.Posts = make([]Post, len(t.Posts))
		copy(out.Posts, t.Posts)
	}
	return out
}

// Clone deep-copies the analysis value.
func (a Analysis) Clone() Analysis {
	out := a
	out.Facts = append([]string(nil), a.Facts...)
	out.Quotes = append([]string(nil), a.Quotes...)
	out.Topics = append([]string(nil), a.Topics...)
	out.Tips = append([]string(nil), a.Tips...)
	return out
}
