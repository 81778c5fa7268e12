package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// StatusError is a server-reported failure: the backend answered, but with
// a non-2xx status. Detail carries the server's message when present.
type StatusError struct {
	Code   int
	Detail string
}

// Error renders the status and server detail.
func (e *StatusError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("backend returned %d", e.Code)
	}
	return fmt.Sprintf("backend returned %d: %s", e.Code, e.Detail)
}

// Client talks to the generation backend over HTTP. Every request carries
// the bearer credential from the token source and a correlation id.
type Client struct {
	baseURL string
	token   ports.TokenSource
	http    *http.Client
}

var _ ports.PlanService = (*Client)(nil)

// NewClient creates a reusable HTTP client for the given backend.
func NewClient(baseURL string, token ports.TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTP injects a custom http.Client, used by tests.
func NewClientWithHTTP(baseURL string, token ports.TokenSource, hc *http.Client) *Client {
	c := NewClient(baseURL, token)
	if hc != nil {
		c.http = hc
	}
	return c
}

// SubmitGeneration enqueues a generation and returns the task identifier.
// The call returns on acceptance, not completion.
func (c *Client) SubmitGeneration(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/generate", req, &resp); err != nil {
		return "", fmt.Errorf("submit generation: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("submit generation: backend returned empty task id")
	}
	return resp.ID, nil
}

// PlanStatus fetches one status report for a task id.
func (c *Client) PlanStatus(ctx context.Context, id string) (domain.StatusReport, error) {
	var report domain.StatusReport
	if err := c.get(ctx, "/generate/status/"+url.PathEscape(id), &report); err != nil {
		return domain.StatusReport{}, fmt.Errorf("plan status %s: %w", id, err)
	}
	return report, nil
}

// History lists the server-indexed plans for the current user, newest first.
func (c *Client) History(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.get(ctx, "/history", &tasks); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return tasks, nil
}

// Plan fetches one full plan record.
func (c *Client) Plan(ctx context.Context, id string) (domain.Task, error) {
	var task domain.Task
	if err := c.get(ctx, "/history/"+url.PathEscape(id), &task); err != nil {
		return domain.Task{}, fmt.Errorf("plan %s: %w", id, err)
	}
	return task, nil
}

// ScanProfile runs a PR-mode mention scan seeded by the brand profile.
func (c *Client) ScanProfile(ctx context.Context, profile domain.BrandProfile) ([]domain.ScanResult, error) {
	var results []domain.ScanResult
	if err := c.post(ctx, "/monitor/scan", profile, &results); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	return results, nil
}

// ScanBrand runs a blogger-mode scan for an arbitrary target brand.
func (c *Client) ScanBrand(ctx context.Context, targetBrand string) ([]domain.ScanResult, error) {
	payload := map[string]string{"target_brand": targetBrand}
	var results []domain.ScanResult
	if err := c.post(ctx, "/monitor/scan_brand", payload, &results); err != nil {
		return nil, fmt.Errorf("scan brand: %w", err)
	}
	return results, nil
}

// Regenerate requests a replacement artifact for one platform of a plan.
func (c *Client) Regenerate(ctx context.Context, req domain.RegenerateRequest) (domain.Post, error) {
	var post domain.Post
	if err := c.post(ctx, "/regenerate", req, &post); err != nil {
		return domain.Post{}, fmt.Errorf("regenerate %s/%s: %w", req.PlanID, req.Platform, err)
	}
	return post, nil
}

// Feedback records a like/unlike for a plan.
func (c *Client) Feedback(ctx context.Context, planID string, like bool) error {
	payload := map[string]any{"plan_id": planID, "like": like}
	if err := c.post(ctx, "/feedback", payload, nil); err != nil {
		return fmt.Errorf("feedback %s: %w", planID, err)
	}
	return nil
}

// Publish hands a post's content to the backend for platform delivery.
func (c *Client) Publish(ctx context.Context, content, platform string) (string, error) {
	payload := map[string]string{"content": content, "platform": platform}
	var resp struct {
		Message string `json:"message"`
	}
	if err := c.post(ctx, "/publish", payload, &resp); err != nil {
		return "", fmt.Errorf("publish to %s: %w", platform, err)
	}
	return resp.Message, nil
}

func (c *Client) post(ctx context.Context, path string, payload, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(body), v)
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	return c.do(ctx, http.MethodGet, path, nil, v)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, v any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != nil {
		if tok := c.token.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Detail: readDetail(resp.Body)}
	}

	if v == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// readDetail extracts the server's error message. FastAPI-style backends
// wrap it as {"detail": "..."}; anything else is passed through raw.
func readDetail(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}

	var wrapped struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Detail != "" {
		return wrapped.Detail
	}

	return strings.TrimSpace(string(raw))
}
