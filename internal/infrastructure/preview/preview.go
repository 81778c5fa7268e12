package preview

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rezonans/internal/domain"
	"rezonans/internal/ports"
)

// Enricher fetches page titles for scan results so the operator sees more
// than a bare URL when picking a mention to react to. Best-effort: a fetch
// or parse failure leaves the result untouched.
type Enricher struct {
	client *http.Client
	logger *slog.Logger
	limit  int
}

var _ ports.ScanEnricher = (*Enricher)(nil)

// NewEnricher wires an HTTP client; a nil client gets a short-timeout default.
func NewEnricher(client *http.Client, logger *slog.Logger) *Enricher {
	if client == nil {
		client = &http.Client{Timeout: 8 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Enricher{client: client, logger: logger, limit: 10}
}

// Enrich fills Title for each result whose page yields one. The input slice
// is not mutated; a decorated copy is returned.
func (e *Enricher) Enrich(ctx context.Context, results []domain.ScanResult) []domain.ScanResult {
	out := make([]domain.ScanResult, len(results))
	copy(out, results)

	for i := range out {
		if i >= e.limit {
			break
		}
		if out[i].Title != "" || out[i].URL == "" {
			continue
		}

		title, err := e.fetchTitle(ctx, out[i].URL)
		if err != nil {
			e.logger.Debug("title fetch failed", "url", out[i].URL, "error", err)
			continue
		}
		out[i].Title = title
	}

	return out
}

func (e *Enricher) fetchTitle(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &httpError{status: resp.Status}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}

	return title, nil
}

type httpError struct {
	status string
}

func (e *httpError) Error() string { return "unexpected status " + e.status }
