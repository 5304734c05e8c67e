package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/baxromumarov/seo-auditor/internal/audit"
	"github.com/baxromumarov/seo-auditor/internal/httpx"
	"github.com/baxromumarov/seo-auditor/internal/observability"
	"github.com/baxromumarov/seo-auditor/internal/store"
	"github.com/baxromumarov/seo-auditor/internal/urlutil"
)

var (
	ErrMissingInput  = errors.New("missing input")
	ErrBatchTooLarge = errors.New("too many urls in batch")
)

const defaultBatchLimit = 10

type PageFetcher interface {
	FetchPage(ctx context.Context, rawURL string) (httpx.Page, error)
}

type RobotsChecker interface {
	Allowed(ctx context.Context, rawURL string) bool
}

type AuditStore interface {
	SaveAudit(ctx context.Context, rec store.AuditRecord) error
}

// Report is an audit result enriched with fetch metadata.
type Report struct {
	ID string `json:"id"`
	audit.Result
	FinalURL      string    `json:"final_url"`
	Redirected    bool      `json:"redirected"`
	Status        int       `json:"status"`
	FetchedAt     time.Time `json:"fetched_at"`
	RobotsAllowed bool      `json:"robots_allowed"`
}

// Failure is the payload returned when a page could not be audited.
type Failure struct {
	URL       string        `json:"url,omitempty"`
	Error     string        `json:"error"`
	ErrorCode string        `json:"error_code"`
	Score     int           `json:"score"`
	Issues    []audit.Issue `json:"issues"`
	Keywords  []string      `json:"keywords"`
}

// AuditError reports a collaborator failure for one URL.
type AuditError struct {
	URL  string
	Code string
	Err  error
}

func (e *AuditError) Error() string {
	return fmt.Sprintf("audit %s failed (%s): %v", e.URL, e.Code, e.Err)
}

func (e *AuditError) Unwrap() error {
	return e.Err
}

func (e *AuditError) Failure() Failure {
	return Failure{
		URL:       e.URL,
		Error:     observability.FriendlyMessage(e.Code),
		ErrorCode: e.Code,
		Issues:    []audit.Issue{},
		Keywords:  []string{},
	}
}

// BatchItem holds either a report or a failure for one input URL.
type BatchItem struct {
	URL     string   `json:"url"`
	Report  *Report  `json:"report,omitempty"`
	Failure *Failure `json:"failure,omitempty"`
}

type AuditOption func(*AuditService)

func WithRobots(r RobotsChecker) AuditOption {
	return func(s *AuditService) { s.robots = r }
}

// WithStore persists every successful audit.
func WithStore(st AuditStore) AuditOption {
	return func(s *AuditService) { s.store = st }
}

func WithAnalytics(a *observability.AnalyticsLog) AuditOption {
	return func(s *AuditService) { s.analytics = a }
}

func WithBatchLimit(n int) AuditOption {
	return func(s *AuditService) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

type AuditService struct {
	fetcher    PageFetcher
	robots     RobotsChecker
	store      AuditStore
	stats      *observability.Stats
	analytics  *observability.AnalyticsLog
	batchLimit int
	newID      func() string
}

func NewAuditService(fetcher PageFetcher, stats *observability.Stats, opts ...AuditOption) *AuditService {
	if stats == nil {
		stats = observability.NewStats()
	}
	s := &AuditService{
		fetcher:    fetcher,
		stats:      stats,
		batchLimit: defaultBatchLimit,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuditService) Stats() *observability.Stats {
	return s.stats
}

func (s *AuditService) Analytics() *observability.AnalyticsLog {
	return s.analytics
}

func (s *AuditService) BatchLimit() int {
	return s.batchLimit
}

// Audit fetches rawURL and runs the audit engine over it. Fetch and parse
// failures are returned as *AuditError.
func (s *AuditService) Audit(ctx context.Context, rawURL string) (Report, error) {
	input := strings.TrimSpace(rawURL)
	if input == "" {
		return Report{}, fmt.Errorf("url: %w", ErrMissingInput)
	}

	page, doc, err := s.load(ctx, input)
	if err != nil {
		return Report{}, err
	}

	res := audit.Assess(doc)
	report := Report{
		ID:            s.newID(),
		Result:        res,
		FinalURL:      page.FinalURL,
		Redirected:    page.FinalURL != "" && !urlutil.SameDocument(input, page.FinalURL),
		Status:        page.StatusCode,
		FetchedAt:     page.FetchedAt,
		RobotsAllowed: true,
	}
	if s.robots != nil {
		report.RobotsAllowed = s.robots.Allowed(ctx, input)
	}

	s.stats.RecordAudit(len(res.Issues), res.Score, page.FetchedAt)

	if s.store != nil {
		rec := store.AuditRecord{
			ID:              report.ID,
			URL:             input,
			FinalURL:        report.FinalURL,
			Score:           res.Score,
			Issues:          res.Issues,
			Recommendations: res.Recommendations,
			Keywords:        res.Keywords,
			WordCount:       res.WordCount,
			CreatedAt:       page.FetchedAt,
		}
		if err := s.store.SaveAudit(ctx, rec); err != nil {
			slog.Warn("failed to persist audit", "url", input, "error", err)
		}
	}

	s.record(observability.EventAnalyzed, map[string]any{"url": input, "score": res.Score})
	slog.Info("audit completed", "url", input, "score", res.Score, "issues", len(res.Issues))
	return report, nil
}

// AuditBatch audits urls concurrently. Items keep the input order.
func (s *AuditService) AuditBatch(ctx context.Context, urls []string) ([]BatchItem, error) {
	if len(urls) == 0 {
		return nil, fmt.Errorf("urls: %w", ErrMissingInput)
	}
	if len(urls) > s.batchLimit {
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(urls), s.batchLimit)
	}

	items := make([]BatchItem, len(urls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, u := range urls {
		g.Go(func() error {
			items[i] = s.batchItem(gctx, u)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *AuditService) batchItem(ctx context.Context, rawURL string) BatchItem {
	item := BatchItem{URL: rawURL}
	report, err := s.Audit(ctx, rawURL)
	if err == nil {
		item.Report = &report
		return item
	}

	var auditErr *AuditError
	if errors.As(err, &auditErr) {
		f := auditErr.Failure()
		item.Failure = &f
		return item
	}
	item.Failure = &Failure{
		URL:       rawURL,
		Error:     err.Error(),
		ErrorCode: observability.ErrorInvalidURL,
		Issues:    []audit.Issue{},
		Keywords:  []string{},
	}
	return item
}

func (s *AuditService) load(ctx context.Context, input string) (httpx.Page, audit.Document, error) {
	if urlutil.IsStaticAsset(input) {
		s.stats.IncError(observability.ErrorContentType)
		err := &httpx.FetchError{Err: httpx.ErrNotHTML}
		return httpx.Page{URL: input}, audit.Document{}, &AuditError{URL: input, Code: observability.ErrorContentType, Err: err}
	}

	page, err := s.fetcher.FetchPage(ctx, input)
	if err != nil {
		code := observability.ClassifyFetchError(err)
		s.stats.IncError(code)
		slog.Warn("fetch failed", "url", input, "code", code, "error", err)
		return page, audit.Document{}, &AuditError{URL: input, Code: code, Err: err}
	}
	s.stats.ObserveFetchDuration(page.Duration)

	doc, err := audit.Normalize(documentURL(input, page.FinalURL), page.Body, page.ContentType)
	if err != nil {
		s.stats.IncError(observability.ErrorFailed)
		return page, audit.Document{}, &AuditError{URL: input, Code: observability.ErrorFailed, Err: err}
	}
	return page, doc, nil
}

// documentURL keeps scheme-less input as typed so the audit can flag it;
// otherwise the post-redirect URL is what gets audited.
func documentURL(input, finalURL string) string {
	lower := strings.ToLower(input)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return input
	}
	if finalURL == "" {
		return input
	}
	return finalURL
}

func (s *AuditService) record(event string, data map[string]any) {
	if err := s.analytics.Record(event, data); err != nil {
		slog.Warn("failed to record analytics event", "event", event, "error", err)
	}
}

// RecordExport logs an export event for url.
func (s *AuditService) RecordExport(event, url string) {
	s.record(event, map[string]any{"url": url})
}
