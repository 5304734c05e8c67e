package httpx

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultUserAgent = "seo-auditor-bot/1.0"
	DefaultTimeout   = 10 * time.Second

	// DefaultMaxBodySize caps a downloaded page at 20 MiB.
	DefaultMaxBodySize = 20 << 20
)

var (
	ErrNotHTML      = errors.New("non-html content")
	ErrBodyTooLarge = errors.New("response body exceeds size limit")
)

// CollyFetcher wraps Colly for polite page fetching with per-host rate limits.
type CollyFetcher struct {
	userAgent    string
	timeout      time.Duration
	maxBodySize  int
	backoffBase  time.Duration
	mu           sync.Mutex
	defaultRate  rate.Limit
	defaultBurst int
	hosts        map[string]*hostPolicy
}

type hostPolicy struct {
	limiter     *rate.Limiter
	nextAllowed time.Time
	mu          sync.Mutex
}

// Page is a fetched HTML document. Body holds the raw bytes as received.
type Page struct {
	URL         string        `json:"url"`
	FinalURL    string        `json:"final_url"`
	StatusCode  int           `json:"status"`
	ContentType string        `json:"content_type"`
	Body        []byte        `json:"-"`
	FetchedAt   time.Time     `json:"fetched_at"`
	Duration    time.Duration `json:"duration"`
}

type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch error (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch error (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func NewCollyFetcher(userAgent string, timeout time.Duration) *CollyFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &CollyFetcher{
		userAgent:    userAgent,
		timeout:      timeout,
		maxBodySize:  DefaultMaxBodySize,
		backoffBase:  500 * time.Millisecond,
		defaultRate:  rate.Every(time.Second),
		defaultBurst: 2,
		hosts:        make(map[string]*hostPolicy),
	}
}

func (f *CollyFetcher) SetHostLimit(host string, per time.Duration, burst int) {
	if host == "" || per <= 0 || burst <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := normalizeHost(host)
	policy := f.getOrCreatePolicyLocked(key)
	policy.mu.Lock()
	policy.limiter = rate.NewLimiter(rate.Every(per), burst)
	policy.mu.Unlock()
}

// SetMaxBodySize changes the largest body FetchPage accepts. Values <= 0 are ignored.
func (f *CollyFetcher) SetMaxBodySize(n int) {
	if n <= 0 {
		return
	}
	f.mu.Lock()
	f.maxBodySize = n
	f.mu.Unlock()
}

// FetchPage downloads rawURL and returns the raw HTML. Non-2xx answers,
// timeouts and non-HTML responses come back as *FetchError.
func (f *CollyFetcher) FetchPage(ctx context.Context, rawURL string) (Page, error) {
	page := Page{URL: rawURL}
	start := time.Now()

	status, err := f.fetchWithRetry(ctx, rawURL, func(c *colly.Collector) {
		c.OnResponse(func(r *colly.Response) {
			page.Body = append([]byte(nil), r.Body...)
			if r.Headers != nil {
				page.ContentType = r.Headers.Get("Content-Type")
			}
			if r.Request != nil && r.Request.URL != nil {
				page.FinalURL = r.Request.URL.String()
			}
		})
	})
	page.StatusCode = status
	page.FetchedAt = time.Now()
	page.Duration = time.Since(start)
	if err != nil {
		return page, err
	}

	if len(page.Body) > f.bodyLimit() {
		page.Body = nil
		return page, &FetchError{Status: status, Err: ErrBodyTooLarge}
	}
	if !isHTML(page.ContentType) {
		return page, &FetchError{Status: status, Err: ErrNotHTML}
	}
	if page.FinalURL == "" {
		page.FinalURL, _ = normalizeURL(rawURL)
	}
	return page, nil
}

func (f *CollyFetcher) fetchWithRetry(ctx context.Context, rawURL string, register func(*colly.Collector)) (int, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return 0, &FetchError{Err: err}
	}
	host := hostKey(target)

	var lastErr error
	var status int
	for attempt := 0; attempt < 3; attempt++ {
		if ctx.Err() != nil {
			return 0, &FetchError{Err: ctx.Err()}
		}
		if err := f.waitForHost(ctx, host); err != nil {
			return 0, &FetchError{Err: err}
		}
		status, lastErr = f.fetchOnce(ctx, target, register)
		if lastErr == nil {
			return status, nil
		}
		if shouldBackoff(status) {
			f.applyBackoff(host, attempt)
			continue
		}
		return status, &FetchError{Status: status, Err: lastErr}
	}

	if lastErr == nil {
		lastErr = errors.New("colly fetch failed")
	}
	return status, &FetchError{Status: status, Err: lastErr}
}

func (f *CollyFetcher) fetchOnce(ctx context.Context, target string, register func(*colly.Collector)) (int, error) {
	c := f.newCollector()
	if register != nil {
		register(c)
	}

	status := 0
	var reqErr error
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	collyCtx := colly.NewContext()
	collyCtx.Put("ctx", ctx)

	if err := c.Request(http.MethodGet, target, nil, collyCtx, nil); err != nil {
		return status, err
	}
	if reqErr != nil {
		return status, reqErr
	}
	if status >= 400 {
		return status, fmt.Errorf("status %d", status)
	}
	if status == 0 {
		status = http.StatusOK
	}
	return status, nil
}

func (f *CollyFetcher) newCollector() *colly.Collector {
	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	// robots.txt is reported by PoliteClient instead of blocking the audit.
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(f.timeout)
	// colly truncates silently at MaxBodySize; one extra byte shows the cut.
	c.MaxBodySize = f.bodyLimit() + 1

	c.OnRequest(func(r *colly.Request) {
		ctx := context.Background()
		if v := r.Ctx.GetAny("ctx"); v != nil {
			if reqCtx, ok := v.(context.Context); ok {
				ctx = reqCtx
			}
		}
		if ctx.Err() != nil {
			r.Abort()
		}
		r.Headers.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	})

	return c
}

func (f *CollyFetcher) bodyLimit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxBodySize
}

func (f *CollyFetcher) waitForHost(ctx context.Context, host string) error {
	policy := f.hostPolicy(host)
	if err := policy.waitBackoff(ctx); err != nil {
		return err
	}
	return policy.limiter.Wait(ctx)
}

func (f *CollyFetcher) hostPolicy(host string) *hostPolicy {
	key := normalizeHost(host)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getOrCreatePolicyLocked(key)
}

func (f *CollyFetcher) getOrCreatePolicyLocked(host string) *hostPolicy {
	if host == "" {
		host = "default"
	}
	if policy, ok := f.hosts[host]; ok {
		return policy
	}
	policy := &hostPolicy{
		limiter: rate.NewLimiter(f.defaultRate, f.defaultBurst),
	}
	f.hosts[host] = policy
	return policy
}

func (f *CollyFetcher) applyBackoff(host string, attempt int) {
	if attempt < 0 {
		attempt = 0
	}
	policy := f.hostPolicy(host)
	delay := f.backoffBase * time.Duration(1<<attempt)
	policy.mu.Lock()
	next := time.Now().Add(delay)
	if next.After(policy.nextAllowed) {
		policy.nextAllowed = next
	}
	policy.mu.Unlock()
}

// NormalizeURL trims rawURL and defaults a missing scheme to https.
func NormalizeURL(rawURL string) (string, error) {
	return normalizeURL(strings.TrimSpace(rawURL))
}

func normalizeURL(rawURL string) (string, error) {
	if rawURL == "" {
		return "", errors.New("empty url")
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("url has no host")
	}
	return u.String(), nil
}

func normalizeHost(host string) string {
	host = strings.ToLower(host)
	host = strings.TrimPrefix(host, "www.")
	return host
}

func hostKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "default"
	}
	return normalizeHost(u.Hostname())
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.Contains(strings.ToLower(contentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

func shouldBackoff(status int) bool {
	if status == http.StatusTooManyRequests {
		return true
	}
	if status >= 500 && status <= 599 {
		return true
	}
	return false
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *hostPolicy) waitBackoff(ctx context.Context) error {
	for {
		p.mu.Lock()
		next := p.nextAllowed
		p.mu.Unlock()
		now := time.Now()
		if !now.Before(next) {
			return nil
		}
		if err := sleepWithContext(ctx, next.Sub(now)); err != nil {
			return err
		}
	}
}
