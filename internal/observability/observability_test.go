package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baxromumarov/seo-auditor/internal/httpx"
)

func TestClassifyFetchError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ErrorFailed},
		{"not html", &httpx.FetchError{Status: 200, Err: httpx.ErrNotHTML}, ErrorContentType},
		{"too large", &httpx.FetchError{Status: 200, Err: httpx.ErrBodyTooLarge}, ErrorTooLarge},
		{"deadline", &httpx.FetchError{Err: context.DeadlineExceeded}, ErrorTimeout},
		{"dns", &httpx.FetchError{Err: &net.DNSError{Err: "no such host", Name: "nope.invalid"}}, ErrorDNS},
		{"dns timeout", &net.DNSError{Err: "i/o timeout", IsTimeout: true}, ErrorTimeout},
		{"status", &httpx.FetchError{Status: 404, Err: errors.New("Not Found")}, ErrorStatus},
		{"refused", &httpx.FetchError{Err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused")}, ErrorRefused},
		{"tls text", fmt.Errorf("get: %w", errors.New("tls: handshake failure")), ErrorTLS},
		{"invalid url", &httpx.FetchError{Err: errors.New("empty url")}, ErrorInvalidURL},
		{"other fetch", &httpx.FetchError{Err: errors.New("EOF")}, ErrorNetwork},
		{"other", errors.New("boom"), ErrorFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ClassifyFetchError(tc.err); got != tc.want {
				t.Fatalf("ClassifyFetchError(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}

func TestFriendlyMessageCoversCodes(t *testing.T) {
	t.Parallel()

	fallback := FriendlyMessage("unknown")
	for _, code := range []string{ErrorTimeout, ErrorDNS, ErrorRefused, ErrorTLS, ErrorStatus, ErrorContentType, ErrorTooLarge, ErrorInvalidURL, ErrorNetwork} {
		if msg := FriendlyMessage(code); msg == "" || msg == fallback {
			t.Errorf("FriendlyMessage(%q) = %q", code, msg)
		}
	}
}

func TestStatsSnapshot(t *testing.T) {
	t.Parallel()

	s := NewStats()
	if snap := s.Snapshot(); snap.PagesCrawled != 0 || snap.LastScan != "" {
		t.Fatalf("fresh snapshot = %+v", snap)
	}

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.RecordAudit(4, 60, at.Add(-time.Hour))
	s.RecordAudit(2, 85, at)
	s.ObserveFetchDuration(2 * time.Second)
	s.ObserveFetchDuration(4 * time.Second)
	s.IncError(ErrorDNS)
	s.IncError("")

	snap := s.Snapshot()
	if snap.PagesCrawled != 2 {
		t.Errorf("PagesCrawled = %d, want 2", snap.PagesCrawled)
	}
	if snap.IssuesFound != 2 || snap.SEOScore != 85 {
		t.Errorf("last audit = (%d, %d), want (2, 85)", snap.IssuesFound, snap.SEOScore)
	}
	if snap.LastScan != at.Format(time.RFC1123) {
		t.Errorf("LastScan = %q", snap.LastScan)
	}
	if snap.FetchAvgSecs != 3 {
		t.Errorf("FetchAvgSecs = %v, want 3", snap.FetchAvgSecs)
	}
	if snap.ErrorsTotal != 2 || snap.ErrorsByCode[ErrorDNS] != 1 || snap.ErrorsByCode[ErrorFailed] != 1 {
		t.Errorf("errors = %d %v", snap.ErrorsTotal, snap.ErrorsByCode)
	}
}

func TestAnalyticsLog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "analytics.jsonl")
	log := NewAnalyticsLog(path)

	stats, err := log.Stats()
	if err != nil {
		t.Fatalf("stats on missing file: %v", err)
	}
	if stats.TotalEvents != 0 {
		t.Fatalf("expected empty stats, got %+v", stats)
	}

	events := []string{EventAnalyzed, EventAnalyzed, EventPDFExported, EventMarkdownExported, EventBriefGenerated, "other"}
	for _, ev := range events {
		if err := log.Record(ev, map[string]any{"url": "https://example.com"}); err != nil {
			t.Fatalf("record %s: %v", ev, err)
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatalf("write: %v", err)
	}
	f.Close()

	stats, err = log.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := AnalyticsStats{TotalAnalyses: 2, PDFExports: 1, MarkdownExports: 1, BriefsGenerated: 1, TotalEvents: 6}
	if stats != want {
		t.Fatalf("stats = %+v, want %+v", stats, want)
	}
}

func TestAnalyticsLogDisabled(t *testing.T) {
	t.Parallel()

	var nilLog *AnalyticsLog
	if err := nilLog.Record(EventAnalyzed, nil); err != nil {
		t.Fatalf("nil log record: %v", err)
	}
	if err := NewAnalyticsLog("").Record(EventAnalyzed, nil); err != nil {
		t.Fatalf("disabled log record: %v", err)
	}
}
