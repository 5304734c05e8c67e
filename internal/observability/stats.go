package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// StatsSnapshot is the dashboard record: issuesFound and seoScore describe the
// most recent successful audit.
type StatsSnapshot struct {
	PagesCrawled uint64            `json:"pagesCrawled"`
	IssuesFound  int               `json:"issuesFound"`
	SEOScore     int               `json:"seoScore"`
	LastScan     string            `json:"lastScan"`
	ErrorsTotal  uint64            `json:"errorsTotal"`
	FetchAvgSecs float64           `json:"fetchSecondsAvg"`
	ErrorsByCode map[string]uint64 `json:"errorsByCode,omitempty"`
}

// Stats aggregates audit activity in memory. The zero value is not usable; call NewStats.
type Stats struct {
	pagesCrawled atomic.Uint64
	errorsTotal  atomic.Uint64
	fetchCount   atomic.Uint64
	fetchNanos   atomic.Uint64

	mu           sync.Mutex
	issuesFound  int
	seoScore     int
	lastScan     time.Time
	errorsByCode map[string]uint64
}

func NewStats() *Stats {
	return &Stats{errorsByCode: map[string]uint64{}}
}

// RecordAudit stores the outcome of a successful audit.
func (s *Stats) RecordAudit(issues, score int, at time.Time) {
	s.pagesCrawled.Add(1)
	s.mu.Lock()
	s.issuesFound = issues
	s.seoScore = score
	s.lastScan = at
	s.mu.Unlock()
}

func (s *Stats) ObserveFetchDuration(d time.Duration) {
	if d <= 0 {
		return
	}
	s.fetchCount.Add(1)
	s.fetchNanos.Add(uint64(d.Nanoseconds()))
}

func (s *Stats) IncError(code string) {
	if code == "" {
		code = ErrorFailed
	}
	s.errorsTotal.Add(1)
	s.mu.Lock()
	s.errorsByCode[code]++
	s.mu.Unlock()
}

func (s *Stats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	snap := StatsSnapshot{
		IssuesFound:  s.issuesFound,
		SEOScore:     s.seoScore,
		ErrorsByCode: copyMap(s.errorsByCode),
	}
	if !s.lastScan.IsZero() {
		snap.LastScan = s.lastScan.Format(time.RFC1123)
	}
	s.mu.Unlock()

	snap.PagesCrawled = s.pagesCrawled.Load()
	snap.ErrorsTotal = s.errorsTotal.Load()
	if count := s.fetchCount.Load(); count > 0 {
		snap.FetchAvgSecs = float64(s.fetchNanos.Load()) / float64(count) / 1e9
	}
	return snap
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
