package observability

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const (
	EventAnalyzed         = "analyzed"
	EventPDFExported      = "pdf_exported"
	EventMarkdownExported = "markdown_exported"
	EventBriefGenerated   = "brief_generated"
)

type analyticsEvent struct {
	TS    string         `json:"ts"`
	Event string         `json:"et"`
	Data  map[string]any `json:"d,omitempty"`
}

// AnalyticsStats counts logged events by type.
type AnalyticsStats struct {
	TotalAnalyses   int `json:"total_analyses"`
	PDFExports      int `json:"pdf_exports"`
	MarkdownExports int `json:"markdown_exports"`
	BriefsGenerated int `json:"briefs_generated"`
	TotalEvents     int `json:"total_events"`
}

// AnalyticsLog appends one JSON object per line to a file.
// An empty path disables logging.
type AnalyticsLog struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func NewAnalyticsLog(path string) *AnalyticsLog {
	return &AnalyticsLog{path: path, now: time.Now}
}

func (a *AnalyticsLog) Record(event string, data map[string]any) error {
	if a == nil || a.path == "" {
		return nil
	}
	line, err := json.Marshal(analyticsEvent{TS: a.now().Format(time.RFC3339), Event: event, Data: data})
	if err != nil {
		return fmt.Errorf("encode analytics event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if dir := filepath.Dir(a.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create analytics dir: %w", err)
		}
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open analytics log: %w", err)
	}
	defer f.Close()

	line = append(line, '\n')
	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("write analytics log: %w", err)
	}
	return nil
}

// Stats reads the whole log. Malformed lines are skipped.
func (a *AnalyticsLog) Stats() (AnalyticsStats, error) {
	var stats AnalyticsStats
	if a == nil || a.path == "" {
		return stats, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Open(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("open analytics log: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var ev analyticsEvent
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			continue
		}
		stats.TotalEvents++
		switch ev.Event {
		case EventAnalyzed:
			stats.TotalAnalyses++
		case EventPDFExported:
			stats.PDFExports++
		case EventMarkdownExported:
			stats.MarkdownExports++
		case EventBriefGenerated:
			stats.BriefsGenerated++
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read analytics log: %w", err)
	}
	return stats, nil
}
