package core

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/baxromumarov/seo-auditor/internal/audit"
	"github.com/baxromumarov/seo-auditor/internal/observability"
)

// Brief builds a content brief from a topic, a page, or both. Without a topic
// the page title (then its H1, then its host) is used.
func (s *AuditService) Brief(ctx context.Context, topic, pageURL string) (audit.Brief, error) {
	topic = strings.TrimSpace(topic)
	pageURL = strings.TrimSpace(pageURL)
	if topic == "" && pageURL == "" {
		return audit.Brief{}, fmt.Errorf("topic or url: %w", ErrMissingInput)
	}

	var text string
	if pageURL != "" {
		_, doc, err := s.load(ctx, pageURL)
		if err != nil {
			return audit.Brief{}, err
		}
		text = doc.PlainText
		if topic == "" {
			topic = topicFromDocument(doc, pageURL)
		}
	}

	brief := audit.GenerateBrief(topic, text)
	s.record(observability.EventBriefGenerated, map[string]any{"topic": brief.Topic, "url": pageURL})
	slog.Info("brief generated", "topic", brief.Topic, "url", pageURL)
	return brief, nil
}

func topicFromDocument(doc audit.Document, pageURL string) string {
	if t := audit.CleanTopic(doc.Title); t != "" {
		return t
	}
	if t := audit.CleanTopic(doc.H1); t != "" {
		return t
	}
	raw := pageURL
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	}
	return pageURL
}
