package audit

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "med"
	SeverityLow    Severity = "low"
)

// Penalty is the number of points an issue of this severity removes from the score.
func (s Severity) Penalty() int {
	switch s {
	case SeverityHigh:
		return 20
	case SeverityMedium:
		return 10
	case SeverityLow:
		return 5
	default:
		return 0
	}
}

const (
	IssueURLMissing      = "url_missing"
	IssueURLInsecure     = "url_http"
	IssueTitleMissing    = "title_missing"
	IssueTitleShort      = "title_short"
	IssueTitleLong       = "title_long"
	IssueMetaDescMissing = "meta_description_missing"
	IssueH1Missing       = "h1_missing"
	IssueH1Short         = "h1_short"
	IssueThinContent     = "thin_content"
	IssueHTMLLarge       = "html_large"
	IssueNoIndex         = "noindex"
)

const (
	minTitleLength = 25
	maxTitleLength = 65
	minH1Length    = 10
	minWordCount   = 300
	maxHTMLBytes   = 1_200_000
)

type Issue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

var numbers = message.NewPrinter(language.English)

// DetectIssues applies the audit rules in a fixed order. The output order is
// the rule order, not the severity order.
func DetectIssues(doc Document) []Issue {
	issues := []Issue{}
	add := func(code string, sev Severity, msg string) {
		issues = append(issues, Issue{Code: code, Severity: sev, Message: msg})
	}

	switch {
	case doc.URL == "":
		add(IssueURLMissing, SeverityHigh, "URL missing in result payload.")
	case hasScheme(doc.URL, "http"):
		add(IssueURLInsecure, SeverityMedium, "Site is using HTTP (not HTTPS).")
	}

	title := strings.TrimSpace(doc.Title)
	titleLen := utf8.RuneCountInString(title)
	switch {
	case titleLen == 0:
		add(IssueTitleMissing, SeverityHigh, "Missing <title> tag.")
	case titleLen < minTitleLength:
		add(IssueTitleShort, SeverityLow, numbers.Sprintf("Title looks short (%d chars).", titleLen))
	case titleLen > maxTitleLength:
		add(IssueTitleLong, SeverityMedium, numbers.Sprintf("Title may be too long (%d chars) and could truncate in search.", titleLen))
	}

	if strings.TrimSpace(doc.MetaDescription) == "" {
		add(IssueMetaDescMissing, SeverityHigh, "No meta description.")
	}

	h1 := strings.TrimSpace(doc.H1)
	switch {
	case h1 == "":
		add(IssueH1Missing, SeverityHigh, "Missing H1 heading.")
	case utf8.RuneCountInString(h1) < minH1Length:
		add(IssueH1Short, SeverityLow, "H1 looks very short.")
	}

	if wc := doc.WordCount(); wc < minWordCount {
		add(IssueThinContent, SeverityHigh, numbers.Sprintf("Thin content (%d words).", wc))
	}

	if doc.HTMLByteLength > maxHTMLBytes {
		add(IssueHTMLLarge, SeverityMedium, numbers.Sprintf("HTML is large (%d bytes).", doc.HTMLByteLength))
	}

	if doc.NoIndex() {
		add(IssueNoIndex, SeverityHigh, "Page is marked noindex.")
	}

	return issues
}

// Hints returns advice that does not count as an issue.
func Hints(doc Document) []string {
	if doc.URL != "" && !hasScheme(doc.URL, "http") && !hasScheme(doc.URL, "https") {
		return []string{"Use a full URL (https://example.com) to avoid redirects and mixed results."}
	}
	return nil
}

// hasScheme compares the URL scheme case-insensitively.
func hasScheme(rawURL, scheme string) bool {
	prefix := scheme + "://"
	return len(rawURL) >= len(prefix) && strings.EqualFold(rawURL[:len(prefix)], prefix)
}
