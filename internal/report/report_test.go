package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

func sampleResult() audit.Result {
	return audit.Result{
		URL: "https://example.com",
		Issues: []audit.Issue{
			{Code: audit.IssueTitleMissing, Severity: audit.SeverityHigh, Message: "Missing <title> tag."},
			{Code: audit.IssueURLInsecure, Severity: audit.SeverityMedium, Message: "Site is using HTTP (not HTTPS)."},
			{Code: audit.IssueH1Short, Severity: audit.SeverityLow, Message: "H1 looks very short."},
		},
		Recommendations: []string{"Add a unique <title>.", "Serve the site over HTTPS."},
		Score:           65,
		Keywords:        []string{"tomatoes", "water"},
		WordCount:       412,
	}
}

func TestSeverityLabel(t *testing.T) {
	t.Parallel()

	cases := map[audit.Severity]string{
		audit.SeverityHigh:   "High",
		audit.SeverityMedium: "Med",
		audit.SeverityLow:    "Low",
	}
	for sev, want := range cases {
		if got := severityLabel(sev); got != want {
			t.Errorf("severityLabel(%q) = %q, want %q", sev, got, want)
		}
	}
}

func TestWritePDF(t *testing.T) {
	t.Parallel()

	t.Run("renders a pdf document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WritePDF(&buf, "https://example.com", sampleResult()); err != nil {
			t.Fatalf("WritePDF: %v", err)
		}
		if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
			t.Fatalf("output does not start with a PDF header: %q", buf.Bytes()[:min(16, buf.Len())])
		}
		if !bytes.Contains(buf.Bytes(), []byte("%%EOF")) {
			t.Fatal("output is missing the PDF trailer")
		}
	})

	t.Run("handles empty issue list and long urls", func(t *testing.T) {
		t.Parallel()

		res := sampleResult()
		res.Issues = nil
		var buf bytes.Buffer
		longURL := "https://example.com/" + strings.Repeat("very-long-path-segment/", 20)
		if err := WritePDF(&buf, longURL, res); err != nil {
			t.Fatalf("WritePDF: %v", err)
		}
		if buf.Len() == 0 {
			t.Fatal("expected output")
		}
	})
}

func TestWriteMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("writes issues in order", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "https://example.com", sampleResult()); err != nil {
			t.Fatalf("WriteMarkdown: %v", err)
		}
		out := buf.String()

		for _, want := range []string{"# SEO Audit", "https://example.com", "65/100", "## Issues", "## Recommendations", "## Keywords", "tomatoes"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected output to contain %q", want)
			}
		}

		high := strings.Index(out, "**High**: Missing <title> tag.")
		med := strings.Index(out, "**Med**: Site is using HTTP (not HTTPS).")
		low := strings.Index(out, "**Low**: H1 looks very short.")
		if high < 0 || med < 0 || low < 0 {
			t.Fatalf("missing issue lines in:\n%s", out)
		}
		if !(high < med && med < low) {
			t.Errorf("issues out of order: high=%d med=%d low=%d", high, med, low)
		}
		if strings.Contains(out, "## Structured data") {
			t.Error("structured data section should be omitted without schema types")
		}
	})

	t.Run("handles an empty result", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if err := WriteMarkdown(&buf, "", audit.Result{SchemaTypes: []string{"Article"}}); err != nil {
			t.Fatalf("WriteMarkdown: %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "No issues found.") || !strings.Contains(out, "None.") {
			t.Errorf("expected empty-state text, got:\n%s", out)
		}
		if !strings.Contains(out, "Article") {
			t.Error("expected schema types to be listed")
		}
	})
}
