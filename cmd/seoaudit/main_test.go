package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/baxromumarov/seo-auditor/internal/audit"
	"github.com/baxromumarov/seo-auditor/internal/config"
	"github.com/baxromumarov/seo-auditor/internal/core"
	"github.com/baxromumarov/seo-auditor/internal/httpx"
)

type stubFetcher struct{}

func (stubFetcher) FetchPage(_ context.Context, rawURL string) (httpx.Page, error) {
	if strings.Contains(rawURL, "missing") {
		return httpx.Page{}, &httpx.FetchError{Status: 404, Err: errors.New("Not Found")}
	}
	body := "<html><head><title>Email Marketing Basics | Example</title></head><body><h1>Email</h1><p>" +
		strings.Repeat("newsletter subscribers campaign ", 10) + "</p></body></html>"
	return httpx.Page{
		URL:         rawURL,
		FinalURL:    rawURL,
		StatusCode:  200,
		ContentType: "text/html",
		Body:        []byte(body),
		FetchedAt:   time.Now(),
	}, nil
}

// run executes the CLI with a stub fetcher and an isolated config file.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("batchLimit: 5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd(&app{newFetcher: func(*config.Config) core.PageFetcher { return stubFetcher{} }})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--config", cfgPath))
	err := cmd.Execute()
	return out.String(), err
}

func TestAuditCommandJSON(t *testing.T) {
	out, err := run(t, "", "audit", "https://example.com")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}

	var rep core.Report
	if err := json.Unmarshal([]byte(out), &rep); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if rep.URL != "https://example.com" || rep.ID == "" {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if len(rep.Issues) == 0 || rep.Issues[0].Code != audit.IssueMetaDescMissing {
		t.Fatalf("issues = %+v", rep.Issues)
	}
}

func TestAuditCommandMarkdown(t *testing.T) {
	out, err := run(t, "", "audit", "https://example.com", "--format", "markdown")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !strings.Contains(out, "# SEO Audit") || !strings.Contains(out, "**High**: No meta description.") {
		t.Fatalf("markdown output:\n%s", out)
	}
}

func TestAuditCommandPDFToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.pdf")
	if _, err := run(t, "", "audit", "https://example.com", "--format", "pdf", "--output", path); err != nil {
		t.Fatalf("audit: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatal("output file is not a PDF")
	}
}

func TestAuditCommandErrors(t *testing.T) {
	if _, err := run(t, "", "audit", "https://example.com", "--format", "xml"); !errors.Is(err, errUnknownFormat) {
		t.Errorf("unknown format: %v", err)
	}
	if _, err := run(t, "", "audit", "https://example.com", "--format", "pdf"); err == nil {
		t.Error("pdf without --output should fail")
	}

	out, err := run(t, "", "audit", "https://missing.example")
	if err == nil || !strings.Contains(err.Error(), "STATUS") {
		t.Fatalf("expected STATUS failure, got %v", err)
	}
	var failure core.Failure
	if err := json.Unmarshal([]byte(out), &failure); err != nil {
		t.Fatalf("failure payload %q: %v", out, err)
	}
	if failure.ErrorCode != "STATUS" || failure.Score != 0 {
		t.Fatalf("failure = %+v", failure)
	}
}

func TestAuditCommandBatch(t *testing.T) {
	out, err := run(t, "", "audit", "https://a.example", "https://missing.example")
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	var items []core.BatchItem
	if err := json.Unmarshal([]byte(out), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 || items[0].Report == nil || items[1].Failure == nil {
		t.Fatalf("items = %+v", items)
	}
}

func TestBriefCommand(t *testing.T) {
	out, err := run(t, "", "brief", "--url", "https://example.com")
	if err != nil {
		t.Fatalf("brief: %v", err)
	}
	var b audit.Brief
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b.Topic != "email marketing basics" {
		t.Fatalf("topic = %q", b.Topic)
	}

	if _, err := run(t, "", "brief"); !errors.Is(err, core.ErrMissingInput) {
		t.Fatalf("brief without input: %v", err)
	}
}

func TestKeywordsCommand(t *testing.T) {
	out, err := run(t, "Gardening gardening tomatoes tomatoes tomatoes soil", "keywords")
	if err != nil {
		t.Fatalf("keywords: %v", err)
	}
	if got := strings.Fields(out); len(got) != 2 || got[0] != "tomatoes" || got[1] != "gardening" {
		t.Fatalf("keywords = %q", out)
	}

	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte("compost compost mulch"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "", "keywords", path, "--json")
	if err != nil {
		t.Fatalf("keywords file: %v", err)
	}
	if strings.TrimSpace(out) != "[\n  \"compost\",\n  \"mulch\"\n]" {
		t.Fatalf("json keywords = %q", out)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "seoaudit version ") {
		t.Fatalf("version output = %q", out)
	}
}
