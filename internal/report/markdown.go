package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/baxromumarov/seo-auditor/internal/audit"
)

// WriteMarkdown renders the audit as a Markdown document.
func WriteMarkdown(w io.Writer, pageURL string, res audit.Result) error {
	md := markdown.NewMarkdown(w)

	md.H1("SEO Audit")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", pageURL},
			{"Score", strconv.Itoa(res.Score) + "/100"},
			{"Word count", strconv.Itoa(res.WordCount)},
		},
	})
	md.PlainText("")

	md.H2("Issues")
	md.PlainText("")
	if len(res.Issues) == 0 {
		md.Tip("No issues found.")
	} else {
		lines := make([]string, 0, len(res.Issues))
		for _, issue := range res.Issues {
			lines = append(lines, fmt.Sprintf("**%s**: %s", severityLabel(issue.Severity), issue.Message))
		}
		md.BulletList(lines...)
	}
	md.PlainText("")

	writeList(md, "Recommendations", res.Recommendations)
	writeList(md, "Keywords", res.Keywords)
	if len(res.SchemaTypes) > 0 {
		writeList(md, "Structured data", res.SchemaTypes)
	}

	if err := md.Build(); err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}
	return nil
}

func writeList(md *markdown.Markdown, title string, items []string) {
	md.H2(title)
	md.PlainText("")
	if len(items) == 0 {
		md.PlainText("None.")
	} else {
		md.BulletList(items...)
	}
	md.PlainText("")
}
