// Package report renders audit results for export.
//
// Two formats are supported:
//   - PDF, laid out like a printed one-page audit summary (WritePDF)
//   - Markdown, for pasting into tickets and docs (WriteMarkdown)
//
// Both renderers keep issue order exactly as the audit produced it.
package report
