// Package audit implements the SEO audit rules shared by the HTTP API and the CLI.
//
// The flow is one-directional: raw HTML or text is normalized into a Document,
// DetectIssues applies the ordered rules, Synthesize turns the issues into a
// 0-100 score and a recommendation list, and ExtractKeywords / GenerateBrief
// work from the plain text. Nothing in this package performs I/O or keeps
// state between calls, so every function is safe for concurrent use.
//
// Score table: high 20, med 10, low 5 points, clamped to [0, 100].
package audit
