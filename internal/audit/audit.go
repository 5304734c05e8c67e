package audit

// Result is the outcome of auditing one document.
type Result struct {
	URL             string      `json:"url"`
	Issues          []Issue     `json:"issues"`
	Recommendations []string    `json:"recommendations"`
	Score           int         `json:"score"`
	ScoreDelta      *ScoreDelta `json:"score_delta,omitempty"`
	Keywords        []string    `json:"keywords"`
	WordCount       int         `json:"word_count"`
	SchemaTypes     []string    `json:"schema_types,omitempty"`
	InternalLinks   int         `json:"internal_links"`
	ExternalLinks   int         `json:"external_links"`
}

// Assess runs every rule over doc. It is pure: the same document always
// yields the same result.
func Assess(doc Document) Result {
	issues := DetectIssues(doc)
	syn := Synthesize(issues, Hints(doc)...)
	return Result{
		URL:             doc.URL,
		Issues:          issues,
		Recommendations: syn.Recommendations,
		Score:           syn.Score,
		ScoreDelta:      PreviewScoreDelta(issues),
		Keywords:        ExtractKeywords(doc.PlainText),
		WordCount:       doc.WordCount(),
		SchemaTypes:     doc.SchemaTypes,
		InternalLinks:   doc.InternalLinks,
		ExternalLinks:   doc.ExternalLinks,
	}
}
