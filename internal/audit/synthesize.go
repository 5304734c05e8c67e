package audit

var remediations = map[string]string{
	IssueURLInsecure:     "Use HTTPS site-wide and redirect HTTP → HTTPS.",
	IssueTitleMissing:    "Add a unique page title (50–60 characters is a good target).",
	IssueTitleShort:      "Consider expanding the title to be more descriptive (aim ~50–60 chars).",
	IssueTitleLong:       "Shorten the title to ~50–60 chars while keeping key terms.",
	IssueMetaDescMissing: "Write a meta description of 120–160 characters that summarizes the page.",
	IssueH1Missing:       "Add exactly one clear H1 describing the page topic.",
	IssueH1Short:         "Make the H1 more specific to the page intent.",
	IssueThinContent:     "Expand the page to at least 300 words of useful, on-topic content.",
	IssueHTMLLarge:       "Reduce HTML bloat: remove unused components, compress critical markup, defer non-critical content.",
	IssueNoIndex:         "Remove the noindex directive if this page should appear in search results.",
}

// baselineRecommendations are appended to every audit.
var baselineRecommendations = []string{
	"Ensure meta description is present and unique per page.",
	"Add internal links to key pages (helps crawl + relevance).",
	"Run a Lighthouse / Core Web Vitals check after UI changes.",
}

type Synthesis struct {
	Score           int      `json:"score"`
	Recommendations []string `json:"recommendations"`
}

// Synthesize turns issues into a deduction score and an ordered, deduplicated
// recommendation list. hints come first, then per-issue remediations, then the
// baseline set.
func Synthesize(issues []Issue, hints ...string) Synthesis {
	score := 100
	for _, issue := range issues {
		score -= issue.Severity.Penalty()
	}

	recs := newOrderedSet()
	for _, h := range hints {
		recs.add(h)
	}
	for _, issue := range issues {
		if rec, ok := remediations[issue.Code]; ok {
			recs.add(rec)
		}
	}
	for _, rec := range baselineRecommendations {
		recs.add(rec)
	}

	return Synthesis{
		Score:           clamp(score, 0, 100),
		Recommendations: recs.items,
	}
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: map[string]struct{}{}, items: []string{}}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
