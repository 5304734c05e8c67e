package audit

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

type ContentAnalysis struct {
	WordCount        int      `json:"word_count"`
	CharCount        int      `json:"char_count"`
	Sentences        int      `json:"sentences"`
	ReadabilityScore int      `json:"readability_score"`
	FocusKeyword     string   `json:"focus_keyword,omitempty"`
	KeywordCount     int      `json:"keyword_count"`
	Keywords         []string `json:"keywords"`
	Suggestions      []string `json:"suggestions"`
}

// AnalyzeContent scores a raw text payload. focusKeyword is optional.
func AnalyzeContent(text, focusKeyword string) ContentAnalysis {
	doc := NormalizeText(text)
	out := ContentAnalysis{
		WordCount:    doc.WordCount(),
		CharCount:    utf8.RuneCountInString(text),
		FocusKeyword: strings.ToLower(strings.TrimSpace(focusKeyword)),
		Keywords:     ExtractKeywords(doc.PlainText),
		Suggestions:  []string{},
	}

	for _, s := range sentenceSplit.Split(text, -1) {
		if strings.TrimSpace(s) != "" {
			out.Sentences++
		}
	}
	if out.Sentences > 0 {
		avg := float64(out.WordCount) / float64(out.Sentences)
		out.ReadabilityScore = clamp(int(math.Round(100-avg*2)), 0, 100)
	}

	if out.WordCount < minWordCount {
		out.Suggestions = append(out.Suggestions, "Add more content (300+ words recommended).")
	}
	if out.FocusKeyword != "" {
		out.KeywordCount = strings.Count(strings.ToLower(doc.PlainText), out.FocusKeyword)
		switch {
		case out.KeywordCount == 0:
			out.Suggestions = append(out.Suggestions, "Focus keyword '"+out.FocusKeyword+"' not found in content. Include it in the first 100 words.")
		case out.KeywordCount < 3:
			out.Suggestions = append(out.Suggestions, "Focus keyword appears only a few times. Aim for 3-5 mentions naturally distributed.")
		}
	}
	if len(out.Suggestions) == 0 {
		out.Suggestions = append(out.Suggestions, "Looks good!")
	}
	return out
}

type RelatedKeyword struct {
	Keyword    string `json:"keyword"`
	Volume     string `json:"volume"`
	Difficulty string `json:"difficulty"`
}

type KeywordResearch struct {
	MainKeyword     string           `json:"main_keyword"`
	RelatedKeywords []RelatedKeyword `json:"related_keywords"`
	Suggestions     []string         `json:"suggestions"`
}

// ResearchKeyword returns template keyword ideas. Volumes and difficulty are
// rough bands, not measured data.
func ResearchKeyword(keyword string) KeywordResearch {
	keyword = collapseSpace(keyword)
	return KeywordResearch{
		MainKeyword: keyword,
		RelatedKeywords: []RelatedKeyword{
			{Keyword: keyword + " guide", Volume: "1K-10K", Difficulty: "Easy–Medium"},
			{Keyword: "best " + keyword, Volume: "10K-100K", Difficulty: "Medium–Hard"},
			{Keyword: keyword + " tips", Volume: "100-1K", Difficulty: "Easy"},
		},
		Suggestions: []string{
			"Start with easier terms to build authority",
			"Create a main pillar page for your keyword",
			"Use long-tail variations to capture niche traffic",
		},
	}
}
