package audit

import (
	"strings"
	"testing"
)

func TestAnalyzeContent(t *testing.T) {
	t.Parallel()

	text := "Go is fast. Go is simple! Is Go fun?"
	res := AnalyzeContent(text, "")
	if res.WordCount != 9 {
		t.Errorf("word count = %d", res.WordCount)
	}
	if res.Sentences != 3 {
		t.Errorf("sentences = %d", res.Sentences)
	}
	if res.ReadabilityScore != 94 {
		t.Errorf("readability = %d", res.ReadabilityScore)
	}
	if len(res.Suggestions) != 1 || !strings.Contains(res.Suggestions[0], "300+") {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}

func TestAnalyzeContentFocusKeyword(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 350)

	missing := AnalyzeContent(long, "Golang")
	if missing.KeywordCount != 0 || len(missing.Suggestions) != 1 || !strings.Contains(missing.Suggestions[0], "not found") {
		t.Errorf("unexpected analysis %+v", missing)
	}

	rare := AnalyzeContent(long+" golang", "golang")
	if rare.KeywordCount != 1 || !strings.Contains(rare.Suggestions[0], "only a few") {
		t.Errorf("unexpected analysis %+v", rare)
	}

	good := AnalyzeContent(long+" golang golang golang", "golang")
	if good.KeywordCount != 3 || good.Suggestions[0] != "Looks good!" {
		t.Errorf("unexpected analysis %+v", good)
	}
}

func TestResearchKeyword(t *testing.T) {
	t.Parallel()

	res := ResearchKeyword("  link building ")
	if res.MainKeyword != "link building" {
		t.Errorf("main keyword = %q", res.MainKeyword)
	}
	if len(res.RelatedKeywords) != 3 || res.RelatedKeywords[1].Keyword != "best link building" {
		t.Errorf("related = %+v", res.RelatedKeywords)
	}
	if len(res.Suggestions) != 3 {
		t.Errorf("suggestions = %v", res.Suggestions)
	}
}
