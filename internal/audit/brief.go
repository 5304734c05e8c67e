package audit

import (
	"fmt"
	"strings"
)

const (
	briefMinWords     = 1200
	briefMaxWords     = 1800
	briefPageKeywords = 4
)

const (
	IntentInformational = "informational"
	IntentCommercial    = "commercial"
	IntentTransactional = "transactional"
)

type OutlineSection struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type WordCountTarget struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type KeywordSets struct {
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

type LinkStrategy struct {
	Strategy string   `json:"strategy"`
	Examples []string `json:"examples"`
}

type Brief struct {
	Topic                string           `json:"topic"`
	Intent               string           `json:"intent"`
	Outline              []OutlineSection `json:"outline"`
	WordCountTarget      WordCountTarget  `json:"word_count_target"`
	Keywords             KeywordSets      `json:"keywords"`
	Checklist            []string         `json:"checklist"`
	InternalLinkStrategy LinkStrategy     `json:"internal_link_strategy"`
	Questions            []string         `json:"questions"`
}

var (
	transactionalModifiers = []string{"buy", "price", "pricing", "cost", "cheap", "discount", "order"}
	commercialModifiers    = []string{"best", "vs", "versus", "review", "reviews", "alternative", "alternatives", "compare", "top"}
)

// DetectIntent guesses the search intent of a topic from modifier words.
func DetectIntent(topic string) string {
	words := Tokenize(topic)
	has := func(modifiers []string) bool {
		for _, w := range words {
			for _, m := range modifiers {
				if w == m {
					return true
				}
			}
		}
		return false
	}
	switch {
	case has(transactionalModifiers):
		return IntentTransactional
	case has(commercialModifiers):
		return IntentCommercial
	default:
		return IntentInformational
	}
}

// GenerateBrief expands fixed templates around topic. text, usually the plain
// text of a fetched page, feeds the primary keyword set.
func GenerateBrief(topic, text string) Brief {
	topic = collapseSpace(topic)

	primary := newOrderedSet()
	primary.add(topic)
	pageKeywords := ExtractKeywords(text)
	if len(pageKeywords) > briefPageKeywords {
		pageKeywords = pageKeywords[:briefPageKeywords]
	}
	for _, kw := range pageKeywords {
		primary.add(kw)
	}

	return Brief{
		Topic:           topic,
		Intent:          DetectIntent(topic),
		Outline:         buildOutline(topic),
		WordCountTarget: WordCountTarget{Min: briefMinWords, Max: briefMaxWords},
		Keywords: KeywordSets{
			Primary:   primary.items,
			Secondary: secondaryKeywords(topic),
		},
		Checklist: []string{
			fmt.Sprintf("Use \"%s\" in the title, H1 and first 100 words.", topic),
			fmt.Sprintf("Write a meta description (120–160 chars) that mentions %s.", topic),
			fmt.Sprintf("Break the %s article into clear H2 sections that match search intent.", topic),
			fmt.Sprintf("Add at least 3 internal links to related %s content.", topic),
			fmt.Sprintf("Add images with descriptive alt text and FAQ schema for %s questions.", topic),
		},
		InternalLinkStrategy: LinkStrategy{
			Strategy: fmt.Sprintf("Treat this page as the %s hub: link out to supporting articles and link every supporting article back with descriptive anchors.", topic),
			Examples: []string{
				fmt.Sprintf("%s checklist", topic),
				fmt.Sprintf("%s examples", topic),
				fmt.Sprintf("common %s mistakes", topic),
			},
		},
		Questions: []string{
			fmt.Sprintf("What is %s?", topic),
			fmt.Sprintf("Why does %s matter?", topic),
			fmt.Sprintf("How do you get started with %s step by step?", topic),
		},
	}
}

func secondaryKeywords(topic string) []string {
	suffixes := []string{"guide", "tips", "best practices", "checklist", "examples"}
	out := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		out = append(out, strings.TrimSpace(topic+" "+s))
	}
	return out
}

func buildOutline(topic string) []OutlineSection {
	return []OutlineSection{
		{
			Title:       fmt.Sprintf("Introduction to %s", topic),
			Description: fmt.Sprintf("Define %s and set context for the reader.", topic),
		},
		{
			Title:       fmt.Sprintf("Why %s matters", topic),
			Description: fmt.Sprintf("Connect %s to concrete outcomes like traffic, leads or revenue.", topic),
		},
		{
			Title:       fmt.Sprintf("Step-by-step: how to approach %s", topic),
			Description: fmt.Sprintf("Give readers a clear, numbered %s process they can follow.", topic),
		},
		{
			Title:       fmt.Sprintf("Common %s mistakes and FAQs", topic),
			Description: fmt.Sprintf("Answer real questions about %s and help readers avoid traps.", topic),
		},
		{
			Title:       fmt.Sprintf("Conclusion: put %s into practice", topic),
			Description: fmt.Sprintf("Summarize the %s takeaways and end with a specific call to action.", topic),
		},
	}
}
