package audit

import (
	"regexp"
	"strings"
)

var topicStopPhrases = []string{
	"skip to main content",
	"skip to content",
	"menu",
	"features",
	"log in",
	"login",
	"sign in",
	"sign up",
}

var topicLeadingPhrases = regexp.MustCompile(`^(the best|best|learn about|what is|a guide to|complete guide to)\s+`)

// CleanTopic derives a short topic from a page title such as
// "What is Content Marketing? | Acme Blog".
func CleanTopic(raw string) string {
	topic := strings.TrimSpace(raw)
	if i := strings.IndexAny(topic, "|-–:"); i != -1 {
		topic = topic[:i]
	}

	lower := strings.ToLower(topic)
	for _, phrase := range topicStopPhrases {
		if i := strings.Index(lower, phrase); i != -1 {
			lower = lower[:i]
		}
	}

	lower = collapseSpace(strings.Trim(lower, " ?!."))
	lower = topicLeadingPhrases.ReplaceAllString(lower, "")
	return collapseSpace(strings.Trim(lower, " ?!."))
}
