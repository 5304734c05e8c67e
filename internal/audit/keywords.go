package audit

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	maxKeywords      = 10
	minKeywordLength = 5
)

// Tokenize lower-cases text and splits it into letter/number runs.
func Tokenize(text string) []string {
	notWord := func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsNumber(r) }
	return strings.FieldsFunc(strings.ToLower(text), notWord)
}

// ExtractKeywords takes the ten most frequent tokens and keeps those longer
// than four characters. Ties keep first-occurrence order.
func ExtractKeywords(text string) []string {
	type entry struct {
		word  string
		count int
	}

	index := map[string]int{}
	var freq []entry
	for _, w := range Tokenize(text) {
		if i, ok := index[w]; ok {
			freq[i].count++
			continue
		}
		index[w] = len(freq)
		freq = append(freq, entry{word: w, count: 1})
	}

	sort.SliceStable(freq, func(i, j int) bool {
		return freq[i].count > freq[j].count
	})
	if len(freq) > maxKeywords {
		freq = freq[:maxKeywords]
	}

	out := []string{}
	for _, e := range freq {
		if utf8.RuneCountInString(e.word) >= minKeywordLength {
			out = append(out, e.word)
		}
	}
	return out
}
