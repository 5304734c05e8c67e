package audit

import (
	"strings"
	"testing"
)

func TestGenerateBriefTopicOnly(t *testing.T) {
	t.Parallel()

	const topic = "content marketing"
	brief := GenerateBrief(topic, "")

	if len(brief.Outline) != 5 {
		t.Fatalf("outline has %d entries", len(brief.Outline))
	}
	if len(brief.Checklist) != 5 {
		t.Fatalf("checklist has %d entries", len(brief.Checklist))
	}
	if len(brief.Keywords.Secondary) != 5 {
		t.Fatalf("secondary keywords has %d entries", len(brief.Keywords.Secondary))
	}
	if brief.WordCountTarget != (WordCountTarget{Min: 1200, Max: 1800}) {
		t.Errorf("word count target = %+v", brief.WordCountTarget)
	}
	if len(brief.Keywords.Primary) != 1 || brief.Keywords.Primary[0] != topic {
		t.Errorf("primary keywords = %v", brief.Keywords.Primary)
	}

	var parameterized []string
	for _, s := range brief.Outline {
		parameterized = append(parameterized, s.Title, s.Description)
	}
	parameterized = append(parameterized, brief.Checklist...)
	parameterized = append(parameterized, brief.Keywords.Secondary...)
	parameterized = append(parameterized, brief.Questions...)
	parameterized = append(parameterized, brief.InternalLinkStrategy.Examples...)
	parameterized = append(parameterized, brief.InternalLinkStrategy.Strategy)
	for _, s := range parameterized {
		if !strings.Contains(s, topic) {
			t.Errorf("%q does not mention the topic", s)
		}
	}

	wantSecondary := []string{
		"content marketing guide",
		"content marketing tips",
		"content marketing best practices",
		"content marketing checklist",
		"content marketing examples",
	}
	for i, w := range wantSecondary {
		if brief.Keywords.Secondary[i] != w {
			t.Errorf("secondary[%d] = %q, want %q", i, brief.Keywords.Secondary[i], w)
		}
	}
}

func TestGenerateBriefUsesPageKeywords(t *testing.T) {
	t.Parallel()

	text := "kubernetes kubernetes kubernetes clusters clusters deploy deploy helm charts charts charts observability"
	brief := GenerateBrief("kubernetes", text)

	want := []string{"kubernetes", "charts", "clusters", "deploy"}
	if len(brief.Keywords.Primary) != len(want) {
		t.Fatalf("primary = %v, want %v", brief.Keywords.Primary, want)
	}
	for i := range want {
		if brief.Keywords.Primary[i] != want[i] {
			t.Errorf("primary = %v, want %v", brief.Keywords.Primary, want)
			break
		}
	}
}

func TestGenerateBriefEmptyTopic(t *testing.T) {
	t.Parallel()

	brief := GenerateBrief("", "")
	if len(brief.Outline) != 5 || len(brief.Checklist) != 5 {
		t.Errorf("template sections must always be present: %+v", brief)
	}
	if len(brief.Keywords.Primary) != 0 {
		t.Errorf("primary = %v", brief.Keywords.Primary)
	}
}

func TestDetectIntent(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		topic string
		want  string
	}{
		{"content marketing", IntentInformational},
		{"best crm for startups", IntentCommercial},
		{"notion vs obsidian", IntentCommercial},
		{"buy running shoes", IntentTransactional},
		{"seo tool pricing", IntentTransactional},
	}
	for _, tc := range testCases {
		t.Run(tc.topic, func(t *testing.T) {
			t.Parallel()
			if got := DetectIntent(tc.topic); got != tc.want {
				t.Errorf("DetectIntent(%q) = %q, want %q", tc.topic, got, tc.want)
			}
		})
	}
}

func TestCleanTopic(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		raw  string
		want string
	}{
		{"What is Content Marketing? | Acme Blog", "content marketing"},
		{"The Best Running Shoes – 2024 Edition", "running shoes"},
		{"Email Outreach: A Primer", "email outreach"},
		{"Pricing Menu Log in", "pricing"},
		{"Invoicing Features for Teams", "invoicing"},
		{"   ", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			if got := CleanTopic(tc.raw); got != tc.want {
				t.Errorf("CleanTopic(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
