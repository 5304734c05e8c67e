package audit

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// Document holds the signals extracted from one fetched page or raw text payload.
// Every string field is "" when the source element is absent.
type Document struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	H1              string   `json:"h1"`
	MetaDescription string   `json:"meta_description"`
	RobotsDirective string   `json:"robots_directive"`
	CanonicalURL    string   `json:"canonical_url"`
	HTMLByteLength  int      `json:"html_bytes"`
	PlainText       string   `json:"-"`
	SchemaTypes     []string `json:"schema_types,omitempty"`
	InternalLinks   int      `json:"internal_links"`
	ExternalLinks   int      `json:"external_links"`
}

// NoIndex reports whether the robots directive keeps the page out of the index.
func (d Document) NoIndex() bool {
	return strings.Contains(d.RobotsDirective, "noindex") || d.RobotsDirective == "none"
}

// WordCount counts whitespace separated words of the plain text.
func (d Document) WordCount() int {
	return len(strings.Fields(d.PlainText))
}

var skippedTextTags = map[string]struct{}{
	"script":   {},
	"style":    {},
	"noscript": {},
	"template": {},
}

// Normalize parses raw HTML into a Document. contentType may be empty; it is
// only used to pick the charset. Missing elements are never an error.
func Normalize(pageURL string, raw []byte, contentType string) (Document, error) {
	doc := Document{
		URL:            strings.TrimSpace(pageURL),
		HTMLByteLength: len(raw),
	}

	root, err := html.Parse(bytes.NewReader(toUTF8(raw, contentType)))
	if err != nil {
		return doc, fmt.Errorf("parse html: %w", err)
	}
	sel := goquery.NewDocumentFromNode(root)

	doc.Title = collapseSpace(pageTitle(sel).Text())
	doc.H1 = collapseSpace(sel.Find("h1").First().Text())
	doc.MetaDescription = firstAttr(sel, "meta[name]", "name", "description", "content")
	doc.RobotsDirective = strings.ToLower(firstAttr(sel, "meta[name]", "name", "robots", "content"))
	doc.CanonicalURL = firstAttr(sel, "link[rel]", "rel", "canonical", "href")

	sel.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		doc.SchemaTypes = appendSchemaTypes(doc.SchemaTypes, s.Text())
	})

	doc.InternalLinks, doc.ExternalLinks = countLinks(sel, doc.URL)

	body := sel.Find("body").First()
	if body.Length() == 0 {
		doc.PlainText = collapseSpace(ExtractText(root))
	} else {
		doc.PlainText = collapseSpace(ExtractText(body.Get(0)))
	}

	return doc, nil
}

// pageTitle returns the first <title> that belongs to the document, skipping
// the accessible names of inline SVG and MathML images.
func pageTitle(doc *goquery.Document) *goquery.Selection {
	return doc.Find("title").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.Closest("svg, math").Length() == 0
	}).First()
}

// NormalizeText wraps a raw text payload. No HTML is involved, so the byte length stays 0.
func NormalizeText(text string) Document {
	return Document{PlainText: collapseSpace(text)}
}

// ExtractText returns the visible text below n, skipping script-like elements.
func ExtractText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		case html.ElementNode:
			if _, skip := skippedTextTags[n.Data]; skip {
				return
			}
		case html.CommentNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// firstAttr returns attr of the first element matching selector whose key
// attribute equals want, ignoring case.
func firstAttr(doc *goquery.Document, selector, key, want, attr string) string {
	var out string
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(strings.TrimSpace(s.AttrOr(key, "")), want) {
			return true
		}
		out = strings.TrimSpace(s.AttrOr(attr, ""))
		return false
	})
	return out
}

func toUTF8(raw []byte, contentType string) []byte {
	enc, name, certain := charset.DetermineEncoding(raw, contentType)
	if name == "utf-8" || (!certain && utf8.Valid(raw)) {
		return raw
	}
	decoded, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
