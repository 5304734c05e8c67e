package audit

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/baxromumarov/seo-auditor/internal/urlutil"
)

// countLinks counts distinct anchors pointing at pageURL's host and elsewhere.
// Relative links on a page without a usable URL are ignored.
func countLinks(sel *goquery.Document, pageURL string) (internal, external int) {
	base := parseBase(pageURL)
	if href, ok := sel.Find("base[href]").First().Attr("href"); ok && base != nil {
		if ref, err := url.Parse(strings.TrimSpace(href)); err == nil {
			resolved := base.ResolveReference(ref)
			if sameHost(base, resolved.Hostname()) {
				base = resolved
			}
		}
	}
	seenInternal := map[string]struct{}{}
	seenExternal := map[string]struct{}{}

	sel.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		resolved := resolveLink(base, strings.TrimSpace(a.AttrOr("href", "")))
		if resolved == "" {
			return
		}
		normalized, host, err := urlutil.Normalize(resolved)
		if err != nil || host == "" {
			return
		}
		if sameHost(base, host) {
			seenInternal[normalized] = struct{}{}
		} else {
			seenExternal[normalized] = struct{}{}
		}
	})
	return len(seenInternal), len(seenExternal)
}

func parseBase(pageURL string) *url.URL {
	if pageURL == "" {
		return nil
	}
	if !strings.Contains(pageURL, "://") {
		pageURL = "https://" + pageURL
	}
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return nil
	}
	return u
}

func resolveLink(base *url.URL, href string) string {
	lower := strings.ToLower(href)
	if href == "" || strings.HasPrefix(href, "#") ||
		strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") || strings.HasPrefix(lower, "javascript:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func sameHost(base *url.URL, host string) bool {
	if base == nil || host == "" {
		return false
	}
	baseHost := strings.ToLower(strings.TrimPrefix(base.Hostname(), "www."))
	targetHost := strings.ToLower(strings.TrimPrefix(host, "www."))
	return baseHost == targetHost
}
