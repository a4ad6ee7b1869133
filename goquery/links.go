package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/podscribe"
)

// transcriptLinkSelectors identify hyperlinks likely to lead to a
// transcript page, most specific first.
var transcriptLinkSelectors = []string{
	`a[href*="transcript"]`,
	`a[data-testid="transcript-link"]`,
}

// feedLinkSelectors identify the page's syndication feed.
var feedLinkSelectors = []string{
	`link[type="application/rss+xml"]`,
	`link[type="application/atom+xml"]`,
	`a[href$=".rss"]`,
}

// FindTranscriptLink returns the first hyperlink that appears to lead to a
// transcript, resolved to an absolute URL against baseURL. Link candidates
// are tried by attribute first, then by visible anchor text.
func FindTranscriptLink(rawHTML string, baseURL string) (string, bool) {
	doc, base, err := parseWithBase(rawHTML, baseURL)
	if err != nil {
		return "", false
	}

	if href, _, ok := podscribe.FirstMatch(transcriptLinkSelectors, func(sel string) (string, bool) {
		return firstHref(doc, sel)
	}); ok {
		return resolveURL(base, href)
	}

	// fall back to anchor text matching
	var href string
	doc.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(s.Text()), "transcript") {
			href, _ = s.Attr("href")
			return false
		}
		return true
	})
	if href == "" {
		return "", false
	}
	return resolveURL(base, href)
}

// FindFeedLink returns the page's feed URL resolved against baseURL.
func FindFeedLink(rawHTML string, baseURL string) (string, bool) {
	doc, base, err := parseWithBase(rawHTML, baseURL)
	if err != nil {
		return "", false
	}

	href, _, ok := podscribe.FirstMatch(feedLinkSelectors, func(sel string) (string, bool) {
		return firstHref(doc, sel)
	})
	if !ok {
		return "", false
	}
	return resolveURL(base, href)
}

func parseWithBase(rawHTML, baseURL string) (*goquery.Document, *url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, nil, err
	}
	return doc, base, nil
}

func firstHref(doc *goquery.Document, selector string) (string, bool) {
	href, ok := doc.Find(selector).First().Attr("href")
	return href, ok && href != ""
}

// resolveURL resolves href against base, rejecting non-HTTP results.
func resolveURL(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}
