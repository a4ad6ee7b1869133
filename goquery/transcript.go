// Package goquery implements HTML transcript extraction for retained page
// bodies using CSS selector cascades. It is the parsing half of the HTTP
// session: the browser session reads the same selectors from a live DOM.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/podscribe"
)

// Transcript extracts transcript text from raw HTML.
//
// It finds the first matching container from podscribe.ContainerSelectors,
// then tries podscribe.ItemSelectors in order, stopping at the first
// candidate that yields any items. Item texts are trimmed and joined with
// one blank line. When no item selector yields text the whole container's
// text is used. Returns ENOTFOUND when no container exists or the container
// holds no text.
func Transcript(rawHTML string) (string, error) {
	container, err := findContainer(rawHTML)
	if err != nil {
		return "", err
	}

	items, _, ok := podscribe.FirstMatch(podscribe.ItemSelectors, func(sel string) (*goquery.Selection, bool) {
		s := container.Find(sel)
		return s, s.Length() > 0
	})

	var text string
	if ok {
		var fragments []string
		items.Each(func(_ int, item *goquery.Selection) {
			fragments = append(fragments, item.Text())
		})
		text = podscribe.JoinFragments(fragments)
	}

	if text == "" {
		// item-level extraction yielded nothing; read the container whole
		text = strings.TrimSpace(container.Text())
	}

	if text == "" {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "transcript container is empty")
	}
	return text, nil
}

// ContainerHTML returns the inner markup of the first matching transcript
// container, for callers that render the transcript themselves.
// Returns ENOTFOUND when no container exists.
func ContainerHTML(rawHTML string) (string, error) {
	container, err := findContainer(rawHTML)
	if err != nil {
		return "", err
	}

	inner, err := container.Html()
	if err != nil {
		return "", podscribe.Errorf(podscribe.EINTERNAL, "rendering container markup: %v", err)
	}
	return inner, nil
}

// EpisodeTitle returns the episode page's title, preferring the og:title
// meta property over the document title. Returns "" when neither exists.
func EpisodeTitle(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if og = strings.TrimSpace(og); og != "" {
			return og
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func findContainer(rawHTML string) (*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, podscribe.Errorf(podscribe.EINVALID, "failed to parse HTML: %v", err)
	}

	container, _, ok := podscribe.FirstMatch(podscribe.ContainerSelectors, func(sel string) (*goquery.Selection, bool) {
		s := doc.Find(sel).First()
		return s, s.Length() > 0
	})
	if !ok {
		return nil, podscribe.Errorf(podscribe.ENOTFOUND, "no transcript container found")
	}
	return container, nil
}
