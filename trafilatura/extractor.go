// Package trafilatura extracts the main text from externally linked
// transcript pages, removing navigation, footers, and other boilerplate.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/podscribe"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// blockTags are element types treated as one transcript fragment each.
var blockTags = map[string]bool{
	"p": true, "li": true, "blockquote": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// Extractor extracts main content text from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the page's main content as plain text with one blank
// line between block-level fragments. Returns ENOTFOUND when the page has
// no extractable main content.
func (e *Extractor) ExtractText(rawHTML string) (string, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", podscribe.Errorf(podscribe.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "no main content")
	}

	fragments := blockTexts(result.ContentNode)
	text := podscribe.JoinFragments(fragments)
	if text == "" {
		// content without block structure; take the node's text whole
		text = strings.TrimSpace(nodeText(result.ContentNode))
	}
	if text == "" {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "main content is empty")
	}
	return text, nil
}

// blockTexts collects the text of each block-level element in document
// order. Block elements are not descended into further, so nested inline
// markup collapses into its parent fragment.
func blockTexts(n *html.Node) []string {
	var fragments []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && blockTags[c.Data] {
			fragments = append(fragments, nodeText(c))
			continue
		}
		fragments = append(fragments, blockTexts(c)...)
	}
	return fragments
}

// nodeText concatenates all text nodes under n.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
