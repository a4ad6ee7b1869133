package http

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

// FeedTranscript is a transcript reference found in a feed item, as
// published under the podcast namespace (<podcast:transcript url= type=>).
type FeedTranscript struct {
	URL  string
	Type string
}

// transcriptTypePreference orders transcript MIME types best-first: plain
// text needs no further processing, VTT needs cue stripping, HTML needs a
// full extraction pass.
var transcriptTypePreference = []string{"text/plain", "text/vtt", "text/html"}

// FindFeedTranscript locates the feed item for the episode and returns its
// preferred transcript reference. The item is matched by title,
// case-insensitively in either direction of containment; a single-item
// feed matches unconditionally.
func FindFeedTranscript(feedXML string, episodeTitle string) (FeedTranscript, bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(feedXML); err != nil {
		return FeedTranscript{}, false
	}

	channel := doc.FindElement("//channel")
	if channel == nil {
		return FeedTranscript{}, false
	}

	items := channel.SelectElements("item")
	item := matchItem(items, episodeTitle)
	if item == nil {
		return FeedTranscript{}, false
	}

	refs := transcriptRefs(item)
	if len(refs) == 0 {
		return FeedTranscript{}, false
	}

	for _, preferred := range transcriptTypePreference {
		for _, ref := range refs {
			if strings.EqualFold(ref.Type, preferred) {
				return ref, true
			}
		}
	}
	return refs[0], true
}

func matchItem(items []*etree.Element, episodeTitle string) *etree.Element {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return items[0]
	}

	want := strings.ToLower(strings.TrimSpace(episodeTitle))
	if want == "" {
		return nil
	}
	for _, item := range items {
		titleEl := item.SelectElement("title")
		if titleEl == nil {
			continue
		}
		have := strings.ToLower(strings.TrimSpace(titleEl.Text()))
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return item
		}
	}
	return nil
}

func transcriptRefs(item *etree.Element) []FeedTranscript {
	var refs []FeedTranscript
	for _, el := range item.ChildElements() {
		if el.Tag != "transcript" {
			continue
		}
		u := el.SelectAttrValue("url", "")
		if u == "" {
			continue
		}
		refs = append(refs, FeedTranscript{
			URL:  u,
			Type: el.SelectAttrValue("type", ""),
		})
	}
	return refs
}

var vttTimestampRe = regexp.MustCompile(`-->`)
var vttTagRe = regexp.MustCompile(`<[^>]*>`)
var vttCueIDRe = regexp.MustCompile(`^\d+$`)

// stripVTT reduces a WebVTT document to its cue text: the WEBVTT header,
// NOTE and STYLE blocks, cue identifiers, and timestamp lines are dropped,
// and inline voice/formatting tags are removed.
func stripVTT(vtt string) string {
	var fragments []string
	skipBlock := false
	for _, line := range strings.Split(vtt, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			skipBlock = false
			continue
		case skipBlock:
			continue
		case strings.HasPrefix(line, "WEBVTT"):
			continue
		case strings.HasPrefix(line, "NOTE") || strings.HasPrefix(line, "STYLE") || strings.HasPrefix(line, "REGION"):
			skipBlock = true
			continue
		case vttTimestampRe.MatchString(line):
			continue
		case vttCueIDRe.MatchString(line):
			continue
		}
		if text := strings.TrimSpace(vttTagRe.ReplaceAllString(line, "")); text != "" {
			fragments = append(fragments, text)
		}
	}
	return strings.Join(fragments, "\n")
}
