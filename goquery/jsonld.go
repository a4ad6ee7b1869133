package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/podscribe"
)

// TranscriptFromJSONLD scans embedded structured-data script blocks for a
// machine-readable object carrying a transcript field and returns its value
// verbatim (trimmed). Schema.org's PodcastEpisode type carries the
// transcript as a plain string or as a MediaObject.
// Returns ENOTFOUND when no script block yields one.
func TranscriptFromJSONLD(rawHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", podscribe.Errorf(podscribe.EINVALID, "failed to parse HTML: %v", err)
	}

	var text string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return true // malformed block, keep scanning
		}
		if t, ok := transcriptValue(v); ok {
			text = t
			return false
		}
		return true
	})

	if text == "" {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "no transcript in structured data")
	}
	return text, nil
}

// transcriptValue walks decoded JSON-LD looking for a "transcript" entry.
// Arrays and @graph nestings are descended; a MediaObject transcript
// contributes its "text" field.
func transcriptValue(v any) (string, bool) {
	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if t, ok := transcriptValue(item); ok {
				return t, true
			}
		}
	case map[string]any:
		if raw, ok := val["transcript"]; ok {
			switch t := raw.(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					return s, true
				}
			case map[string]any:
				if inner, ok := t["text"].(string); ok {
					if s := strings.TrimSpace(inner); s != "" {
						return s, true
					}
				}
			}
		}
		if graph, ok := val["@graph"]; ok {
			return transcriptValue(graph)
		}
	}
	return "", false
}
