package podscribe

import (
	"net/url"
	"strings"
)

// EpisodeHost is the canonical host serving Spotify episode pages.
const EpisodeHost = "open.spotify.com"

// Episode is a validated reference to one Spotify episode page.
// Construct it with ParseEpisodeURL; it is immutable afterwards.
type Episode struct {
	url string
	id  string
}

// URL returns the episode page URL.
func (e *Episode) URL() string { return e.url }

// ID returns the episode identifier from the URL path.
func (e *Episode) ID() string { return e.id }

// ParseEpisodeURL validates that raw points at a Spotify episode page and
// returns an Episode reference. The host must be open.spotify.com and the
// path must contain an episode segment followed by an identifier; locale
// prefixes such as /intl-fr are accepted. Anything else returns EINVALID.
func ParseEpisodeURL(raw string) (*Episode, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid episode URL: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, Errorf(EINVALID, "episode URL must be http(s), got %q", raw)
	}
	if u.Host != EpisodeHost {
		return nil, Errorf(EINVALID, "episode URL must be on %s, got host %q", EpisodeHost, u.Host)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segments {
		if seg != "episode" {
			continue
		}
		if i+1 < len(segments) && segments[i+1] != "" {
			return &Episode{url: raw, id: segments[i+1]}, nil
		}
		break
	}

	return nil, Errorf(EINVALID, "URL does not identify an episode: %q", raw)
}
