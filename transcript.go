package podscribe

import (
	"context"
	"strings"
	"time"
)

// Transcript is one extracted transcript ready to persist.
type Transcript struct {
	Episode     *Episode
	Text        string
	Markdown    bool
	ExtractedAt time.Time
}

// Validate returns EINVALID if the transcript is missing required fields.
func (t *Transcript) Validate() error {
	if t.Episode == nil {
		return Errorf(EINVALID, "transcript requires an episode")
	}
	if strings.TrimSpace(t.Text) == "" {
		return Errorf(EINVALID, "transcript requires text")
	}
	return nil
}

// TranscriptWriter persists extracted transcripts. It returns the location
// the transcript was written to.
type TranscriptWriter interface {
	WriteTranscript(ctx context.Context, t *Transcript) (string, error)
}

// FragmentSeparator joins transcript fragments in assembled output.
const FragmentSeparator = "\n\n"

// JoinFragments assembles transcript line fragments into one block of text.
// Each fragment is trimmed, empty fragments are dropped, and the survivors
// are joined in order with a single blank line between them. The result has
// no leading or trailing whitespace; if nothing survives, it is "".
func JoinFragments(fragments []string) string {
	kept := make([]string, 0, len(fragments))
	for _, f := range fragments {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, FragmentSeparator)
}
