package podscribe

import (
	"context"
	"strings"
)

// ExtractTranscript is the composite entry point: it sequences
// Navigate → Locate → Assemble on an authenticated session and returns the
// transcript text. The first failing step short-circuits the rest; no
// partial results are returned. An ENOTFOUND error from any step means the
// episode has no discoverable transcript, which callers should treat as a
// normal outcome rather than a failure.
func ExtractTranscript(ctx context.Context, s Session, episode *Episode) (string, error) {
	if err := s.Navigate(ctx, episode); err != nil {
		return "", err
	}

	if err := s.Locate(ctx); err != nil {
		return "", err
	}

	text, err := s.Assemble(ctx)
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", Errorf(ENOTFOUND, "no transcription found for episode %s", episode.ID())
	}
	return text, nil
}
