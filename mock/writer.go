package mock

import (
	"context"

	"github.com/fwojciec/podscribe"
)

var _ podscribe.TranscriptWriter = (*TranscriptWriter)(nil)

// TranscriptWriter is a mock implementation of podscribe.TranscriptWriter.
type TranscriptWriter struct {
	WriteTranscriptFn func(ctx context.Context, t *podscribe.Transcript) (string, error)
}

func (w *TranscriptWriter) WriteTranscript(ctx context.Context, t *podscribe.Transcript) (string, error) {
	return w.WriteTranscriptFn(ctx, t)
}
