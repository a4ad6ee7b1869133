// Package fs provides file-based output for extracted transcripts.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/podscribe"
)

// Fingerprint returns a stable hex fingerprint of transcript content, used
// to detect whether a transcript changed between extractions.
func Fingerprint(text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(text))
}

// FileName builds the output file name for a transcript:
// <episode ID>.md for markdown, <episode ID>.txt otherwise.
func FileName(t *podscribe.Transcript) string {
	ext := ".txt"
	if t.Markdown {
		ext = ".md"
	}
	return t.Episode.ID() + ext
}

// FormatTranscript formats a transcript with YAML frontmatter.
func FormatTranscript(t *podscribe.Transcript) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(t.Episode.URL())
	b.WriteString("\nepisode: ")
	b.WriteString(t.Episode.ID())
	b.WriteString("\nextracted: ")
	b.WriteString(t.ExtractedAt.Format("2006-01-02"))
	b.WriteString("\nfingerprint: ")
	b.WriteString(Fingerprint(t.Text))
	b.WriteString("\n---\n\n")
	b.WriteString(t.Text)
	b.WriteString("\n")
	return b.String()
}

// Ensure Writer implements podscribe.TranscriptWriter at compile time.
var _ podscribe.TranscriptWriter = (*Writer)(nil)

// Writer writes transcripts as files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteTranscript writes a transcript to disk and returns its path.
func (w *Writer) WriteTranscript(ctx context.Context, t *podscribe.Transcript) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, FileName(t))
	content := FormatTranscript(t)
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		return "", err
	}
	return fullPath, nil
}
