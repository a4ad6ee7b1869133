package main_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/podscribe"
	main "github.com/fwojciec/podscribe/cmd/podscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSession(t *testing.T) {
	t.Parallel()

	t.Run("forced HTTP mode opens an HTTP session", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s, err := main.OpenSession(main.OpenOptions{
			HTTPOnly: true,
			Logger:   slog.New(slog.NewTextHandler(&buf, nil)),
		})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, podscribe.ModeHTTP, s.Mode())
		assert.NotContains(t, buf.String(), "falling back")
	})

	t.Run("falls back to HTTP when no browser engine launches", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		s, err := main.OpenSession(main.OpenOptions{
			Headless:    true,
			EnginePaths: []string{"/nonexistent/browser"},
			Logger:      slog.New(slog.NewTextHandler(&buf, nil)),
		})
		require.NoError(t, err)
		defer s.Close()

		assert.Equal(t, podscribe.ModeHTTP, s.Mode())
		assert.Contains(t, buf.String(), "falling back to HTTP")
	})
}
