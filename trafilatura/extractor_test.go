package trafilatura_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/podscribe"
	"github.com/fwojciec/podscribe/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and drops boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Episode transcript</title></head>
<body>
<nav><a href="/">Home</a> <a href="/about">About</a></nav>
<article>
<h1>Episode 12 Transcript</h1>
<p>Welcome back to the show, everyone. Today we are going to spend some time
talking about how transcripts get published on the open web and why that
matters for accessibility.</p>
<p>Our guest has spent a decade working on captioning systems and has strong
opinions about the tooling, the formats, and the economics behind them.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

		e := trafilatura.NewExtractor()
		text, err := e.ExtractText(html)

		require.NoError(t, err)
		assert.Contains(t, text, "Welcome back to the show")
		assert.Contains(t, text, "captioning systems")
		assert.NotContains(t, text, "Copyright 2026")
	})

	t.Run("joins block fragments with blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<p>It was a long conversation that covered a number of interesting subjects
over the course of roughly an hour of recorded audio material.</p>
<p>We have cleaned the raw output up slightly for readability without
changing the meaning of anything either speaker actually said.</p>
</article></body></html>`

		e := trafilatura.NewExtractor()
		text, err := e.ExtractText(html)

		require.NoError(t, err)
		parts := strings.Split(text, "\n\n")
		assert.GreaterOrEqual(t, len(parts), 2)
		assert.Empty(t, strings.TrimSpace(text)[0:0])
		assert.Equal(t, text, strings.TrimSpace(text))
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.ExtractText("   ")

		require.Error(t, err)
		assert.Equal(t, podscribe.EINVALID, podscribe.ErrorCode(err))
	})

	t.Run("reports pages without main content as not found", func(t *testing.T) {
		t.Parallel()

		e := trafilatura.NewExtractor()
		_, err := e.ExtractText(`<html><body></body></html>`)

		require.Error(t, err)
		assert.Equal(t, podscribe.ENOTFOUND, podscribe.ErrorCode(err))
	})
}
