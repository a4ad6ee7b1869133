package http_test

import (
	"testing"

	podhttp "github.com/fwojciec/podscribe/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedWithTranscripts = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:podcast="https://podcastindex.org/namespace/1.0">
<channel>
<title>The Show</title>
<item>
<title>Episode 11: Interfaces</title>
<podcast:transcript url="https://cdn.example.com/ep11.srt" type="application/srt"/>
</item>
<item>
<title>Episode 12: Generics</title>
<podcast:transcript url="https://cdn.example.com/ep12.html" type="text/html"/>
<podcast:transcript url="https://cdn.example.com/ep12.vtt" type="text/vtt"/>
<podcast:transcript url="https://cdn.example.com/ep12.txt" type="text/plain"/>
</item>
</channel>
</rss>`

func TestFindFeedTranscript(t *testing.T) {
	t.Parallel()

	t.Run("matches the item by episode title", func(t *testing.T) {
		t.Parallel()

		ref, ok := podhttp.FindFeedTranscript(feedWithTranscripts, "Episode 11: Interfaces")

		require.True(t, ok)
		assert.Equal(t, "https://cdn.example.com/ep11.srt", ref.URL)
	})

	t.Run("matches titles by containment in either direction", func(t *testing.T) {
		t.Parallel()

		ref, ok := podhttp.FindFeedTranscript(feedWithTranscripts, "Episode 12")

		require.True(t, ok)
		assert.Equal(t, "https://cdn.example.com/ep12.txt", ref.URL)
	})

	t.Run("prefers plain text over vtt over html", func(t *testing.T) {
		t.Parallel()

		ref, ok := podhttp.FindFeedTranscript(feedWithTranscripts, "Episode 12: Generics")

		require.True(t, ok)
		assert.Equal(t, "text/plain", ref.Type)
	})

	t.Run("uses the only item when the feed has exactly one", func(t *testing.T) {
		t.Parallel()

		feed := `<rss xmlns:podcast="https://podcastindex.org/namespace/1.0"><channel><item>
<podcast:transcript url="https://cdn.example.com/only.txt" type="text/plain"/>
</item></channel></rss>`

		ref, ok := podhttp.FindFeedTranscript(feed, "")

		require.True(t, ok)
		assert.Equal(t, "https://cdn.example.com/only.txt", ref.URL)
	})

	t.Run("reports absence when no item matches the title", func(t *testing.T) {
		t.Parallel()

		_, ok := podhttp.FindFeedTranscript(feedWithTranscripts, "A Different Show Entirely")

		assert.False(t, ok)
	})

	t.Run("reports absence when the matched item has no transcript", func(t *testing.T) {
		t.Parallel()

		feed := `<rss><channel><item><title>Episode 1</title></item><item><title>Episode 2</title></item></channel></rss>`

		_, ok := podhttp.FindFeedTranscript(feed, "Episode 1")

		assert.False(t, ok)
	})

	t.Run("tolerates malformed XML", func(t *testing.T) {
		t.Parallel()

		_, ok := podhttp.FindFeedTranscript("<rss><channel>", "Episode")

		assert.False(t, ok)
	})
}
