package podscribe_test

import (
	"testing"

	"github.com/fwojciec/podscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstMatch(t *testing.T) {
	t.Parallel()

	t.Run("tries candidates in declared order and stops at first success", func(t *testing.T) {
		t.Parallel()

		candidates := []string{"a", "b", "c", "d"}
		var tried []string

		v, c, ok := podscribe.FirstMatch(candidates, func(s string) (int, bool) {
			tried = append(tried, s)
			return 42, s == "c"
		})

		require.True(t, ok)
		assert.Equal(t, 42, v)
		assert.Equal(t, "c", c)
		// the fourth candidate must never be evaluated
		assert.Equal(t, []string{"a", "b", "c"}, tried)
	})

	t.Run("reports no match when every candidate fails", func(t *testing.T) {
		t.Parallel()

		_, _, ok := podscribe.FirstMatch([]string{"a", "b"}, func(string) (struct{}, bool) {
			return struct{}{}, false
		})

		assert.False(t, ok)
	})

	t.Run("handles empty candidate lists", func(t *testing.T) {
		t.Parallel()

		_, _, ok := podscribe.FirstMatch(nil, func(string) (int, bool) {
			t.Fatal("try must not be called")
			return 0, false
		})

		assert.False(t, ok)
	})
}

func TestSelectorLists_DeclaredOrder(t *testing.T) {
	t.Parallel()

	// The most specific candidate must come first in every list; the
	// generic block fallback must come last so it cannot shadow semantic
	// markers.
	assert.Equal(t, `[data-testid="transcript-container"]`, podscribe.ContainerSelectors[0])
	assert.Equal(t, `[data-testid="transcript-item"]`, podscribe.ItemSelectors[0])
	assert.Equal(t, `div`, podscribe.ItemSelectors[len(podscribe.ItemSelectors)-1])
	assert.Equal(t, `button[aria-label="Show transcript"]`, podscribe.TranscriptControls[0].Selector)
}
