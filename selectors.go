package podscribe

// Selector candidate lists for the Spotify web player DOM.
//
// The player's markup changes without notice, so every target is described
// by an ordered list of candidates tried strictly in declared order with
// the first match winning. The lists are isolated here so they can be
// updated in one place when extraction breaks.

// ContainerSelectors identify the element expected to hold the whole
// transcript, most specific first.
var ContainerSelectors = []string{
	`[data-testid="transcript-container"]`,
	`.transcript-container`,
	`[aria-label="Transcript"]`,
	`.episode-transcript`,
}

// ItemSelectors identify one transcript fragment within the container,
// from semantic markers down to generic block nodes. Later entries only
// run when every earlier entry matched nothing.
var ItemSelectors = []string{
	`[data-testid="transcript-item"]`,
	`div > p`,
	`div`,
}

// Control describes one candidate for the transcript-revealing control.
// When TextMatch is non-empty the candidate matches elements whose visible
// text matches the pattern, for controls with no stable attributes.
type Control struct {
	Selector  string
	TextMatch string
}

// TranscriptControls are the candidates for the control that reveals the
// transcript panel, in preference order.
var TranscriptControls = []Control{
	{Selector: `button[aria-label="Show transcript"]`},
	{Selector: `button`, TextMatch: `Show transcript`},
	{Selector: `[data-testid="transcript-button"]`},
	{Selector: `button`, TextMatch: `Transcript`},
}

// FirstMatch evaluates candidates strictly in declared order, calling try
// for each until one reports a match, and returns that candidate's result
// together with the candidate itself. Remaining candidates are skipped.
// The third return is false when no candidate matched.
func FirstMatch[C, T any](candidates []C, try func(C) (T, bool)) (T, C, bool) {
	for _, c := range candidates {
		if v, ok := try(c); ok {
			return v, c, true
		}
	}
	var v T
	var c C
	return v, c, false
}
