package podscribe

import "context"

// Mode identifies the transport a Session is bound to.
type Mode string

const (
	// ModeBrowser drives a real browser over the DevTools protocol.
	ModeBrowser Mode = "browser"

	// ModeHTTP fetches raw HTML over HTTP and parses it offline.
	ModeHTTP Mode = "http"
)

// Credentials is a Spotify username/password pair. It is passed by value
// into Login and never retained by any Session implementation.
type Credentials struct {
	Username string
	Password string
}

// Session is a live transport handle bound to exactly one Mode.
// A Session owns its underlying resources (browser process or HTTP client
// with cookies) exclusively and supports one in-flight operation at a time;
// callers needing concurrency create one Session per operation.
//
// All primitives report expected absences as ENOTFOUND errors and transport
// failures as EUNAVAILABLE errors; they never panic and never leak raw
// transport errors.
type Session interface {
	// Mode reports which transport backs this session.
	Mode() Mode

	// Login authenticates against the Spotify accounts service using the
	// session's transport. Rejected credentials return EUNAUTHORIZED.
	Login(ctx context.Context, creds Credentials) error

	// Navigate loads the episode page and confirms it is one.
	// A page that loads but is not an episode page returns ENOTFOUND.
	Navigate(ctx context.Context, episode *Episode) error

	// Locate finds and activates the control that reveals the transcript.
	// ENOTFOUND means no such control exists, which is a normal outcome
	// ("this episode has no transcript"), not a failure. Sessions whose
	// transport has no controls to activate report ready immediately.
	Locate(ctx context.Context) error

	// Assemble collects the transcript text in document order.
	// The returned text is trimmed with fragments separated by one blank
	// line; an empty transcript is reported as ENOTFOUND, never as "".
	Assemble(ctx context.Context) (string, error)

	// IsActive reports whether the underlying transport resources are live.
	IsActive() bool

	// Close releases all underlying resources. Close is idempotent and
	// safe to call on a partially initialized session.
	Close() error
}

// RawAssembler is an optional interface for sessions that can return the
// transcript container's markup instead of its text, for callers that want
// to render it themselves (e.g. as markdown).
type RawAssembler interface {
	AssembleHTML(ctx context.Context) (string, error)
}
