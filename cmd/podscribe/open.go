package main

import (
	"log/slog"

	"github.com/fwojciec/podscribe"
	podhttp "github.com/fwojciec/podscribe/http"
	"github.com/fwojciec/podscribe/rod"
	podslog "github.com/fwojciec/podscribe/slog"
)

// OpenOptions configures session construction for one extraction.
type OpenOptions struct {
	// HTTPOnly skips the browser entirely.
	HTTPOnly bool

	// Headless controls browser visibility; ignored in HTTP mode.
	Headless bool

	// EnginePaths overrides the browser engine preference order. Empty
	// means the default order.
	EnginePaths []string

	Logger *slog.Logger
}

// OpenSession opens a session for one extraction. Browser mode is preferred;
// when no engine can be launched the session falls back to plain HTTP, which
// is logged. Forced HTTP mode never touches a browser. The returned session
// is wrapped with logging.
func OpenSession(opts OpenOptions) (podscribe.Session, error) {
	if !opts.HTTPOnly {
		var rodOpts []rod.Option
		rodOpts = append(rodOpts, rod.WithHeadless(opts.Headless))
		if len(opts.EnginePaths) > 0 {
			rodOpts = append(rodOpts, rod.WithEnginePaths(opts.EnginePaths))
		}

		s, err := rod.NewSession(rodOpts...)
		if err == nil {
			return podslog.NewLoggingSession(s, opts.Logger), nil
		}
		opts.Logger.Warn("browser unavailable, falling back to HTTP",
			"err", err,
		)
	}

	s, err := podhttp.NewSession()
	if err != nil {
		return nil, err
	}
	return podslog.NewLoggingSession(s, opts.Logger), nil
}
