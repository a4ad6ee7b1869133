// Package slog provides logging decorators built on log/slog.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/podscribe"
	"github.com/google/uuid"
)

// Ensure LoggingSession implements podscribe.Session and
// podscribe.RawAssembler.
var (
	_ podscribe.Session      = (*LoggingSession)(nil)
	_ podscribe.RawAssembler = (*LoggingSession)(nil)
)

// LoggingSession wraps a Session with structured logging. Every log line
// carries a generated session ID so concurrent extractions can be
// correlated. Credentials are never logged.
type LoggingSession struct {
	next   podscribe.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next podscribe.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{
		next: next,
		logger: logger.With(
			"session", uuid.NewString(),
			"mode", string(next.Mode()),
		),
	}
}

// Mode delegates to the wrapped session.
func (s *LoggingSession) Mode() podscribe.Mode {
	return s.next.Mode()
}

// Login logs the outcome and duration, never the credentials.
func (s *LoggingSession) Login(ctx context.Context, creds podscribe.Credentials) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("login",
			"username", creds.Username,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Login(ctx, creds)
}

// Navigate logs the episode being loaded and delegates.
func (s *LoggingSession) Navigate(ctx context.Context, episode *podscribe.Episode) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"episode", episode.ID(),
			"url", episode.URL(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, episode)
}

// Locate logs whether a transcript control was found and delegates.
func (s *LoggingSession) Locate(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("locate",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Locate(ctx)
}

// Assemble logs the assembled transcript size and delegates.
func (s *LoggingSession) Assemble(ctx context.Context) (text string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("assemble",
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Assemble(ctx)
}

// AssembleHTML delegates when the wrapped session supports raw markup
// assembly.
func (s *LoggingSession) AssembleHTML(ctx context.Context) (markup string, err error) {
	raw, ok := s.next.(podscribe.RawAssembler)
	if !ok {
		return "", podscribe.Errorf(podscribe.EINVALID, "session does not support raw markup assembly")
	}
	defer func(begin time.Time) {
		s.logger.Info("assemble markup",
			"chars", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return raw.AssembleHTML(ctx)
}

// IsActive delegates to the wrapped session.
func (s *LoggingSession) IsActive() bool {
	return s.next.IsActive()
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
