// Package mock provides hand-written mocks for podscribe interfaces.
package mock

import (
	"context"

	"github.com/fwojciec/podscribe"
)

var _ podscribe.Session = (*Session)(nil)

// Session is a mock implementation of podscribe.Session.
type Session struct {
	ModeFn     func() podscribe.Mode
	LoginFn    func(ctx context.Context, creds podscribe.Credentials) error
	NavigateFn func(ctx context.Context, episode *podscribe.Episode) error
	LocateFn   func(ctx context.Context) error
	AssembleFn func(ctx context.Context) (string, error)
	IsActiveFn func() bool
	CloseFn    func() error
}

func (s *Session) Mode() podscribe.Mode {
	return s.ModeFn()
}

func (s *Session) Login(ctx context.Context, creds podscribe.Credentials) error {
	return s.LoginFn(ctx, creds)
}

func (s *Session) Navigate(ctx context.Context, episode *podscribe.Episode) error {
	return s.NavigateFn(ctx, episode)
}

func (s *Session) Locate(ctx context.Context) error {
	return s.LocateFn(ctx)
}

func (s *Session) Assemble(ctx context.Context) (string, error) {
	return s.AssembleFn(ctx)
}

func (s *Session) IsActive() bool {
	return s.IsActiveFn()
}

func (s *Session) Close() error {
	return s.CloseFn()
}

var (
	_ podscribe.Session      = (*RawSession)(nil)
	_ podscribe.RawAssembler = (*RawSession)(nil)
)

// RawSession is a mock Session that also implements podscribe.RawAssembler.
type RawSession struct {
	Session
	AssembleHTMLFn func(ctx context.Context) (string, error)
}

func (s *RawSession) AssembleHTML(ctx context.Context) (string, error) {
	return s.AssembleHTMLFn(ctx)
}
