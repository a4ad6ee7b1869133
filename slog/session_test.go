package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/podscribe"
	"github.com/fwojciec/podscribe/mock"
	podslog "github.com/fwojciec/podscribe/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSession() *mock.Session {
	return &mock.Session{
		ModeFn: func() podscribe.Mode { return podscribe.ModeHTTP },
	}
}

func TestLoggingSession_Login(t *testing.T) {
	t.Parallel()

	t.Run("logs username and duration but never the password", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := newMockSession()
		inner.LoginFn = func(ctx context.Context, creds podscribe.Credentials) error {
			return nil
		}

		s := podslog.NewLoggingSession(inner, logger)
		err := s.Login(context.Background(), podscribe.Credentials{
			Username: "user@example.com",
			Password: "sw0rdf1sh",
		})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "login")
		assert.Contains(t, output, "username=user@example.com")
		assert.Contains(t, output, "duration=")
		assert.NotContains(t, output, "sw0rdf1sh")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := newMockSession()
		inner.LoginFn = func(ctx context.Context, creds podscribe.Credentials) error {
			return errors.New("bad credentials")
		}

		s := podslog.NewLoggingSession(inner, logger)
		err := s.Login(context.Background(), podscribe.Credentials{})

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=\"bad credentials\"")
	})
}

func TestLoggingSession_Navigate(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := newMockSession()
	inner.NavigateFn = func(ctx context.Context, episode *podscribe.Episode) error {
		return nil
	}

	episode, err := podscribe.ParseEpisodeURL("https://open.spotify.com/episode/5Xt5DXGzch68nYYamXrNxZ")
	require.NoError(t, err)

	s := podslog.NewLoggingSession(inner, logger)
	require.NoError(t, s.Navigate(context.Background(), episode))

	output := buf.String()
	assert.Contains(t, output, "navigate")
	assert.Contains(t, output, "episode=5Xt5DXGzch68nYYamXrNxZ")
}

func TestLoggingSession_Assemble(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := newMockSession()
	inner.AssembleFn = func(ctx context.Context) (string, error) {
		return "Hello\n\nWorld", nil
	}

	s := podslog.NewLoggingSession(inner, logger)
	text, err := s.Assemble(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Hello\n\nWorld", text)
	output := buf.String()
	assert.Contains(t, output, "assemble")
	assert.Contains(t, output, "chars=12")
}

func TestLoggingSession_AssembleHTML(t *testing.T) {
	t.Parallel()

	t.Run("delegates when wrapped session supports raw markup", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RawSession{
			Session: *newMockSession(),
			AssembleHTMLFn: func(ctx context.Context) (string, error) {
				return "<div><p>Hello</p></div>", nil
			},
		}

		s := podslog.NewLoggingSession(inner, logger)
		markup, err := s.AssembleHTML(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "<div><p>Hello</p></div>", markup)
	})

	t.Run("returns invalid error when wrapped session does not", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		s := podslog.NewLoggingSession(newMockSession(), logger)
		_, err := s.AssembleHTML(context.Background())

		require.Error(t, err)
		assert.Equal(t, podscribe.EINVALID, podscribe.ErrorCode(err))
	})
}

func TestLoggingSession_AttachesSessionID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := newMockSession()
	inner.LocateFn = func(ctx context.Context) error { return nil }

	s := podslog.NewLoggingSession(inner, logger)
	require.NoError(t, s.Locate(context.Background()))

	output := buf.String()
	assert.Contains(t, output, "session=")
	assert.Contains(t, output, "mode=http")
}

func TestLoggingSession_Close(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	closeCalled := false
	inner := newMockSession()
	inner.CloseFn = func() error {
		closeCalled = true
		return nil
	}

	s := podslog.NewLoggingSession(inner, logger)
	require.NoError(t, s.Close())
	assert.True(t, closeCalled)
}
