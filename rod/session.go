// Package rod provides a browser-backed implementation of podscribe.Session
// using Chrome DevTools Protocol automation. It drives the real Spotify web
// player: login form interaction, episode navigation, revealing the
// transcript panel, and reading its rendered text.
package rod

import (
	"context"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/podscribe"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultPageTimeout bounds waits for full-page renders (login form,
// episode page marker).
const DefaultPageTimeout = 30 * time.Second

// DefaultElementTimeout bounds per-candidate waits for individual elements
// (error banner, transcript controls, containers).
const DefaultElementTimeout = 5 * time.Second

// defaultIndicatorTimeout bounds each logged-in indicator wait; longer than
// the element timeout because the post-login redirect can be slow.
const defaultIndicatorTimeout = 10 * time.Second

// DefaultEnginePaths is the fixed engine preference order. The empty entry
// means rod's own browser resolution; the rest are system chromium-family
// binaries tried when the previous launch failed.
var DefaultEnginePaths = []string{
	"",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/usr/bin/google-chrome",
	"/usr/bin/brave-browser",
	"/usr/bin/microsoft-edge",
}

// Login page and player DOM selectors. Kept together because Spotify
// changes this markup without notice.
const (
	usernameField = `#login-username`
	passwordField = `#login-password`
	loginButton   = `#login-button`
	errorBanner   = `.alert.alert-warning`
	episodeMarker = `[data-testid="episode-page"]`
)

// loginSuccessSelectors indicate a logged-in player, in declared order.
var loginSuccessSelectors = []string{
	`a[href="/collection"]`,
	`[data-testid="spotify-logo"]`,
	`[data-testid="home-active-icon"]`,
}

// postLoginURLPatterns are URL fragments that mean login succeeded even
// when no indicator element was found.
var postLoginURLPatterns = []string{
	"open.spotify.com",
	"accounts.spotify.com/en/status",
}

// Ensure Session implements podscribe interfaces at compile time.
var (
	_ podscribe.Session      = (*Session)(nil)
	_ podscribe.RawAssembler = (*Session)(nil)
)

// Session is a browser-backed podscribe.Session. It owns a launched
// browser process and one page; Close must be called to release them or
// the browser process leaks. A Session supports one in-flight operation
// at a time.
type Session struct {
	browser *rod.Browser
	lnchr   *launcher.Launcher
	page    *rod.Page
	closed  atomic.Bool

	headless       bool
	enginePaths    []string
	accountsURL    string
	playerOrigin   string
	pageTimeout    time.Duration
	elementTimeout time.Duration
}

// Option configures a Session.
type Option func(*Session)

// WithHeadless toggles headless mode. Defaults to true.
func WithHeadless(headless bool) Option {
	return func(s *Session) {
		s.headless = headless
	}
}

// WithEnginePaths overrides the engine preference order.
func WithEnginePaths(paths []string) Option {
	return func(s *Session) {
		s.enginePaths = paths
	}
}

// WithAccountsURL overrides the accounts service base URL.
func WithAccountsURL(u string) Option {
	return func(s *Session) {
		s.accountsURL = strings.TrimSuffix(u, "/")
	}
}

// WithPlayerOrigin overrides the player origin (scheme and host) used for
// episode navigation, for tests against local fixtures.
func WithPlayerOrigin(origin string) Option {
	return func(s *Session) {
		s.playerOrigin = strings.TrimSuffix(origin, "/")
	}
}

// WithPageTimeout sets the bounded wait for full-page renders.
func WithPageTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.pageTimeout = d
	}
}

// WithElementTimeout sets the bounded per-candidate element wait.
func WithElementTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.elementTimeout = d
	}
}

// NewSession launches a browser and opens a blank page. Engines are tried
// in the configured preference order; individual launch failures are
// non-fatal and trigger the next engine. When every engine fails the
// single accumulated error surfaces — this is the construction failure
// path callers fall back to HTTP mode from.
func NewSession(opts ...Option) (*Session, error) {
	s := &Session{
		headless:       true,
		enginePaths:    DefaultEnginePaths,
		accountsURL:    "https://accounts.spotify.com",
		pageTimeout:    DefaultPageTimeout,
		elementTimeout: DefaultElementTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	var lastErr error
	for _, bin := range s.enginePaths {
		if bin != "" {
			if _, err := os.Stat(bin); err != nil {
				continue
			}
		}
		if err := s.launch(bin); err != nil {
			lastErr = err
			continue
		}
		return s, nil
	}

	if lastErr == nil {
		lastErr = podscribe.Errorf(podscribe.EUNAVAILABLE, "no browser engine available")
	}
	return nil, podscribe.Errorf(podscribe.EUNAVAILABLE, "launching browser: %v", lastErr)
}

// launch starts one engine with stability flags and opens the session page.
func (s *Session) launch(bin string) error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(s.headless)
	if bin != "" {
		lnchr = lnchr.Bin(bin)
	}

	u, err := lnchr.Launch()
	if err != nil {
		return err
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		_ = browser.Close()
		lnchr.Kill()
		return err
	}

	s.browser = browser
	s.lnchr = lnchr
	s.page = page
	return nil
}

// Mode reports ModeBrowser.
func (s *Session) Mode() podscribe.Mode { return podscribe.ModeBrowser }

// Login drives the accounts login form: wait for the form, fill both
// fields, submit, then check for failure before checking for success. A
// rendered error banner means rejected credentials; otherwise the
// logged-in indicators are polled in order, and the current URL is the
// final arbiter when no indicator appears.
func (s *Session) Login(ctx context.Context, creds podscribe.Credentials) error {
	if s.closed.Load() {
		return podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}
	page := s.page.Context(ctx)

	if err := page.Navigate(s.accountsURL + "/login"); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "loading login page: %v", err)
	}

	username, err := page.Timeout(s.pageTimeout).Element(usernameField)
	if err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "login form did not render: %v", err)
	}
	if err := username.Input(creds.Username); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "filling username: %v", err)
	}

	password, err := page.Timeout(s.elementTimeout).Element(passwordField)
	if err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "password field missing: %v", err)
	}
	if err := password.Input(creds.Password); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "filling password: %v", err)
	}

	submit, err := page.Timeout(s.elementTimeout).Element(loginButton)
	if err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "login button missing: %v", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "submitting login form: %v", err)
	}

	// failure first: a rendered banner settles the outcome immediately
	if banner, err := page.Timeout(s.elementTimeout).Element(errorBanner); err == nil {
		text, _ := banner.Text()
		return podscribe.Errorf(podscribe.EUNAUTHORIZED, "login error: %s", strings.TrimSpace(text))
	}

	_, _, ok := podscribe.FirstMatch(loginSuccessSelectors, func(sel string) (struct{}, bool) {
		el, err := page.Timeout(defaultIndicatorTimeout).Element(sel)
		if err != nil {
			return struct{}{}, false
		}
		visible, err := el.Visible()
		return struct{}{}, err == nil && visible
	})
	if ok {
		return nil
	}

	info, err := page.Info()
	if err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "reading page location: %v", err)
	}
	for _, pattern := range postLoginURLPatterns {
		if strings.Contains(info.URL, pattern) {
			return nil
		}
	}
	return podscribe.Errorf(podscribe.EUNAUTHORIZED, "no logged-in indicator found, URL %s", info.URL)
}

// Navigate loads the episode page and waits for the episode marker element
// that confirms the page type.
func (s *Session) Navigate(ctx context.Context, episode *podscribe.Episode) error {
	if s.closed.Load() {
		return podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}
	page := s.page.Context(ctx)

	if err := page.Navigate(s.targetURL(episode)); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "loading episode page: %v", err)
	}

	if _, err := page.Timeout(s.pageTimeout).Element(episodeMarker); err != nil {
		return podscribe.Errorf(podscribe.ENOTFOUND, "episode page marker did not render: %v", err)
	}
	return nil
}

// Locate finds and clicks the control that reveals the transcript panel,
// trying the candidates strictly in order with a bounded per-candidate
// wait. After a click it waits, bounded, for a transcript container to
// appear so dynamic content can populate before assembly. No candidate
// matching is the normal "episode has no transcript" outcome.
func (s *Session) Locate(ctx context.Context) error {
	if s.closed.Load() {
		return podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}
	page := s.page.Context(ctx)

	clicked, _, ok := podscribe.FirstMatch(podscribe.TranscriptControls, func(c podscribe.Control) (bool, bool) {
		var el *rod.Element
		var err error
		if c.TextMatch != "" {
			el, err = page.Timeout(s.elementTimeout).ElementR(c.Selector, c.TextMatch)
		} else {
			el, err = page.Timeout(s.elementTimeout).Element(c.Selector)
		}
		if err != nil {
			return false, false
		}
		if visible, err := el.Visible(); err != nil || !visible {
			return false, false
		}
		return el.Click(proto.InputMouseButtonLeft, 1) == nil, true
	})
	if !ok {
		return podscribe.Errorf(podscribe.ENOTFOUND, "no transcript control found")
	}
	if !clicked {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "transcript control would not activate")
	}

	s.settle(page)
	return nil
}

// settle waits, bounded, for any transcript container to appear after the
// control was activated. A timeout is tolerated; Assemble re-checks with
// its own waits.
func (s *Session) settle(page *rod.Page) {
	race := page.Timeout(s.elementTimeout).Race()
	for _, sel := range podscribe.ContainerSelectors {
		race = race.Element(sel)
	}
	_, _ = race.Do()
}

// Assemble reads the rendered transcript: the first matching container,
// then the first item selector that yields any items, each item's visible
// text trimmed and blank-line joined, with the whole container's text as
// the last resort.
func (s *Session) Assemble(ctx context.Context) (string, error) {
	container, err := s.container(ctx)
	if err != nil {
		return "", err
	}

	items, _, ok := podscribe.FirstMatch(podscribe.ItemSelectors, func(sel string) (rod.Elements, bool) {
		els, err := container.Elements(sel)
		return els, err == nil && len(els) > 0
	})

	var text string
	if ok {
		fragments := make([]string, 0, len(items))
		for _, item := range items {
			t, err := item.Text()
			if err != nil {
				continue
			}
			fragments = append(fragments, t)
		}
		text = podscribe.JoinFragments(fragments)
	}

	if text == "" {
		whole, err := container.Text()
		if err != nil {
			return "", podscribe.Errorf(podscribe.EUNAVAILABLE, "reading container text: %v", err)
		}
		text = strings.TrimSpace(whole)
	}

	if text == "" {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "transcript container is empty")
	}
	return text, nil
}

// AssembleHTML returns the transcript container's markup.
func (s *Session) AssembleHTML(ctx context.Context) (string, error) {
	container, err := s.container(ctx)
	if err != nil {
		return "", err
	}
	markup, err := container.HTML()
	if err != nil {
		return "", podscribe.Errorf(podscribe.EUNAVAILABLE, "reading container markup: %v", err)
	}
	return markup, nil
}

func (s *Session) container(ctx context.Context) (*rod.Element, error) {
	if s.closed.Load() {
		return nil, podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}
	page := s.page.Context(ctx)

	container, _, ok := podscribe.FirstMatch(podscribe.ContainerSelectors, func(sel string) (*rod.Element, bool) {
		el, err := page.Timeout(s.elementTimeout).Element(sel)
		return el, err == nil
	})
	if !ok {
		return nil, podscribe.Errorf(podscribe.ENOTFOUND, "no transcript container found")
	}
	return container, nil
}

// IsActive reports whether the browser process is still owned by this
// session.
func (s *Session) IsActive() bool {
	return !s.closed.Load() && s.browser != nil
}

// Close shuts down the page, browser, and launcher process. Close is
// idempotent and safe on a partially initialized session.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	var err error
	if s.browser != nil {
		err = s.browser.Close()
		s.browser = nil
	}
	if s.lnchr != nil {
		s.lnchr.Kill()
		s.lnchr = nil
	}
	s.page = nil
	return err
}

// targetURL rewrites the episode URL onto the configured player origin,
// when one is set.
func (s *Session) targetURL(episode *podscribe.Episode) string {
	if s.playerOrigin == "" {
		return episode.URL()
	}
	raw := episode.URL()
	if i := strings.Index(raw, "://"); i >= 0 {
		if j := strings.Index(raw[i+3:], "/"); j >= 0 {
			return s.playerOrigin + raw[i+3+j:]
		}
	}
	return s.playerOrigin
}
