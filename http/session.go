// Package http provides an HTTP-backed implementation of podscribe.Session
// for environments without a browser runtime. It keeps a cookie jar across
// calls, sends browser-like headers, and parses retained response bodies
// offline instead of reading a live DOM.
package http

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/podscribe"
	"github.com/fwojciec/podscribe/bloom"
	gq "github.com/fwojciec/podscribe/goquery"
	"github.com/fwojciec/podscribe/trafilatura"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

// DefaultTimeout is the default timeout for HTTP requests.
const DefaultTimeout = 15 * time.Second

// DefaultAccountsURL is the Spotify accounts service base URL.
const DefaultAccountsURL = "https://accounts.spotify.com"

// defaultUserAgent mimics a desktop Chrome; the accounts endpoint rejects
// obviously non-browser clients.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

// sessionCookiePrefix matches Spotify session cookies (sp_dc, sp_key, ...).
const sessionCookiePrefix = "sp_"

// maxBodySize caps retained response bodies.
const maxBodySize = 8 << 20

// Ensure Session implements podscribe interfaces at compile time.
var (
	_ podscribe.Session      = (*Session)(nil)
	_ podscribe.RawAssembler = (*Session)(nil)
)

// Session is an HTTP-backed podscribe.Session. Navigate retains the
// response body; Locate and Assemble operate on the retained body, not a
// live connection. A Session supports one in-flight operation at a time.
type Session struct {
	client      *http.Client
	jar         *cookiejar.Jar
	limiter     *rate.Limiter
	extractor   *trafilatura.Extractor
	visited     *bloom.Visited
	timeout     time.Duration
	transport   http.RoundTripper
	accountsURL string
	userAgent   string

	// retained navigation state
	body    string
	pageURL string

	closed bool
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithAccountsURL overrides the accounts service base URL.
func WithAccountsURL(u string) Option {
	return func(s *Session) {
		s.accountsURL = strings.TrimSuffix(u, "/")
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Session) {
		s.userAgent = ua
	}
}

// WithTransport overrides the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(s *Session) {
		s.transport = rt
	}
}

// WithRateLimit sets the request rate limit in requests per second.
// Defaults to 2 rps with a burst of 1.
func WithRateLimit(rps float64) Option {
	return func(s *Session) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewSession creates an HTTP-backed session with a persistent cookie jar.
// This is the one construction path allowed to fail with a raised error.
func NewSession(opts ...Option) (*Session, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, podscribe.Errorf(podscribe.EINTERNAL, "creating cookie jar: %v", err)
	}

	s := &Session{
		jar:         jar,
		limiter:     rate.NewLimiter(rate.Limit(2), 1),
		extractor:   trafilatura.NewExtractor(),
		visited:     bloom.NewVisited(1000, 0.01),
		timeout:     DefaultTimeout,
		accountsURL: DefaultAccountsURL,
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.client = &http.Client{
		Jar:       jar,
		Timeout:   s.timeout,
		Transport: s.transport,
	}

	return s, nil
}

// Mode reports ModeHTTP.
func (s *Session) Mode() podscribe.Mode { return podscribe.ModeHTTP }

// Login authenticates against the accounts service: a GET of the login
// page seeds session cookies, then the credentials are posted as a form to
// the login API. Success means the response's final URL landed on the
// platform domain or a session cookie is now present; anything else is
// EUNAUTHORIZED. Transport errors are EUNAVAILABLE.
func (s *Session) Login(ctx context.Context, creds podscribe.Credentials) error {
	if s.closed {
		return podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}

	// seed cookies; the page body is irrelevant
	if _, _, _, err := s.fetch(ctx, s.accountsURL+"/login"); err != nil {
		return err
	}

	form := url.Values{
		"username": {creds.Username},
		"password": {creds.Password},
		"remember": {"true"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.accountsURL+"/api/login", strings.NewReader(form.Encode()))
	if err != nil {
		return podscribe.Errorf(podscribe.EINTERNAL, "building login request: %v", err)
	}
	s.setHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Referer", s.accountsURL+"/login")

	if err := s.limiter.Wait(ctx); err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "rate limit wait: %v", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "login request failed: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if isPlayerHost(resp.Request.URL.Host) {
		return nil
	}
	if s.hasSessionCookie() {
		return nil
	}
	return podscribe.Errorf(podscribe.EUNAUTHORIZED, "login rejected, final URL %s", resp.Request.URL)
}

// Navigate issues a GET for the episode page and retains the body for the
// later parsing steps. Success is solely HTTP 200.
func (s *Session) Navigate(ctx context.Context, episode *podscribe.Episode) error {
	if s.closed {
		return podscribe.Errorf(podscribe.EINVALID, "session is closed")
	}

	body, finalURL, status, err := s.fetch(ctx, episode.URL())
	if err != nil {
		return err
	}
	switch {
	case status == http.StatusOK:
		s.body = body
		s.pageURL = finalURL
		return nil
	case status == http.StatusNotFound:
		return podscribe.Errorf(podscribe.ENOTFOUND, "episode page not found: HTTP 404")
	default:
		return podscribe.Errorf(podscribe.EUNAVAILABLE, "HTTP %d for %s", status, episode.URL())
	}
}

// Locate is a no-op in HTTP mode: there is no control to activate, and the
// transcript content, if any, is already in the retained body.
func (s *Session) Locate(ctx context.Context) error {
	if s.body == "" {
		return podscribe.Errorf(podscribe.EINVALID, "no retained page; navigate first")
	}
	return nil
}

// Assemble extracts the transcript from the retained body, falling through
// a fixed chain: selector cascade over the body, a discovered transcript
// hyperlink (fetched and re-searched), embedded JSON-LD structured data,
// main-text extraction of the linked page, and finally the show's RSS feed
// transcript reference. ENOTFOUND only when the whole chain fails.
func (s *Session) Assemble(ctx context.Context) (string, error) {
	if s.body == "" {
		return "", podscribe.Errorf(podscribe.EINVALID, "no retained page; navigate first")
	}

	if text, err := gq.Transcript(s.body); err == nil {
		return text, nil
	} else if podscribe.ErrorCode(err) != podscribe.ENOTFOUND {
		return "", err
	}

	// a transcript hyperlink may lead to a page that has the container
	var linkedBody string
	if link, ok := gq.FindTranscriptLink(s.body, s.pageURL); ok && !s.visited.Seen(link) {
		s.visited.Mark(link)
		if body, _, status, err := s.fetch(ctx, link); err == nil && status == http.StatusOK {
			linkedBody = body
			if text, err := gq.Transcript(linkedBody); err == nil {
				return text, nil
			}
		}
	}

	if text, err := gq.TranscriptFromJSONLD(s.body); err == nil {
		return text, nil
	}

	if linkedBody != "" {
		if text, err := s.extractor.ExtractText(linkedBody); err == nil {
			return text, nil
		}
	}

	if text, err := s.assembleFromFeed(ctx); err == nil {
		return text, nil
	}

	return "", podscribe.Errorf(podscribe.ENOTFOUND, "no transcript in retained page or its fallbacks")
}

// AssembleHTML returns the transcript container's markup from the retained
// body for callers that render it themselves.
func (s *Session) AssembleHTML(ctx context.Context) (string, error) {
	if s.body == "" {
		return "", podscribe.Errorf(podscribe.EINVALID, "no retained page; navigate first")
	}
	return gq.ContainerHTML(s.body)
}

// assembleFromFeed resolves the page's syndication feed, matches the
// episode item by title, and fetches its transcript reference.
func (s *Session) assembleFromFeed(ctx context.Context) (string, error) {
	feedURL, ok := gq.FindFeedLink(s.body, s.pageURL)
	if !ok || s.visited.Seen(feedURL) {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "no feed link")
	}
	s.visited.Mark(feedURL)

	feedXML, _, status, err := s.fetch(ctx, feedURL)
	if err != nil || status != http.StatusOK {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "feed fetch failed")
	}

	ref, ok := FindFeedTranscript(feedXML, gq.EpisodeTitle(s.body))
	if !ok || s.visited.Seen(ref.URL) {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "no transcript reference in feed")
	}
	s.visited.Mark(ref.URL)

	body, _, status, err := s.fetch(ctx, ref.URL)
	if err != nil || status != http.StatusOK {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "transcript reference fetch failed")
	}

	switch {
	case strings.Contains(ref.Type, "html"):
		if text, err := gq.Transcript(body); err == nil {
			return text, nil
		}
		return s.extractor.ExtractText(body)
	case strings.Contains(ref.Type, "vtt"):
		body = stripVTT(body)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", podscribe.Errorf(podscribe.ENOTFOUND, "transcript reference is empty")
	}
	return body, nil
}

// IsActive reports whether the session still has live resources.
func (s *Session) IsActive() bool {
	return !s.closed
}

// Close releases the connection pool and the retained body.
// Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.body = ""
	s.pageURL = ""
	s.client.CloseIdleConnections()
	return nil
}

// fetch GETs a URL with browser-like headers under the rate limit and
// returns the body, final URL, and status. Transport errors come back as
// EUNAVAILABLE.
func (s *Session) fetch(ctx context.Context, rawURL string) (body, finalURL string, status int, err error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return "", "", 0, podscribe.Errorf(podscribe.EUNAVAILABLE, "rate limit wait: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", "", 0, podscribe.Errorf(podscribe.EINVALID, "building request for %s: %v", rawURL, err)
	}
	s.setHeaders(req)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", "", 0, podscribe.Errorf(podscribe.EUNAVAILABLE, "GET %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", "", 0, podscribe.Errorf(podscribe.EUNAVAILABLE, "reading %s: %v", rawURL, err)
	}

	return string(b), resp.Request.URL.String(), resp.StatusCode, nil
}

func (s *Session) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
}

// hasSessionCookie reports whether the jar now holds a Spotify session
// cookie for either the accounts or the player domain.
func (s *Session) hasSessionCookie() bool {
	for _, raw := range []string{s.accountsURL, "https://" + podscribe.EpisodeHost} {
		u, err := url.Parse(raw)
		if err != nil {
			continue
		}
		for _, c := range s.jar.Cookies(u) {
			if strings.HasPrefix(c.Name, sessionCookiePrefix) {
				return true
			}
		}
	}
	return false
}

// isPlayerHost reports whether host is the web player. The accounts host
// does not count: a failed login stays there.
func isPlayerHost(host string) bool {
	return strings.EqualFold(host, podscribe.EpisodeHost)
}
