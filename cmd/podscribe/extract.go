package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/podscribe"
	"golang.org/x/sync/errgroup"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	// Validate every URL before any network work so one bad argument
	// fails the whole invocation immediately.
	episodes := make([]*podscribe.Episode, 0, len(c.URLs))
	for _, raw := range c.URLs {
		episode, err := podscribe.ParseEpisodeURL(raw)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", podscribe.ErrorMessage(err))
			return err
		}
		episodes = append(episodes, episode)
	}

	if c.Username == "" || c.Password == "" {
		err := podscribe.Errorf(podscribe.EINVALID, "credentials required: set --username/--password or SPOTIFY_USERNAME/SPOTIFY_PASSWORD")
		fmt.Fprintf(deps.Stderr, "error: %s\n", podscribe.ErrorMessage(err))
		return err
	}
	creds := podscribe.Credentials{Username: c.Username, Password: c.Password}

	// One session per episode; results are collected and printed in
	// input order once all extractions finish.
	results := make([]string, len(episodes))
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)
	for i, episode := range episodes {
		g.Go(func() error {
			text, markdown, err := c.extractOne(ctx, deps, creds, episode)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", episode.URL(), podscribe.ErrorMessage(err))
				return err
			}

			if deps.Writer != nil {
				path, err := deps.Writer.WriteTranscript(ctx, &podscribe.Transcript{
					Episode:     episode,
					Text:        text,
					Markdown:    markdown,
					ExtractedAt: time.Now(),
				})
				if err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s: %s\n", episode.URL(), podscribe.ErrorMessage(err))
					return err
				}
				results[i] = path
				return nil
			}

			results[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, result := range results {
		if deps.Writer == nil && len(episodes) > 1 {
			fmt.Fprintf(deps.Stdout, "# %s\n\n", episodes[i].URL())
		}
		fmt.Fprintln(deps.Stdout, result)
		if deps.Writer == nil && len(episodes) > 1 && i < len(episodes)-1 {
			fmt.Fprintln(deps.Stdout)
		}
	}
	return nil
}

// extractOne opens a session, logs in, and extracts one transcript. The
// returned bool reports whether the text is markdown. An authorization
// failure after a successful login is retried once with a fresh login, in
// case the session expired mid-extraction.
func (c *ExtractCmd) extractOne(ctx context.Context, deps *Dependencies, creds podscribe.Credentials, episode *podscribe.Episode) (string, bool, error) {
	s, err := deps.OpenSession(ctx)
	if err != nil {
		return "", false, err
	}
	defer s.Close()

	if err := s.Login(ctx, creds); err != nil {
		return "", false, err
	}

	// the session can die between login and extraction (browser process
	// gone); replace it rather than failing the episode
	if !s.IsActive() {
		_ = s.Close()
		s, err = deps.OpenSession(ctx)
		if err != nil {
			return "", false, err
		}
		defer s.Close()
		if err := s.Login(ctx, creds); err != nil {
			return "", false, err
		}
	}

	text, err := podscribe.ExtractTranscript(ctx, s, episode)
	if podscribe.ErrorCode(err) == podscribe.EUNAUTHORIZED && s.IsActive() {
		if err := s.Login(ctx, creds); err != nil {
			return "", false, err
		}
		text, err = podscribe.ExtractTranscript(ctx, s, episode)
	}
	if err != nil {
		return "", false, err
	}

	if !c.Markdown || deps.Converter == nil {
		return text, false, nil
	}

	raw, ok := s.(podscribe.RawAssembler)
	if !ok {
		return text, false, nil
	}
	markup, err := raw.AssembleHTML(ctx)
	if err != nil {
		// markup is a nice-to-have; fall back to the plain text we have
		return text, false, nil
	}
	md, err := deps.Converter.Convert(markup)
	if err != nil {
		return text, false, nil
	}
	return md, true, nil
}
