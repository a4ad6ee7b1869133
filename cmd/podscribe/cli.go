package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/podscribe"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	// OpenSession opens a fresh session for one extraction.
	OpenSession func(ctx context.Context) (podscribe.Session, error)

	// Converter renders transcript markup as markdown. Set when --markdown
	// was requested.
	Converter podscribe.Converter

	// Writer persists transcripts to files. Set when --output was given;
	// nil means transcripts go to stdout.
	Writer podscribe.TranscriptWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Extract ExtractCmd `cmd:"" help:"Extract transcripts for Spotify episodes"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" help:"Episode URLs (https://open.spotify.com/episode/...)"`
	Username    string   `env:"SPOTIFY_USERNAME" help:"Spotify username"`
	Password    string   `env:"SPOTIFY_PASSWORD" help:"Spotify password"`
	HTTP        bool     `help:"Use plain HTTP instead of a browser"`
	Headed      bool     `help:"Run the browser with a visible window"`
	Markdown    bool     `short:"m" help:"Emit markdown instead of plain text"`
	Output      string   `short:"o" type:"path" help:"Write transcripts to this directory instead of stdout"`
	Concurrency int      `short:"c" default:"2" help:"Concurrent extraction limit"`
}
