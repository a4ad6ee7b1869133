package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/podscribe"
	"github.com/fwojciec/podscribe/fs"
	"github.com/fwojciec/podscribe/htmltomarkdown"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("podscribe"),
		kong.Description("Extract episode transcripts from the Spotify web player."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'podscribe --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Wire extraction dependencies from the parsed flags
	opts := OpenOptions{
		HTTPOnly: cli.Extract.HTTP,
		Headless: !cli.Extract.Headed,
		Logger:   logger,
	}
	deps.OpenSession = func(ctx context.Context) (podscribe.Session, error) {
		return OpenSession(opts)
	}

	if cli.Extract.Markdown {
		deps.Converter = htmltomarkdown.NewConverter()
	}
	if cli.Extract.Output != "" {
		deps.Writer = fs.NewWriter(cli.Extract.Output)
	}

	return kongCtx.Run(deps)
}
