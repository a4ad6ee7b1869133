package main_test

import (
	"bytes"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/podscribe/cmd/podscribe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsExtractCommand(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	// Use kong.Exit to prevent os.Exit from being called during tests
	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	// Kong prints help even if Parse returns an error
	_, _ = parser.Parse([]string{"--help"})

	assert.Contains(t, stdout.String(), "extract")
}

func TestCLI_ExtractFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"extract",
		"--username", "user@example.com",
		"--password", "hunter2",
		"--http",
		"--markdown",
		"-c", "4",
		"https://open.spotify.com/episode/5Xt5DXGzch68nYYamXrNxZ",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://open.spotify.com/episode/5Xt5DXGzch68nYYamXrNxZ"}, cli.Extract.URLs)
	assert.Equal(t, "user@example.com", cli.Extract.Username)
	assert.True(t, cli.Extract.HTTP)
	assert.True(t, cli.Extract.Markdown)
	assert.Equal(t, 4, cli.Extract.Concurrency)
}
