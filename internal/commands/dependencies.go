package commands

import (
	"context"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/diogo/cvischat/internal/api"
	"github.com/diogo/cvischat/internal/chat"
	"github.com/diogo/cvischat/internal/config"
	"github.com/diogo/cvischat/internal/render"
	"github.com/diogo/cvischat/internal/tui"
)

// Dependencies holds the external dependencies for the commands.
// Tests replace them to run commands without a network or terminal.
type Dependencies struct {
	// NewClient builds the inference client from the effective config.
	NewClient func(cfg config.Config, logger zerolog.Logger) (api.GenerateClientInterface, error)

	// RunChat runs the interactive TUI.
	RunChat func(ctx context.Context, client api.GenerateClientInterface, session *chat.Session, logger zerolog.Logger, opts render.Options) error

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	StdinPiped func() bool
	IsTTY      func() bool
	TermWidth  func() int
	Clipboard  func(string) error
}

// NewDependencies creates a Dependencies struct with the production implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		NewClient:  newGenerateClient,
		RunChat:    tui.RunChat,
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		StdinPiped: isStdinPiped,
		IsTTY:      isStdoutTTY,
		TermWidth:  getTerminalWidth,
		Clipboard:  clipboard.WriteAll,
	}
}

func newGenerateClient(cfg config.Config, logger zerolog.Logger) (api.GenerateClientInterface, error) {
	client, err := api.NewClient(
		api.WithEndpoint(cfg.Endpoint),
		api.WithModel(cfg.Model),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func isStdinPiped() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
