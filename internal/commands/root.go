// Package commands provides CLI commands for cvischat.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diogo/cvischat/internal/config"
	"github.com/diogo/cvischat/internal/logging"
)

var (
	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootOptions holds the flag values of one command tree
type rootOptions struct {
	endpoint      string
	model         string
	timeout       int
	contextWindow int
	verbose       bool

	output  string
	file    string
	raw     bool
	version bool
}

// NewRootCmd builds the command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	if deps == nil {
		deps = NewDependencies()
	}
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "cvischat [prompt]",
		Short: "Chat with a cvisnet model served over the Ollama generate API",
		Long: `cvischat talks to an Ollama-compatible /api/generate endpoint. Every
request carries the whole conversation as a role-tagged transcript.

Examples:
  cvischat chat                         Start interactive chat
  cvischat "What is Go?"                Send a single query
  cvischat -f prompt.md                 Read prompt from file
  cat prompt.md | cvischat              Read prompt from stdin
  cvischat "Hello" -o response.md       Save response to file
  cvischat config set model llama3      Change the default model`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.version {
				printVersion(deps.Stdout)
				return nil
			}

			text, ok, err := readPrompt(deps, o, args)
			if err != nil {
				return err
			}
			if !ok {
				return cmd.Help()
			}

			cfg, err := loadSettings(cmd, o, deps.Stderr)
			if err != nil {
				return err
			}
			return runQuery(cmd.Context(), deps, cfg, o, text)
		},
	}
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&o.endpoint, "endpoint", "", "Generate endpoint URL")
	pf.StringVarP(&o.model, "model", "m", "", "Model name (default cvisnet)")
	pf.IntVar(&o.timeout, "timeout", 0, "Request timeout in seconds")
	pf.IntVar(&o.contextWindow, "context-window", 0, "Send only the last N messages (0 sends all)")
	pf.BoolVar(&o.verbose, "verbose", false, "Log diagnostics to stderr")

	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Save response to file")
	cmd.Flags().StringVarP(&o.file, "file", "f", "", "Read prompt from file")
	cmd.Flags().BoolVar(&o.raw, "raw", false, "Print the reply without decoration")
	cmd.Flags().BoolVarP(&o.version, "version", "v", false, "Show version and exit")

	cmd.AddCommand(newChatCmd(deps, o))
	cmd.AddCommand(newConfigCmd(deps, o))
	cmd.AddCommand(newVersionCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps := NewDependencies()
	if err := NewRootCmd(deps).ExecuteContext(ctx); err != nil {
		var reported reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Error"))
		}
		stop()
		os.Exit(1)
	}
}

// readPrompt picks the prompt from --file, piped stdin or the argument, in
// that order. ok is false when there is no input at all.
func readPrompt(deps *Dependencies, o *rootOptions, args []string) (string, bool, error) {
	if o.file != "" {
		data, err := os.ReadFile(o.file)
		if err != nil {
			return "", false, fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), true, nil
	}

	if deps.StdinPiped() {
		data, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", false, fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), true, nil
	}

	if len(args) > 0 {
		return args[0], true, nil
	}
	return "", false, nil
}

// loadSettings resolves the effective config: flags over environment over
// the config file over defaults.
func loadSettings(cmd *cobra.Command, o *rootOptions, stderr io.Writer) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v, using defaults\n", err)
	}

	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Endpoint = o.endpoint
	}
	if flags.Changed("model") {
		cfg.Model = o.model
	}
	if flags.Changed("timeout") {
		if o.timeout <= 0 {
			return cfg, fmt.Errorf("--timeout must be positive")
		}
		cfg.TimeoutSeconds = o.timeout
	}
	if flags.Changed("context-window") {
		if o.contextWindow < 0 {
			return cfg, fmt.Errorf("--context-window cannot be negative")
		}
		cfg.ContextWindow = o.contextWindow
	}
	if flags.Changed("verbose") {
		cfg.Verbose = o.verbose
	}
	return cfg, nil
}

// newLogger opens the diagnostic channel. With console set it writes
// human-readable lines to stderr, otherwise JSON to the log file.
func newLogger(cfg config.Config, deps *Dependencies, console bool) (zerolog.Logger, io.Closer) {
	opts := logging.Options{Level: cfg.LogLevel}
	if console {
		opts.Writer = deps.Stderr
		opts.Console = true
	} else {
		path, err := config.GetLogPath(cfg)
		if err != nil {
			return logging.Nop(), io.NopCloser(nil)
		}
		opts.File = path
	}

	logger, closer, err := logging.Setup(opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Warning: %v, logging disabled\n", err)
		return logging.Nop(), closer
	}
	return logger, closer
}
