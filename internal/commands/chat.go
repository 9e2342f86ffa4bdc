package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diogo/cvischat/internal/chat"
	"github.com/diogo/cvischat/internal/prompt"
	"github.com/diogo/cvischat/internal/render"
	"github.com/diogo/cvischat/internal/tui"
)

func newChatCmd(deps *Dependencies, o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Long: `Start an interactive chat session.

Enter sends the message. Alt+Enter or Ctrl+J inserts a newline.
Ctrl+Y copies the last reply. Esc, Ctrl+C or /quit ends the session.
Diagnostics go to ~/.cvischat/cvischat.log.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, o, deps.Stderr)
			if err != nil {
				return err
			}

			if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
				fmt.Fprintf(deps.Stderr, "Warning: unknown tui_theme %q, using %s\n", cfg.TUITheme, render.DefaultTUITheme)
			}
			tui.UpdateTheme()

			// The TUI owns the terminal, so diagnostics always go to the log file
			logger, closer := newLogger(cfg, deps, false)
			defer closer.Close()

			client, err := deps.NewClient(cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			defer client.Close()

			logger.Info().
				Str("endpoint", client.GetEndpoint()).
				Str("model", client.GetModel()).
				Int("context_window", cfg.ContextWindow).
				Msg("chat started")

			session := chat.NewSession(prompt.WindowFor(cfg.ContextWindow))
			err = deps.RunChat(cmd.Context(), client, session, logger, render.OptionsFromConfig(cfg.Markdown, 0))

			logger.Info().Int("messages", session.Len()).Msg("chat ended")
			return err
		},
	}
}
