package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/cvischat/internal/chat"
	"github.com/diogo/cvischat/internal/config"
	"github.com/diogo/cvischat/internal/prompt"
	"github.com/diogo/cvischat/internal/render"
	"github.com/diogo/cvischat/internal/tui"
)

// Styles matching the chat TUI
var (
	replyLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	replyBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// runQuery sends a single prompt as a one-message conversation and prints
// the reply. Output is raw when --raw is set or stdout is not a terminal.
func runQuery(ctx context.Context, deps *Dependencies, cfg config.Config, o *rootOptions, text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("prompt cannot be empty")
	}
	raw := o.raw || !deps.IsTTY()

	logger, closer := newLogger(cfg, deps, cfg.Verbose)
	defer closer.Close()

	logger.Debug().
		Str("endpoint", cfg.Endpoint).
		Str("model", cfg.Model).
		Dur("timeout", cfg.Timeout()).
		Msg("one-shot query")

	client, err := deps.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	session := chat.NewSession(prompt.WindowFor(cfg.ContextWindow))
	defer session.Close()
	exchanger := chat.NewExchanger(session, client, logger)

	var spin *spinner
	if !raw {
		spin = newSpinner(deps.Stderr, "Waiting for "+cfg.Model)
		spin.start()
	}

	if _, err := exchanger.Send(ctx, text); err != nil {
		if !raw {
			spin.stopWithError()
			fmt.Fprintln(deps.Stderr, formatErrorMessage(err, "Generation failed"))
			return reportedError{fmt.Errorf("generation failed: %w", err)}
		}
		return fmt.Errorf("generation failed: %w", err)
	}
	if !raw {
		spin.stopWithSuccess("Done")
	}

	reply, _ := session.LastReply()
	answer := reply.Content

	if raw {
		if o.output != "" {
			return writeOutput(o.output, answer)
		}
		fmt.Fprint(deps.Stdout, answer)
		return nil
	}

	fmt.Fprintln(deps.Stderr)

	if cfg.CopyToClipboard {
		if err := deps.Clipboard(answer); err != nil {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorWarning).Render(
				fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err)))
		} else {
			fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
		}
	}

	if o.output != "" {
		if err := writeOutput(o.output, answer); err != nil {
			return err
		}
		fmt.Fprintln(deps.Stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
			fmt.Sprintf("✓ Response saved to %s", o.output)))
		return nil
	}

	bubbleWidth := deps.TermWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	opts := render.OptionsFromConfig(cfg.Markdown, bubbleWidth-4)
	fmt.Fprintln(deps.Stdout, replyLabelStyle.Render("AI"))
	fmt.Fprintln(deps.Stdout, replyBubbleStyle.Width(bubbleWidth).Render(render.Reply(answer, opts)))
	return nil
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// reportedError marks an error whose details were already printed
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context string) string {
	if err == nil {
		return ""
	}
	return tui.FormatError(fmt.Errorf("%s: %w", context, err))
}
