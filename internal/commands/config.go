package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/cvischat/internal/config"
	"github.com/diogo/cvischat/internal/render"
)

func newConfigCmd(deps *Dependencies, o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change settings",
		Long: `Show or change cvischat settings stored in ~/.cvischat/config.json.

Environment variables (CVISCHAT_ENDPOINT, CVISCHAT_MODEL, CVISCHAT_TIMEOUT,
CVISCHAT_CONTEXT_WINDOW, CVISCHAT_LOG_LEVEL, GLAMOUR_STYLE) and flags
override the file.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd, o, deps.Stderr)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}
			fmt.Fprintln(deps.Stdout, string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.GetConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(deps.Stdout, path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting in the config file",
		Long:  "Change one setting in the config file. Keys: " + strings.Join(config.Keys(), ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if key == "tui_theme" {
				if _, ok := render.TUIThemeByName(value); !ok {
					return fmt.Errorf("unknown theme %q (available: %s)", value, strings.Join(render.TUIThemeNames(), ", "))
				}
			}

			// Only the file is edited; env and flags are not persisted
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if err := config.Set(&cfg, key, value); err != nil {
				return err
			}
			if err := config.SaveConfig(cfg); err != nil {
				return err
			}
			fmt.Fprintf(deps.Stdout, "✓ %s = %s\n", key, value)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "themes",
		Short: "List TUI themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range render.TUIThemeNames() {
				theme, _ := render.TUIThemeByName(name)
				fmt.Fprintf(deps.Stdout, "%-12s %s\n", theme.Name, theme.Description)
			}
			return nil
		},
	})

	return cmd
}
