// Package commands provides CLI commands for goalchat.
package commands

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/diogo/goalchat/internal/config"
	"github.com/diogo/goalchat/internal/render"
	"github.com/diogo/goalchat/internal/tui"
)

var (
	// Global flags
	endpointFlag string
	themeFlag    string

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = NewRootCmd(NewDependencies())

// NewRootCmd builds the command tree around deps
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goalchat",
		Short: "Terminal chat client for the World Cup assistant",
		Long: `goalchat is a terminal chat client for a World Cup information assistant.
It sends each question to the configured endpoint and shows the answer as a
conversation.

Examples:
  goalchat                                  Start the chat
  goalchat --endpoint http://localhost:8000 Use a specific assistant
  goalchat ask "2026 월드컵 개최지는?"        Ask a single question
  goalchat config --init                    Write the default config file
  goalchat devserver                        Run a local assistant stub`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "goalchat %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runChat(deps)
		},
	}

	cmd.PersistentFlags().StringVarP(&endpointFlag, "endpoint", "e", "", "Assistant base URL (overrides config and GOALCHAT_API_ENDPOINT)")
	cmd.PersistentFlags().StringVarP(&themeFlag, "theme", "t", "", "TUI theme ("+fmt.Sprint(render.TUIThemeNames())+")")
	cmd.Flags().BoolP("version", "v", false, "Show version and exit")

	cmd.AddCommand(NewAskCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewDevserverCmd(deps))

	return cmd
}

// Execute runs the root command
func Execute() {
	// A missing .env is normal outside development
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		tui.PrintError(err)
		os.Exit(1)
	}
}

// loadConfig resolves the effective configuration: file, then environment,
// then command-line flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	if endpointFlag != "" {
		cfg.APIEndpoint = endpointFlag
	}
	if themeFlag != "" {
		cfg.TUITheme = themeFlag
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		return cfg, fmt.Errorf("unknown theme %q (available: %v)", cfg.TUITheme, render.TUIThemeNames())
	}
	tui.UpdateTheme()

	return cfg, nil
}
