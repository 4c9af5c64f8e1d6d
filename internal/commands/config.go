package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/goalchat/internal/config"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	var initFlag, forceFlag bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize the configuration",
		Long: `Print the effective configuration (file, environment and flags combined)
and the path of the config file. Use --init to write the defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if initFlag {
				return runConfigInit(cmd, forceFlag)
			}
			return runConfigShow(cmd)
		},
	}

	cmd.Flags().BoolVar(&initFlag, "init", false, "Write the default config file")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Overwrite an existing config file with --init")

	return cmd
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# %s\n", path)
	fmt.Fprintln(out, string(data))
	return nil
}

func runConfigInit(cmd *cobra.Command, force bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
	}

	if err := config.SaveConfig(config.DefaultConfig()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}
