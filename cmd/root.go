package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "qastetray",
	Short: "Paste text to online pastebins",
	Long: `QasteTray sends text to pastebin services and gives you a link to share.

Pastebins are built in (dpaste, hastebin, GitHub Gist) or described by
manifest files in the user backend directory. Recent pastes are remembered
and settings live in an INI file in the user config directory.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return run(context.Background())
}

// run executes the root command and flushes the diagnostics logger of the
// command that ran, whether or not it failed.
func run(ctx context.Context) error {
	c, err := rootCmd.ExecuteContextC(ctx)
	if c != nil && c.Context() != nil {
		if config, cfgErr := appConfig(c.Context()); cfgErr == nil {
			config.SyncLogger()
		}
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, json, yaml)")
}
