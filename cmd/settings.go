package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/recent"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change settings",
	Long: `Config reads and writes QasteTray's settings file. Settings are grouped
in sections, for example:

  qastetray config get Paste default-backend
  qastetray config set RecentPastes maxlen 20
  qastetray config list NewPasteWindow`,
}

var configGetCmd = &cobra.Command{
	Use:   "get SECTION KEY",
	Short: "Print a setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := appConfig(cmd.Context())
		if err != nil {
			return err
		}
		value, err := config.Settings.Get(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set SECTION KEY VALUE",
	Short: "Change a setting and save it",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := appConfig(cmd.Context())
		if err != nil {
			return err
		}
		section, key, value := args[0], args[1], args[2]
		config.Settings.Set(section, key, value)

		// A new maxlen may have shortened the list.
		if section == "RecentPastes" && key == "maxlen" {
			if err := recent.Save(config.Recent, config.Settings); err != nil {
				return err
			}
		}
		return config.Settings.Save()
	},
}

var configListCmd = &cobra.Command{
	Use:   "list [SECTION]",
	Short: "List settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := appConfig(cmd.Context())
		if err != nil {
			return err
		}
		sections := config.Settings.Sections()
		if len(args) == 1 {
			sections = []string{args[0]}
		}

		values := make(map[string]map[string]string)
		for _, section := range sections {
			values[section] = make(map[string]string)
			for _, key := range config.Settings.Keys(section) {
				values[section][key] = config.Settings.GetDefault(section, key, "")
			}
		}
		if structured, err := writeStructured(cmd, values); structured {
			return err
		}

		out := cmd.OutOrStdout()
		for _, section := range sections {
			fmt.Fprintf(out, "[%s]\n", section)
			for _, key := range config.Settings.Keys(section) {
				fmt.Fprintf(out, "%s = %s\n", key, values[section][key])
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := appConfig(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), config.Settings.Path())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configGetCmd, configSetCmd, configListCmd, configPathCmd)
}
