package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/ui"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List or clear recent pastes",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().Bool("clear", false, "forget all recent pastes")
}

type recentInfo struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

func runRecent(cmd *cobra.Command, args []string) error {
	config, err := appConfig(cmd.Context())
	if err != nil {
		return err
	}

	if clearAll, _ := cmd.Flags().GetBool("clear"); clearAll {
		config.Recent.Clear()
		if err := config.SaveRecent(); err != nil {
			return err
		}
		config.UI.Log("Recent pastes cleared.")
		return nil
	}

	entries := config.Recent.Entries()
	infos := make([]recentInfo, len(entries))
	for i, e := range entries {
		infos[i] = recentInfo{URL: e.URL, Title: e.Title}
	}
	if structured, err := writeStructured(cmd, infos); structured {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderRecent(entries))
	return nil
}
