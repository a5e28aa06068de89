package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/ui"
)

var backendsCmd = &cobra.Command{
	Use:     "backends",
	Aliases: []string{"pastebins"},
	Short:   "List available pastebins",
	Long: `List the pastebins QasteTray can paste to, with the name to use on the
command line, expiry choices and the options each one accepts.`,
	Args: cobra.NoArgs,
	RunE: runBackends,
}

func init() {
	rootCmd.AddCommand(backendsCmd)
}

// backendInfo is the structured form of a backend listing.
type backendInfo struct {
	backend.Descriptor `yaml:",inline"`
	Abbreviation       string `json:"abbreviation" yaml:"abbreviation"`
	Source             string `json:"source" yaml:"source"`
}

func runBackends(cmd *cobra.Command, args []string) error {
	config, err := appConfig(cmd.Context())
	if err != nil {
		return err
	}
	if err := config.LoadBackends(); err != nil {
		return err
	}

	var descs []backend.Descriptor
	var infos []backendInfo
	sources := make(map[string]string)
	for _, name := range config.Registry.Names() {
		b, _ := config.Registry.Get(name)
		d := b.Descriptor()
		descs = append(descs, d)
		sources[name] = config.Registry.Source(name)
		infos = append(infos, backendInfo{
			Descriptor:   d,
			Abbreviation: backend.Abbreviate(d.Name),
			Source:       sources[name],
		})
	}

	if structured, err := writeStructured(cmd, infos); structured {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderBackends(descs, sources))
	return nil
}
