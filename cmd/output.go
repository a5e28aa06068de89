package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// writeStructured writes v as json or yaml. ok is false for the text format.
func writeStructured(cmd *cobra.Command, v interface{}) (bool, error) {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		return true, writeJSON(out, v)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, fmt.Errorf("failed to encode yaml: %w", err)
		}
		return true, enc.Close()
	case "text", "":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q (use text, json or yaml)", format)
	}
}

func writeJSON(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
