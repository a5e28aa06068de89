package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/logger"
	"github.com/qastetray/cli/internal/syntax"
	"github.com/qastetray/cli/internal/ui"
)

// ErrNotText is returned for input that isn't UTF-8 text.
var ErrNotText = errors.New("input doesn't look like text")

// pasteCmd represents the paste command
var pasteCmd = &cobra.Command{
	Use:   "paste PASTEBIN [FILE]",
	Short: "Paste a file or stdin and print the URL",
	Long: `Paste sends the content of FILE (or stdin) to PASTEBIN and prints the URL.

PASTEBIN is the command-line name shown by "qastetray backends", for example
"dpaste" or "github-gist". Options the pastebin doesn't support are ignored.

Example usage:
  qastetray paste dpaste main.go            # Paste a file
  echo hello | qastetray paste hastebin     # Paste stdin
  qastetray paste dpaste notes.txt -e 7     # Expire after a week`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPaste,
}

func init() {
	rootCmd.AddCommand(pasteCmd)

	pasteCmd.Flags().StringP("expiry", "e", "", "expiry in days, one of the pastebin's choices (default: its first choice)")
	pasteCmd.Flags().StringP("syntax", "s", "", "syntax highlighting label (default: detected from the content)")
	pasteCmd.Flags().StringP("title", "t", "", "title of the paste")
	pasteCmd.Flags().StringP("username", "u", "", "name or nick (default: [Paste] username)")
	pasteCmd.Flags().Bool("copy", false, "copy the URL to the clipboard")
}

func runPaste(cmd *cobra.Command, args []string) error {
	config, err := appConfig(cmd.Context())
	if err != nil {
		return err
	}
	if err := config.LoadBackends(); err != nil {
		return err
	}

	b, err := config.Registry.Lookup(args[0])
	if err != nil {
		return err
	}
	d := b.Descriptor()

	filename := ""
	var content []byte
	if len(args) > 1 {
		filename = args[1]
		content, err = os.ReadFile(filename)
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}
	if !syntax.IsText(content) {
		return ErrNotText
	}

	expiryFlag, _ := cmd.Flags().GetString("expiry")
	syntaxFlag, _ := cmd.Flags().GetString("syntax")
	title, _ := cmd.Flags().GetString("title")
	username, _ := cmd.Flags().GetString("username")
	copyFlag, _ := cmd.Flags().GetBool("copy")

	expiry, err := backend.ParseExpiry(d, expiryFlag)
	if err != nil {
		return err
	}
	if username == "" {
		username = config.Settings.GetDefault("Paste", "username", "")
	}

	req := backend.Request{
		Content:  string(content),
		Expiry:   &expiry,
		Syntax:   chooseSyntax(config, d, syntaxFlag, filepath.Base(filename), content),
		Title:    title,
		Username: username,
	}
	logger.With(config.Logger, "pasting", "backend", d.Name, "bytes", len(content), "syntax", req.Syntax)

	sub := backend.Submit(cmd.Context(), b, req)
	var res backend.Result
	if logger.IsInteractive() {
		res, err = ui.RunSpinner(cmd.Context(), "Pasting to "+d.Name+"...", sub)
	} else {
		res, err = sub.Wait(cmd.Context())
	}
	if err != nil {
		return err
	}
	if res.Err != nil {
		return res.Err
	}

	fmt.Fprintln(cmd.OutOrStdout(), res.URL)

	config.Recent.Add(res.URL, title)
	if err := config.SaveRecent(); err != nil {
		config.UI.Logf("Warning: could not save recent pastes: %v\n", err)
	}

	if copySetting, _ := config.Settings.GetBool("Paste", "copy-url"); copyFlag || copySetting {
		if err := config.Clipboard.Copy(res.URL); err != nil {
			config.UI.Logf("Warning: could not copy the URL: %v\n", err)
		} else {
			config.UI.Log("URL copied to the clipboard.")
		}
	}
	return nil
}

// chooseSyntax picks the syntax label: the flag, then the [DefaultSyntax]
// setting for the backend, then whatever the content looks like. An empty
// result lets the backend default apply.
func chooseSyntax(config *AppConfig, d backend.Descriptor, flag, filename string, content []byte) string {
	if flag != "" {
		return flag
	}
	if !d.Supports(backend.ParamSyntax) {
		return ""
	}
	if s := config.Settings.GetDefault("DefaultSyntax", d.Name, ""); s != "" {
		return s
	}
	if filename == "." {
		filename = ""
	}
	if label, ok := syntax.Guess(d, filename, content); ok {
		return label
	}
	return ""
}
