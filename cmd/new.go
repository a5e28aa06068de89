package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/lock"
	"github.com/qastetray/cli/internal/logger"
	"github.com/qastetray/cli/internal/syntax"
	"github.com/qastetray/cli/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [FILE]",
	Short: "Open the interactive new paste window",
	Long: `New opens a terminal window for writing a paste, choosing a pastebin,
expiry and syntax, and pasting it. FILE pre-fills the content.

Only one window can be open at a time.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringP("title", "t", "", "initial title")
}

func runNew(cmd *cobra.Command, args []string) error {
	config, err := appConfig(cmd.Context())
	if err != nil {
		return err
	}

	l, err := lock.Acquire(config.Paths.LockFile())
	if errors.Is(err, lock.ErrLocked) {
		return fmt.Errorf("a new paste window is already open: %w", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.With(config.Logger, "releasing lock failed", "error", err)
		}
	}()

	if err := config.LoadBackends(); err != nil {
		return err
	}

	content := ""
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read content: %w", err)
		}
		if !syntax.IsText(data) {
			return ErrNotText
		}
		content = string(data)
	}
	title, _ := cmd.Flags().GetString("title")

	names := config.Registry.Names()
	backends := make([]backend.Backend, 0, len(names))
	for _, name := range names {
		b, _ := config.Registry.Get(name)
		backends = append(backends, b)
	}

	s := config.Settings
	askOnQuit, err := s.GetBool("NewPasteWindow", "ask-on-quit")
	if err != nil {
		askOnQuit = true
	}

	m, err := ui.RunNewPaste(cmd.Context(), ui.NewPasteOptions{
		Backends:       backends,
		DefaultBackend: s.GetDefault("Paste", "default-backend", ""),
		Content:        content,
		Title:          title,
		Username:       s.GetDefault("Paste", "username", ""),
		DefaultSyntax: func(name string) string {
			return s.GetDefault("DefaultSyntax", name, "")
		},
		AskOnQuit: askOnQuit,
		FgColor:   s.GetDefault("NewPasteWindow", "fgcolor", ""),
		BgColor:   s.GetDefault("NewPasteWindow", "bgcolor", ""),
		Clipboard: config.Clipboard,
		Submit: func(b backend.Backend, req backend.Request) *backend.Submission {
			logger.With(config.Logger, "pasting", "backend", b.Descriptor().Name, "bytes", len(req.Content))
			return backend.Submit(cmd.Context(), b, req)
		},
	})
	if saveErr := recordPasted(cmd.OutOrStdout(), config, m.Pasted()); saveErr != nil && err == nil {
		err = saveErr
	}
	return err
}

// recordPasted prints the window's pastes and adds them to the recent list.
func recordPasted(w io.Writer, config *AppConfig, pasted []ui.Pasted) error {
	for _, p := range pasted {
		config.Recent.Add(p.URL, p.Title)
		fmt.Fprintln(w, p.URL)
	}
	if len(pasted) > 0 {
		return config.SaveRecent()
	}
	return nil
}
