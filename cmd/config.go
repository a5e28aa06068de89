package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/spf13/cobra"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/clipboard"
	"github.com/qastetray/cli/internal/filepaths"
	"github.com/qastetray/cli/internal/logger"
	"github.com/qastetray/cli/internal/pastebins"
	"github.com/qastetray/cli/internal/recent"
	"github.com/qastetray/cli/internal/settings"
)

type contextKey string

// Context key for configuration
const ConfigKey contextKey = "config"

// environment holds values read from the environment that aren't paths.
type environment struct {
	GitHubToken string `env:"GITHUB_TOKEN"`
}

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Paths     filepaths.Paths
	Settings  *settings.Store
	Registry  *backend.Registry
	Recent    *recent.List
	Clipboard clipboard.Copier
	// Logger receives diagnostics; UI receives user-facing status lines.
	Logger logger.Logger
	UI     logger.Logger

	HTTPClient *http.Client
}

// NewAppConfig creates a new configuration instance
func NewAppConfig(paths filepaths.Paths, log logger.Logger) *AppConfig {
	if log == nil {
		log = logger.Nop{}
	}
	return &AppConfig{
		Paths:      paths,
		Settings:   settings.NewStore(settings.Defaults, paths.SettingsFile()),
		Recent:     recent.New(-1),
		Clipboard:  clipboard.NewService(),
		Logger:     log,
		UI:         logger.NewUILogger(),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load reads the settings and the recent paste list. A recent list that
// can't be read is reported and replaced by an empty one, so commands that
// repair it still run.
func (c *AppConfig) Load() error {
	if err := c.Settings.Load(); err != nil {
		return err
	}
	logger.With(c.Logger, "settings loaded", "file", c.Settings.Path())

	if err := recent.Load(c.Recent, c.Settings); err != nil {
		c.UI.Logf("Warning: ignoring recent pastes: %v\n", err)
	}
	recent.BindMaxLen(c.Recent, c.Settings)
	return nil
}

// LoadBackends builds the registry and loads every backend.
func (c *AppConfig) LoadBackends() error {
	var env environment
	if err := cleanenv.ReadEnv(&env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	token := c.Settings.GetDefault("GitHub", "token", "")
	if token == "" {
		token = env.GitHubToken
	}

	c.Registry = backend.NewRegistry(c.Paths.BackendDirs, c.Logger)
	pastebins.Configure(c.Registry, pastebins.Options{
		UserAgent:   "QasteTray/" + Version,
		HTTPClient:  c.HTTPClient,
		GitHubToken: token,
	})
	if err := c.Registry.Load(); err != nil {
		return fmt.Errorf("failed to load pastebins: %w", err)
	}
	return nil
}

// SaveRecent stores the recent paste list and writes the settings file.
func (c *AppConfig) SaveRecent() error {
	if err := recent.Save(c.Recent, c.Settings); err != nil {
		return err
	}
	return c.Settings.Save()
}

// SyncLogger flushes the diagnostics logger when it buffers output.
func (c *AppConfig) SyncLogger() {
	if s, ok := c.Logger.(interface{ Sync() error }); ok {
		// Syncing stderr fails on some terminals; nothing useful can be done.
		_ = s.Sync()
	}
}

func appConfig(ctx context.Context) (*AppConfig, error) {
	config, ok := ctx.Value(ConfigKey).(*AppConfig)
	if !ok || config == nil {
		return nil, fmt.Errorf("application is not configured")
	}
	return config, nil
}

// setupApp resolves paths, builds the diagnostics logger and loads settings.
// It runs before every command.
func setupApp(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	diag, err := logger.NewDiagnostics(verbose)
	if err != nil {
		return err
	}

	paths, err := filepaths.Resolve()
	if err != nil {
		return err
	}
	if err := paths.EnsureDirs(); err != nil {
		return err
	}

	config := NewAppConfig(paths, diag)
	if err := config.Load(); err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), ConfigKey, config))
	return nil
}
