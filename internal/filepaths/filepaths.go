// Package filepaths resolves where QasteTray keeps its settings, cache and
// user backends.
package filepaths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ilyakaznacheev/cleanenv"
)

// Env holds the environment overrides. Empty values fall back to the
// per-OS locations.
type Env struct {
	ConfigDir   string `env:"QASTETRAY_CONFIG_DIR"`
	CacheDir    string `env:"QASTETRAY_CACHE_DIR"`
	BackendPath string `env:"QASTETRAY_BACKEND_PATH"`
}

type Paths struct {
	ConfigDir string
	CacheDir  string
	// BackendDirs are scanned in order; the user backend dir comes first.
	BackendDirs []string
}

// Resolve reads the environment and returns the paths for this OS.
func Resolve() (Paths, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Paths{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return FromEnv(env)
}

// FromEnv is Resolve with an explicit environment.
func FromEnv(env Env) (Paths, error) {
	p := Paths{ConfigDir: env.ConfigDir, CacheDir: env.CacheDir}

	if p.ConfigDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to find config directory: %w", err)
		}
		p.ConfigDir = filepath.Join(base, appDirName())
	}
	if p.CacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to find cache directory: %w", err)
		}
		p.CacheDir = filepath.Join(base, appDirName())
	}

	p.BackendDirs = []string{p.UserBackendDir()}
	for _, dir := range filepath.SplitList(env.BackendPath) {
		if dir != "" {
			p.BackendDirs = append(p.BackendDirs, dir)
		}
	}
	return p, nil
}

func appDirName() string {
	switch runtime.GOOS {
	case "windows", "darwin":
		return "QasteTray"
	default:
		return "qastetray"
	}
}

func (p Paths) SettingsFile() string {
	return filepath.Join(p.ConfigDir, "qastetray.conf")
}

func (p Paths) LockFile() string {
	return filepath.Join(p.CacheDir, "lock")
}

// UserBackendDir is where users drop their own backend manifests.
func (p Paths) UserBackendDir() string {
	return filepath.Join(p.ConfigDir, "backends")
}

// EnsureDirs creates the config, cache and user backend directories.
func (p Paths) EnsureDirs() error {
	for _, dir := range []string{p.ConfigDir, p.CacheDir, p.UserBackendDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
