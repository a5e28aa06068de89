package e2e

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

// findRepoRoot walks up from the current working directory to locate go.mod
func findRepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not locate go.mod from %s", dir)
		}
		dir = parent
	}
}

// buildCLIBinary builds the CLI into a temp dir and returns (repoRoot, binaryPath).
func buildCLIBinary(t *testing.T, ldflags string) (string, string) {
	t.Helper()
	repoRoot := findRepoRoot(t)
	tmpDir := t.TempDir()
	binaryName := "qastetray"
	if runtime.GOOS == "windows" {
		binaryName += ".exe"
	}
	binaryPath := filepath.Join(tmpDir, binaryName)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	t.Logf("Building CLI binary: %s", binaryPath)
	args := []string{"build", "-o", binaryPath}
	if ldflags != "" {
		args = append(args, "-ldflags", ldflags)
	}
	cmd := exec.CommandContext(ctx, "go", append(args, ".")...)
	cmd.Dir = repoRoot
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("build failed: %v\n%s", err, string(out))
	}
	t.Logf("CLI build completed")
	return repoRoot, binaryPath
}

// isolatedEnv returns an environment with QasteTray's directories under a
// temp dir.
func isolatedEnv(t *testing.T) ([]string, string) {
	t.Helper()
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	env := append(os.Environ(),
		"QASTETRAY_CONFIG_DIR="+configDir,
		"QASTETRAY_CACHE_DIR="+filepath.Join(dir, "cache"),
		"QASTETRAY_BACKEND_PATH=",
	)
	return env, configDir
}
