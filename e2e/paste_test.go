package e2e

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestPasteThroughManifestBackend builds the binary, drops a manifest backend
// into the user backend dir and pastes stdin to a local server.
func TestPasteThroughManifestBackend(t *testing.T) {
	t.Parallel()

	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		received <- string(data)
		_, _ = io.WriteString(w, `{"key":"abc"}`)
	}))
	defer srv.Close()

	repoRoot, binaryPath := buildCLIBinary(t, "")
	env, configDir := isolatedEnv(t)

	manifest := fmt.Sprintf(`name: e2e bin
expiry_days: [-1]
paste_args: [content]
request:
  endpoint: %s/documents
response:
  type: json
  field: key
  prefix: %s/
`, srv.URL, srv.URL)
	backendDir := filepath.Join(configDir, "backends")
	if err := os.MkdirAll(backendDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(backendDir, "e2e_bin.yaml"), []byte(manifest), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binaryPath, "paste", "e2e-bin")
	cmd.Dir = repoRoot
	cmd.Env = env
	cmd.Stdin = strings.NewReader("hello from e2e")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("paste failed: %v\n%s", err, string(out))
	}
	if got := strings.TrimSpace(string(out)); got != srv.URL+"/abc" {
		t.Fatalf("expected %s/abc, got %q", srv.URL, got)
	}
	if body := <-received; body != "hello from e2e" {
		t.Fatalf("server received %q", body)
	}

	recent := exec.CommandContext(ctx, binaryPath, "recent")
	recent.Env = env
	out, err = recent.Output()
	if err != nil {
		t.Fatalf("recent failed: %v\n%s", err, string(out))
	}
	if !strings.Contains(string(out), srv.URL+"/abc") {
		t.Fatalf("recent pastes don't include the paste: %q", string(out))
	}
}
