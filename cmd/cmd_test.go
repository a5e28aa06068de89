package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qastetray/cli/internal/backend"
	"github.com/qastetray/cli/internal/filepaths"
	"github.com/qastetray/cli/internal/logger"
	"github.com/qastetray/cli/internal/ui"
)

// resetFlags puts every flag back to its default so one test's flags don't
// leak into the next.
func resetFlags(c *cobra.Command) {
	c.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := run(context.Background())
	return out.String(), err
}

type pasteServer struct {
	count atomic.Int32
	fail  atomic.Bool
}

// setupEnv points QasteTray at temp dirs and installs a manifest backend
// named "local" that pastes to a test server.
func setupEnv(t *testing.T) *pasteServer {
	t.Helper()
	dir := t.TempDir()
	configDir := filepath.Join(dir, "config")
	t.Setenv("QASTETRAY_CONFIG_DIR", configDir)
	t.Setenv("QASTETRAY_CACHE_DIR", filepath.Join(dir, "cache"))
	t.Setenv("QASTETRAY_BACKEND_PATH", "")
	t.Setenv("GITHUB_TOKEN", "")

	ps := &pasteServer{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ps.fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		n := ps.count.Add(1)
		assert.NoError(t, r.ParseForm())
		fmt.Fprintf(w, "%s/p%d?title=%s", "https://paste.example", n, r.PostForm.Get("description"))
	}))
	t.Cleanup(srv.Close)

	manifest := fmt.Sprintf(`name: local
url: %s
expiry_days: [1, 7]
paste_args: [content, title, expiry]
request:
  endpoint: %s
  encoding: form
  fields:
    title: description
`, srv.URL, srv.URL)
	backendDir := filepath.Join(configDir, "backends")
	require.NoError(t, os.MkdirAll(backendDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(backendDir, "local.yaml"), []byte(manifest), 0644))
	return ps
}

func TestPaste_StdinAndRecent(t *testing.T) {
	ps := setupEnv(t)

	out, err := execute(t, "hello", "paste", "local", "-t", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "https://paste.example/p1?title=greeting\n", out)
	assert.EqualValues(t, 1, ps.count.Load())

	out, err = execute(t, "", "recent", "-o", "json")
	require.NoError(t, err)
	var entries []recentInfo
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []recentInfo{{URL: "https://paste.example/p1?title=greeting", Title: "greeting"}}, entries)
}

func TestPaste_File(t *testing.T) {
	setupEnv(t)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("some notes"), 0644))

	out, err := execute(t, "", "paste", "local", path, "-e", "7")
	require.NoError(t, err)
	assert.Equal(t, "https://paste.example/p1?title=\n", out)
}

func TestPaste_Errors(t *testing.T) {
	setupEnv(t)

	_, err := execute(t, "x", "paste", "nope")
	var unknown *backend.UnknownBackendError
	assert.ErrorAs(t, err, &unknown)

	_, err = execute(t, "x", "paste", "local", "-e", "3")
	var invalid *backend.InvalidExpiryError
	assert.ErrorAs(t, err, &invalid)

	_, err = execute(t, "\x00\x01\x02", "paste", "local")
	assert.ErrorIs(t, err, ErrNotText)
}

func TestPaste_SubmissionFailure(t *testing.T) {
	ps := setupEnv(t)
	ps.fail.Store(true)

	_, err := execute(t, "x", "paste", "local")
	var pe *backend.PasteSubmissionError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "local", pe.Backend)

	out, err := execute(t, "", "recent")
	require.NoError(t, err)
	assert.Equal(t, "No recent pastes.\n", out)
}

func TestBackends_JSON(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "backends", "-o", "json")
	require.NoError(t, err)

	var infos []backendInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	var names []string
	for _, info := range infos {
		names = append(names, info.Abbreviation)
	}
	assert.Equal(t, []string{"dpaste", "github-gist", "hastebin", "local"}, names)
	assert.True(t, strings.HasSuffix(infos[3].Source, "local.yaml"))
	assert.Equal(t, "builtin:dpaste", infos[0].Source)

	out, err = execute(t, "", "pastebins")
	require.NoError(t, err)
	assert.Contains(t, out, "github-gist")
}

func TestBackends_DuplicateAborts(t *testing.T) {
	setupEnv(t)
	extra := t.TempDir()
	t.Setenv("QASTETRAY_BACKEND_PATH", extra)
	require.NoError(t, os.WriteFile(filepath.Join(extra, "other.yml"),
		[]byte("name: local\nexpiry_days: [1]\npaste_args: [content]\nrequest:\n  endpoint: https://x/\n"), 0644))

	_, err := execute(t, "", "backends")
	var dup *backend.DuplicateBackendError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "local", dup.Name)
}

func TestConfig_SetMaxLenTruncatesRecent(t *testing.T) {
	setupEnv(t)
	for i := 0; i < 3; i++ {
		_, err := execute(t, "x", "paste", "local")
		require.NoError(t, err)
	}

	_, err := execute(t, "", "config", "set", "RecentPastes", "maxlen", "1")
	require.NoError(t, err)

	out, err := execute(t, "", "config", "get", "RecentPastes", "maxlen")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)

	out, err = execute(t, "", "recent", "-o", "json")
	require.NoError(t, err)
	var entries []recentInfo
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "https://paste.example/p3?title=", entries[0].URL)
}

func TestRecent_Clear(t *testing.T) {
	setupEnv(t)
	_, err := execute(t, "x", "paste", "local")
	require.NoError(t, err)

	_, err = execute(t, "", "recent", "--clear")
	require.NoError(t, err)

	out, err := execute(t, "", "recent")
	require.NoError(t, err)
	assert.Equal(t, "No recent pastes.\n", out)
}

func TestRecent_CorruptListCanBeCleared(t *testing.T) {
	setupEnv(t)
	confPath := filepath.Join(os.Getenv("QASTETRAY_CONFIG_DIR"), "qastetray.conf")
	require.NoError(t, os.WriteFile(confPath, []byte("[RecentPastes]\njson = {\n"), 0644))

	out, err := execute(t, "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, confPath+"\n", out)

	_, err = execute(t, "", "recent", "--clear")
	require.NoError(t, err)

	out, err = execute(t, "", "config", "get", "RecentPastes", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, err = execute(t, "x", "paste", "local")
	require.NoError(t, err)
	out, err = execute(t, "", "recent", "-o", "json")
	require.NoError(t, err)
	var entries []recentInfo
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 1)
}

func TestConfig_ListAndGetMissing(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "config", "list", "Paste")
	require.NoError(t, err)
	assert.Contains(t, out, "[Paste]\n")
	assert.Contains(t, out, "default-backend = dpaste\n")

	_, err = execute(t, "", "config", "get", "Paste", "nope")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "qastetray "+Version)
}

type syncingLogger struct {
	logger.Nop
	synced int
}

func (l *syncingLogger) Sync() error {
	l.synced++
	return nil
}

func TestAppConfig_SyncLogger(t *testing.T) {
	log := &syncingLogger{}
	config := NewAppConfig(filepaths.Paths{ConfigDir: t.TempDir()}, log)
	config.SyncLogger()
	assert.Equal(t, 1, log.synced)

	NewAppConfig(filepaths.Paths{}, nil).SyncLogger()
}

func TestRecordPasted(t *testing.T) {
	setupEnv(t)
	paths, err := filepaths.Resolve()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())
	config := NewAppConfig(paths, nil)
	require.NoError(t, config.Load())

	var out bytes.Buffer
	require.NoError(t, recordPasted(&out, config, []ui.Pasted{
		{URL: "https://paste.example/a", Title: "first"},
		{URL: "https://paste.example/b", Title: "second"},
	}))
	assert.Equal(t, "https://paste.example/a\nhttps://paste.example/b\n", out.String())

	stdout, err := execute(t, "", "recent", "-o", "json")
	require.NoError(t, err)
	var entries []recentInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &entries))
	assert.Equal(t, []recentInfo{
		{URL: "https://paste.example/b", Title: "second"},
		{URL: "https://paste.example/a", Title: "first"},
	}, entries)
}
