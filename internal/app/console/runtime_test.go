package console

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func startFakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/tools" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"builtin_tools":[{"name":"search"},{"name":"browser"}]}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func writeRuntimeConfig(t *testing.T, dir, apiURL string, debounceMillis int) string {
	t.Helper()
	path := filepath.Join(dir, "wunderadmin.yaml")
	content := fmt.Sprintf(`
apiBaseURL: %s
userID: admin-1
storePath: %s
reloadDebounceMillis: %d
`, apiURL, filepath.Join(dir, "selections.db"), debounceMillis)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRuntimeBuildsSessionFromConfig(t *testing.T) {
	api := startFakeAPI(t)
	dir := t.TempDir()
	path := writeRuntimeConfig(t, dir, api.URL, 300)

	runtime, err := NewRuntime(path, nil)
	require.NoError(t, err)
	defer runtime.closeStore()

	manager := runtime.Manager()
	require.NotNil(t, manager)

	state, err := manager.Reconcile(context.Background(), "admin-1")
	require.NoError(t, err)
	require.Equal(t, []string{"search", "browser"}, state.Selected.Names())
}

func TestRuntimeReloadConfigSwapsSession(t *testing.T) {
	api := startFakeAPI(t)
	dir := t.TempDir()
	path := writeRuntimeConfig(t, dir, api.URL, 300)

	runtime, err := NewRuntime(path, nil)
	require.NoError(t, err)
	defer runtime.closeStore()
	before := runtime.Manager()

	writeRuntimeConfig(t, dir, api.URL, 150)
	require.NoError(t, runtime.reloadConfig(context.Background()))

	cfg, after := runtime.snapshot()
	require.Equal(t, 150, cfg.ReloadDebounceMillis)
	require.NotSame(t, before, after)
}

func TestRuntimeRejectsBrokenConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wunderadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte("apiBaseURL: ''\n"), 0o600))

	_, err := NewRuntime(path, nil)
	require.Error(t, err)
}

func TestRuntimeReloadKeepsSessionOnBrokenConfig(t *testing.T) {
	api := startFakeAPI(t)
	dir := t.TempDir()
	path := writeRuntimeConfig(t, dir, api.URL, 300)

	runtime, err := NewRuntime(path, nil)
	require.NoError(t, err)
	defer runtime.closeStore()
	before := runtime.Manager()

	require.NoError(t, os.WriteFile(path, []byte("apiBaseURL: ''\n"), 0o600))
	require.Error(t, runtime.reloadConfig(context.Background()))
	require.Same(t, before, runtime.Manager())
}
