package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"wunderadmin/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wunderadmin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "apiBaseURL: http://127.0.0.1:8700\n")

	cfg, err := NewLoader(nil).Load(path)
	require.NoError(t, err)

	require.Equal(t, DefaultRequestTimeoutSeconds, cfg.RequestTimeoutSeconds)
	require.Equal(t, DefaultReloadDebounceMillis, cfg.ReloadDebounceMillis)
	require.Equal(t, DefaultPollIntervalSeconds, cfg.PollIntervalSeconds)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)
	require.NotEmpty(t, cfg.StorePath)

	want := domain.DefaultSelectionPolicy()
	if diff := cmp.Diff(want, cfg.Policy()); diff != "" {
		t.Fatalf("policy mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	path := writeConfig(t, `
apiBaseURL: http://wunder.internal:8700
userID: admin-7
reloadDebounceMillis: 250
selection:
  excludedTools: [deep_research, batch_export]
  richUITool: a2ui
  finalResponseAliases: [final_response, final_answer]
observability:
  enableMetrics: true
  listenAddress: 127.0.0.1:9200
`)

	cfg, err := NewLoader(nil).Load(path)
	require.NoError(t, err)

	require.Equal(t, "admin-7", cfg.UserID)
	require.Equal(t, 250, cfg.ReloadDebounceMillis)
	require.True(t, cfg.Observability.EnableMetrics)
	require.Equal(t, "127.0.0.1:9200", cfg.Observability.ListenAddress)

	policy := cfg.Policy()
	require.Equal(t, []string{"deep_research", "batch_export"}, policy.ExcludedTools)
	require.Equal(t, []string{"final_response", "final_answer"}, policy.FinalResponseAliases)
}

func TestLoadMissingFileYieldsDefaultsThatFailValidation(t *testing.T) {
	cfg, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	require.Equal(t, domain.CodeInvalidArgument, code)
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"relative url", "apiBaseURL: not-a-url\n"},
		{"zero timeout", "apiBaseURL: http://127.0.0.1:8700\nrequestTimeoutSeconds: 0\n"},
		{"negative debounce", "apiBaseURL: http://127.0.0.1:8700\nreloadDebounceMillis: -5\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewLoader(nil).Load(writeConfig(t, tc.content))
			require.NoError(t, err)
			require.Error(t, cfg.Validate())
		})
	}
}
