package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"wunderadmin/internal/domain"
)

// Default values applied when the config file or environment leaves a field
// unset.
const (
	DefaultRequestTimeoutSeconds = 10
	DefaultReloadDebounceMillis  = 400
	DefaultPollIntervalSeconds   = 30
	DefaultLogTail               = 200
	DefaultLogLevel              = "info"
	DefaultObservabilityAddress  = "127.0.0.1:9091"
)

type ObservabilityConfig struct {
	ListenAddress string `mapstructure:"listenAddress"`
	EnableMetrics bool   `mapstructure:"enableMetrics"`
}

type SelectionConfig struct {
	ExcludedTools        []string `mapstructure:"excludedTools"`
	RichUITool           string   `mapstructure:"richUITool"`
	FinalResponseAliases []string `mapstructure:"finalResponseAliases"`
}

// Config is the effective console configuration.
type Config struct {
	APIBaseURL            string              `mapstructure:"apiBaseURL"`
	UserID                string              `mapstructure:"userID"`
	StorePath             string              `mapstructure:"storePath"`
	RequestTimeoutSeconds int                 `mapstructure:"requestTimeoutSeconds"`
	ReloadDebounceMillis  int                 `mapstructure:"reloadDebounceMillis"`
	PollIntervalSeconds   int                 `mapstructure:"pollIntervalSeconds"`
	LogTail               int                 `mapstructure:"logTail"`
	LogLevel              string              `mapstructure:"logLevel"`
	Observability         ObservabilityConfig `mapstructure:"observability"`
	Selection             SelectionConfig     `mapstructure:"selection"`
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c Config) ReloadDebounce() time.Duration {
	return time.Duration(c.ReloadDebounceMillis) * time.Millisecond
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Policy translates the selection section into the domain policy.
func (c Config) Policy() domain.SelectionPolicy {
	policy := domain.SelectionPolicy{
		ExcludedTools:        append([]string(nil), c.Selection.ExcludedTools...),
		RichUITool:           c.Selection.RichUITool,
		FinalResponseAliases: append([]string(nil), c.Selection.FinalResponseAliases...),
	}
	if policy.RichUITool == "" {
		policy.RichUITool = domain.DefaultRichUITool
	}
	if len(policy.FinalResponseAliases) == 0 {
		policy.FinalResponseAliases = append([]string(nil), domain.DefaultFinalResponseAliases...)
	}
	return policy
}

// DefaultConfigPath is where the CLI looks when --config is not given.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(".", ".wunderadmin", "wunderadmin.yaml")
	}
	return filepath.Join(home, ".wunderadmin", "wunderadmin.yaml")
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return filepath.Join(".", ".wunderadmin", "selections.db")
	}
	return filepath.Join(home, ".wunderadmin", "selections.db")
}
