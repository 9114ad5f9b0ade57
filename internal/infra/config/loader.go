package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"wunderadmin/internal/domain"
)

const envPrefix = "WUNDERADMIN"

type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config")}
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storePath", defaultStorePath())
	v.SetDefault("requestTimeoutSeconds", DefaultRequestTimeoutSeconds)
	v.SetDefault("reloadDebounceMillis", DefaultReloadDebounceMillis)
	v.SetDefault("pollIntervalSeconds", DefaultPollIntervalSeconds)
	v.SetDefault("logTail", DefaultLogTail)
	v.SetDefault("logLevel", DefaultLogLevel)
	v.SetDefault("observability.listenAddress", DefaultObservabilityAddress)
	v.SetDefault("observability.enableMetrics", false)
	v.SetDefault("selection.excludedTools", domain.DefaultExcludedTools)
	v.SetDefault("selection.richUITool", domain.DefaultRichUITool)
	v.SetDefault("selection.finalResponseAliases", domain.DefaultFinalResponseAliases)
}

// Load reads the config file at path, merged over defaults and WUNDERADMIN_*
// environment overrides. An empty path or a missing file yields the
// defaults; a present but unreadable file is an error. Callers apply any
// flag overrides and then run Validate.
func (l *Loader) Load(path string) (Config, error) {
	const op = "config.Load"

	v := newConfigViper()
	trimmed := strings.TrimSpace(path)
	if trimmed != "" {
		v.SetConfigFile(trimmed)
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				l.logger.Debug("config file absent, using defaults", zap.String("path", trimmed))
			} else {
				return Config{}, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("read %s", trimmed), err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, domain.E(domain.CodeInvalidArgument, op, "unmarshal config", err)
	}
	return cfg, nil
}

// Validate checks the effective configuration after overrides.
func (c Config) Validate() error {
	const op = "config.Validate"

	if strings.TrimSpace(c.APIBaseURL) == "" {
		return domain.E(domain.CodeInvalidArgument, op, "apiBaseURL is required", nil)
	}
	parsed, err := url.Parse(c.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("apiBaseURL %q is not an absolute url", c.APIBaseURL), err)
	}
	if c.RequestTimeoutSeconds <= 0 {
		return domain.E(domain.CodeInvalidArgument, op, "requestTimeoutSeconds must be positive", nil)
	}
	if c.ReloadDebounceMillis <= 0 {
		return domain.E(domain.CodeInvalidArgument, op, "reloadDebounceMillis must be positive", nil)
	}
	if c.PollIntervalSeconds <= 0 {
		return domain.E(domain.CodeInvalidArgument, op, "pollIntervalSeconds must be positive", nil)
	}
	return nil
}
