package main

import (
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wunderadmin/internal/app/selection"
	"wunderadmin/internal/infra/adminapi"
	"wunderadmin/internal/infra/config"
	"wunderadmin/internal/infra/selstore"
)

type cliOptions struct {
	configPath string
	apiBaseURL string
	userID     string
	jsonOutput bool
	verbose    bool

	logger *zap.Logger
	cfg    config.Config
}

func newRootCommand() *cobra.Command {
	opts := &cliOptions{
		configPath: config.DefaultConfigPath(),
		logger:     zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           "wunderadmin",
		Short:         "Admin console client for the Wunder platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			opts.logger = newLogger(opts.verbose)
			return opts.resolveConfig()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath, "path to the wunderadmin config file")
	root.PersistentFlags().StringVar(&opts.apiBaseURL, "api", "", "admin API base url (overrides the config file)")
	root.PersistentFlags().StringVar(&opts.userID, "user", "", "user id to act as (overrides the config file)")
	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "print machine-readable JSON")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newToolsCommand(opts))
	root.AddCommand(newSkillsCommand(opts))
	root.AddCommand(newLinksCommand(opts))
	root.AddCommand(newChannelsCommand(opts))
	root.AddCommand(newLogsCommand(opts))
	root.AddCommand(newWatchCommand(opts))
	root.AddCommand(newConfigCommand(opts))
	return root
}

func (o *cliOptions) resolveConfig() error {
	cfg, err := config.NewLoader(o.logger).Load(o.configPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(o.apiBaseURL) != "" {
		cfg.APIBaseURL = o.apiBaseURL
	}
	if strings.TrimSpace(o.userID) != "" {
		cfg.UserID = o.userID
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *cliOptions) newAPIClient() (*adminapi.Client, error) {
	return adminapi.NewClient(o.cfg.APIBaseURL, o.logger, adminapi.WithTimeout(o.cfg.RequestTimeout()))
}

// newSession builds a one-shot selection session for CLI commands. The
// caller closes the returned store.
func (o *cliOptions) newSession() (*selstore.Store, *selection.Manager, error) {
	client, err := o.newAPIClient()
	if err != nil {
		return nil, nil, err
	}
	store, err := selstore.Open(o.cfg.StorePath, o.logger)
	if err != nil {
		return nil, nil, err
	}
	manager := selection.NewManager(client, store, selection.Options{
		Policy:         o.cfg.Policy(),
		Logger:         o.logger,
		ReloadDebounce: o.cfg.ReloadDebounce(),
	})
	return store, manager, nil
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	cfg := zap.NewDevelopmentConfig()
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
