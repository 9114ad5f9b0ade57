package console

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"wunderadmin/internal/app/selection"
	"wunderadmin/internal/infra/adminapi"
	"wunderadmin/internal/infra/config"
	"wunderadmin/internal/infra/selstore"
	"wunderadmin/internal/infra/telemetry"
)

const configReloadDebounce = 200 * time.Millisecond

// Runtime is the long-running watch mode: it keeps the selection reconciled
// on an interval, hot-reloads the config file, and serves observability
// endpoints.
type Runtime struct {
	logger     *zap.Logger
	loader     *config.Loader
	configPath string

	metrics  *telemetry.PrometheusMetrics
	registry *prometheus.Registry

	mu      sync.Mutex
	cfg     config.Config
	store   *selstore.Store
	client  *adminapi.Client
	manager *selection.Manager
}

func NewRuntime(configPath string, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Runtime{
		logger:     logger.Named("console"),
		loader:     config.NewLoader(logger),
		configPath: configPath,
	}

	cfg, err := r.loader.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Observability.EnableMetrics {
		r.registry = prometheus.NewRegistry()
		r.metrics = telemetry.NewPrometheusMetrics(r.registry)
	}
	if err := r.apply(cfg); err != nil {
		return nil, err
	}
	return r, nil
}

// apply swaps in a new session built from cfg. The previous store is closed
// only when the path changed; the bbolt handle is otherwise reused.
func (r *Runtime) apply(cfg config.Config) error {
	client, err := adminapi.NewClient(cfg.APIBaseURL, r.logger, adminapi.WithTimeout(cfg.RequestTimeout()))
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	store := r.store
	if store == nil || r.cfg.StorePath != cfg.StorePath {
		opened, err := selstore.Open(cfg.StorePath, r.logger)
		if err != nil {
			return err
		}
		if r.store != nil {
			_ = r.store.Close()
		}
		store = opened
	}

	r.cfg = cfg
	r.store = store
	r.client = client
	r.manager = selection.NewManager(client, store, selection.Options{
		Policy:         cfg.Policy(),
		Logger:         r.logger,
		Metrics:        metricsOrNil(r.metrics),
		ReloadDebounce: cfg.ReloadDebounce(),
		OnReload: func() {
			r.logger.Info("prompt reload triggered")
		},
	})
	return nil
}

// metricsOrNil avoids handing the manager a non-nil interface wrapping a
// nil pointer.
func metricsOrNil(m *telemetry.PrometheusMetrics) telemetry.Metrics {
	if m == nil {
		return nil
	}
	return m
}

// Manager returns the current session manager.
func (r *Runtime) Manager() *selection.Manager {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.manager
}

func (r *Runtime) snapshot() (config.Config, *selection.Manager) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg, r.manager
}

// Run blocks until ctx is canceled.
func (r *Runtime) Run(ctx context.Context) error {
	cfg, manager := r.snapshot()

	if cfg.Observability.EnableMetrics {
		go func() {
			err := telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
				Addr:          cfg.Observability.ListenAddress,
				EnableMetrics: true,
				Registry:      r.registry,
			}, r.logger)
			if err != nil {
				r.logger.Warn("observability server exited", zap.Error(err))
			}
		}()
	}

	if _, err := manager.Reconcile(ctx, cfg.UserID); err != nil {
		r.logger.Warn("initial reconcile failed", zap.Error(err))
	}

	ticker := time.NewTicker(cfg.PollInterval())
	defer ticker.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		r.logger.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Close()
		if err := watcher.Add(filepath.Dir(r.configPath)); err != nil {
			r.logger.Warn("config watcher add failed", zap.String("path", r.configPath), zap.Error(err))
		}
	}

	var reloadTimer *time.Timer
	for {
		select {
		case <-ctx.Done():
			r.closeStore()
			return ctx.Err()
		case <-ticker.C:
			cfg, manager = r.snapshot()
			if _, err := manager.Reconcile(ctx, cfg.UserID); err != nil {
				r.logger.Warn("periodic reconcile failed", zap.Error(err))
			}
		case err := <-watcherErrors(watcher):
			if err != nil {
				r.logger.Warn("config watcher error", zap.Error(err))
			}
		case event := <-watcherEvents(watcher):
			if filepath.Clean(event.Name) != filepath.Clean(r.configPath) {
				continue
			}
			if reloadTimer == nil {
				reloadTimer = time.NewTimer(configReloadDebounce)
				continue
			}
			if !reloadTimer.Stop() {
				select {
				case <-reloadTimer.C:
				default:
				}
			}
			reloadTimer.Reset(configReloadDebounce)
		case <-timerChan(reloadTimer):
			reloadTimer = nil
			if err := r.reloadConfig(ctx); err != nil {
				r.logger.Warn("config reload failed", zap.Error(err))
			}
		}
	}
}

func (r *Runtime) reloadConfig(ctx context.Context) error {
	cfg, err := r.loader.Load(r.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}
	r.logger.Info("config reloaded", zap.String("path", r.configPath))

	newCfg, manager := r.snapshot()
	if _, err := manager.Reconcile(ctx, newCfg.UserID); err != nil {
		r.logger.Warn("post-reload reconcile failed", zap.Error(err))
	}
	return nil
}

func (r *Runtime) closeStore() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.store != nil {
		_ = r.store.Close()
		r.store = nil
	}
}

func watcherEvents(watcher *fsnotify.Watcher) <-chan fsnotify.Event {
	if watcher == nil {
		return nil
	}
	return watcher.Events
}

func watcherErrors(watcher *fsnotify.Watcher) <-chan error {
	if watcher == nil {
		return nil
	}
	return watcher.Errors
}

func timerChan(timer *time.Timer) <-chan time.Time {
	if timer == nil {
		return nil
	}
	return timer.C
}
