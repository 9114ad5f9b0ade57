package selection

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wunderadmin/internal/domain"
	"wunderadmin/internal/infra/telemetry"
)

// InventoryFetcher is the admin API surface the manager consumes.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context, userID string) (domain.Inventory, error)
}

// SelectionStore persists per-user selections. Persistence failures are
// swallowed by the manager; selection keeps working for the session.
type SelectionStore interface {
	Get(userID string) (*domain.CachedSelection, bool, error)
	Put(userID string, cached domain.CachedSelection) error
}

// Update is broadcast to subscribers after every state change.
type Update struct {
	Selected []string
	// FullRerender is set when a toggle crossed the rich-UI /
	// final-response exclusion and more than the toggled checkbox changed.
	FullRerender bool
}

type Options struct {
	Policy         domain.SelectionPolicy
	Logger         *zap.Logger
	Metrics        telemetry.Metrics
	ReloadDebounce time.Duration
	// PromptPanelVisible gates reload scheduling; nil means always visible.
	PromptPanelVisible func() bool
	// OnReload runs once per settled burst of selection changes.
	OnReload func()
}

// Manager owns the selection state of one console session. It is built per
// session and per user context; there is no package-level singleton, so two
// sessions can never bleed selections into each other.
type Manager struct {
	logger    *zap.Logger
	fetcher   InventoryFetcher
	store     SelectionStore
	policy    domain.SelectionPolicy
	metrics   telemetry.Metrics
	scheduler *ReloadScheduler
	sessionID string

	mu         sync.Mutex
	state      domain.SelectionState
	userID     string
	generation uint64

	subsMu sync.Mutex
	subs   map[chan Update]struct{}
}

func NewManager(fetcher InventoryFetcher, store SelectionStore, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.Policy
	if policy.RichUITool == "" && len(policy.FinalResponseAliases) == 0 && len(policy.ExcludedTools) == 0 {
		policy = domain.DefaultSelectionPolicy()
	}
	m := &Manager{
		logger:    logger.Named("selection"),
		fetcher:   fetcher,
		store:     store,
		policy:    policy,
		metrics:   opts.Metrics,
		sessionID: uuid.NewString(),
		state:     domain.NewSelectionState(),
		subs:      make(map[chan Update]struct{}),
	}
	m.scheduler = NewReloadScheduler(opts.ReloadDebounce, opts.PromptPanelVisible, opts.OnReload)
	return m
}

// SessionID identifies this session in logs.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Reconcile fetches the inventory for userID and merges it into the session
// state. Switching to a different userID resets the session to first-load
// policy first. A result that arrives after another switch superseded this
// call is discarded and reported as ErrStaleReconcile; a fetch failure
// leaves the last known state untouched.
func (m *Manager) Reconcile(ctx context.Context, userID string) (domain.SelectionState, error) {
	m.mu.Lock()
	if m.state.Loaded && userID != m.userID {
		m.resetLocked()
	}
	m.userID = userID
	generation := m.generation
	loaded := m.state.Loaded
	m.mu.Unlock()

	var cached *domain.CachedSelection
	if !loaded && m.store != nil {
		entry, ok, err := m.store.Get(userID)
		switch {
		case err != nil:
			m.logger.Warn("selection cache read failed", zap.Error(err))
			m.observeCacheRead(telemetry.CacheReadMiss)
		case ok:
			cached = entry
			m.observeCacheRead(telemetry.CacheReadHit)
		default:
			m.observeCacheRead(telemetry.CacheReadMiss)
		}
	}

	start := time.Now()
	inv, err := m.fetcher.FetchInventory(ctx, userID)
	if err != nil {
		m.observeReconcile(telemetry.ReconcileOutcomeFetchFail, time.Since(start))
		m.logger.Warn("inventory fetch failed",
			zap.String("session", m.sessionID),
			zap.String("user", userID),
			zap.Error(err),
		)
		return m.State(), err
	}

	m.mu.Lock()
	if m.generation != generation || m.userID != userID {
		m.mu.Unlock()
		m.observeReconcile(telemetry.ReconcileOutcomeStale, time.Since(start))
		m.logger.Debug("discarding stale reconcile result",
			zap.String("session", m.sessionID),
			zap.String("user", userID),
		)
		return m.State(), domain.Wrap(domain.CodeFailedPrecond, "selection.Reconcile", domain.ErrStaleReconcile)
	}
	next := domain.ReconcileSelection(m.state, cached, inv, m.policy)
	m.state = next
	m.mu.Unlock()

	m.observeReconcile(telemetry.ReconcileOutcomeApplied, time.Since(start))
	m.persist(userID, next.Snapshot())
	m.scheduleReload()
	m.broadcast(Update{Selected: next.Selected.Names()})
	return m.State(), nil
}

// Toggle adds or removes one tool. The returned flag tells the renderer a
// full panel re-render is needed because the mutual-exclusion rule removed
// tools beyond the toggled one.
func (m *Manager) Toggle(name string, checked bool) (fullRerender bool) {
	m.mu.Lock()
	fullRerender = domain.ApplyToggle(&m.state, name, checked, m.policy)
	snapshot := m.state.Snapshot()
	userID := m.userID
	selected := m.state.Selected.Names()
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ObserveToggle(checked)
	}
	m.persist(userID, snapshot)
	m.scheduleReload()
	m.broadcast(Update{Selected: selected, FullRerender: fullRerender})
	return fullRerender
}

// SelectedNames returns the enabled tool names in selection insertion order.
func (m *Manager) SelectedNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Selected.Names()
}

// State returns an independent snapshot for rendering.
func (m *Manager) State() domain.SelectionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return domain.SelectionState{
		Inventory: m.state.Inventory,
		Selected:  m.state.Selected.Clone(),
		Known:     m.state.Known.Clone(),
		Loaded:    m.state.Loaded,
	}
}

// Reset clears the selection and forces the next Reconcile through
// first-load policy. In-flight reconciles are invalidated.
func (m *Manager) Reset() {
	m.mu.Lock()
	m.resetLocked()
	m.mu.Unlock()
	m.scheduler.Stop()
}

func (m *Manager) resetLocked() {
	m.state = domain.NewSelectionState()
	m.generation++
}

// Subscribe delivers selection updates until ctx is canceled. Slow
// subscribers miss intermediate updates rather than blocking the manager.
func (m *Manager) Subscribe(ctx context.Context) <-chan Update {
	ch := make(chan Update, 1)
	m.subsMu.Lock()
	m.subs[ch] = struct{}{}
	m.subsMu.Unlock()

	go func() {
		<-ctx.Done()
		m.subsMu.Lock()
		delete(m.subs, ch)
		m.subsMu.Unlock()
	}()

	return ch
}

func (m *Manager) broadcast(update Update) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for ch := range m.subs {
		select {
		case ch <- update:
		default:
		}
	}
}

func (m *Manager) persist(userID string, snapshot domain.CachedSelection) {
	if m.store == nil {
		return
	}
	if err := m.store.Put(userID, snapshot); err != nil {
		// Selection still works for the session, just not across reloads.
		m.logger.Warn("selection cache write failed",
			zap.String("session", m.sessionID),
			zap.Error(err),
		)
	}
}

func (m *Manager) scheduleReload() {
	if m.scheduler.Schedule() && m.metrics != nil {
		m.metrics.ObserveReloadScheduled()
	}
}

func (m *Manager) observeReconcile(outcome string, duration time.Duration) {
	if m.metrics != nil {
		m.metrics.ObserveReconcile(outcome, duration)
	}
}

func (m *Manager) observeCacheRead(result string) {
	if m.metrics != nil {
		m.metrics.ObserveCacheRead(result)
	}
}
