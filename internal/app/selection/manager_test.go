package selection

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wunderadmin/internal/domain"
)

type fetcherFunc func(ctx context.Context, userID string) (domain.Inventory, error)

func (f fetcherFunc) FetchInventory(ctx context.Context, userID string) (domain.Inventory, error) {
	return f(ctx, userID)
}

func staticFetcher(inv domain.Inventory) fetcherFunc {
	return func(context.Context, string) (domain.Inventory, error) {
		return inv, nil
	}
}

type memStore struct {
	mu      sync.Mutex
	entries map[string]domain.CachedSelection
	getErr  error
	putErr  error
}

func newMemStore() *memStore {
	return &memStore{entries: make(map[string]domain.CachedSelection)}
}

func (s *memStore) Get(userID string) (*domain.CachedSelection, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, false, s.getErr
	}
	entry, ok := s.entries[userID]
	if !ok {
		return nil, false, nil
	}
	copied := entry
	return &copied, true, nil
}

func (s *memStore) Put(userID string, cached domain.CachedSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.entries[userID] = cached
	return nil
}

func builtinInventory(names ...string) domain.Inventory {
	inv := domain.NewInventory()
	for _, name := range names {
		inv.Categories[domain.ToolKindBuiltin] = append(inv.Categories[domain.ToolKindBuiltin], domain.ToolDescriptor{Name: name})
	}
	return inv
}

func TestManagerFirstReconcileDefaultsAndPersists(t *testing.T) {
	store := newMemStore()
	manager := NewManager(staticFetcher(builtinInventory("A", "B")), store, Options{})

	state, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, state.Selected.Names())
	require.Equal(t, []string{"A", "B"}, manager.SelectedNames())

	persisted, ok, err := store.Get("u-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"A", "B"}, persisted.Selected)
	require.Equal(t, []string{"A", "B"}, persisted.Known)
}

func TestManagerRestoresFromCache(t *testing.T) {
	store := newMemStore()
	store.entries["u-1"] = domain.CachedSelection{Selected: []string{"A"}, Known: []string{"A", "B"}}
	manager := NewManager(staticFetcher(builtinInventory("A", "B", "C")), store, Options{})

	state, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "C"}, state.Selected.Names())
}

func TestManagerCacheReadFailureFallsBackToDefault(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("quota exceeded")
	manager := NewManager(staticFetcher(builtinInventory("A")), store, Options{})

	state, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, state.Selected.Names())
}

func TestManagerFetchFailureKeepsLastKnownState(t *testing.T) {
	var fail atomic.Bool
	fetcher := fetcherFunc(func(context.Context, string) (domain.Inventory, error) {
		if fail.Load() {
			return domain.Inventory{}, domain.ErrInventoryUnavailable
		}
		return builtinInventory("A", "B"), nil
	})
	manager := NewManager(fetcher, newMemStore(), Options{})

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)

	fail.Store(true)
	state, err := manager.Reconcile(context.Background(), "u-1")
	require.ErrorIs(t, err, domain.ErrInventoryUnavailable)
	require.Equal(t, []string{"A", "B"}, state.Selected.Names())
	require.NotEmpty(t, state.Inventory.AllNames())
}

func TestManagerPersistFailureIsSwallowed(t *testing.T) {
	store := newMemStore()
	store.putErr = errors.New("disk full")
	manager := NewManager(staticFetcher(builtinInventory("A")), store, Options{})

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, manager.SelectedNames())
}

func TestManagerToggleMutualExclusionSignalsRerender(t *testing.T) {
	inv := builtinInventory("a2ui", "final_response", "search")
	store := newMemStore()
	manager := NewManager(staticFetcher(inv), store, Options{Policy: domain.SelectionPolicy{
		RichUITool:           "a2ui",
		FinalResponseAliases: []string{"final_response"},
	}})

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)

	full := manager.Toggle("a2ui", true)
	require.True(t, full)
	require.NotContains(t, manager.SelectedNames(), "final_response")

	full = manager.Toggle("search", false)
	require.False(t, full)

	persisted, ok, err := store.Get("u-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotContains(t, persisted.Selected, "search")
}

func TestManagerStaleReconcileDiscardedOnUserSwitch(t *testing.T) {
	release := make(chan struct{})
	fetcher := fetcherFunc(func(_ context.Context, userID string) (domain.Inventory, error) {
		if userID == "alice" {
			<-release
			return builtinInventory("alice_tool"), nil
		}
		return builtinInventory("bob_tool"), nil
	})
	manager := NewManager(fetcher, newMemStore(), Options{})

	errs := make(chan error, 1)
	go func() {
		_, err := manager.Reconcile(context.Background(), "alice")
		errs <- err
	}()

	// Bob takes over while alice's fetch is still in flight.
	require.Eventually(t, func() bool {
		_, err := manager.Reconcile(context.Background(), "bob")
		return err == nil
	}, time.Second, 10*time.Millisecond)

	close(release)
	err := <-errs
	require.ErrorIs(t, err, domain.ErrStaleReconcile)
	require.Equal(t, []string{"bob_tool"}, manager.SelectedNames())
}

func TestManagerResetForcesFirstLoadPolicy(t *testing.T) {
	store := newMemStore()
	manager := NewManager(staticFetcher(builtinInventory("A", "B")), store, Options{})

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	manager.Toggle("B", false)

	manager.Reset()
	require.Empty(t, manager.SelectedNames())
	require.False(t, manager.State().Loaded)

	// The persisted opt-out of B survives the reset via the cache.
	state, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, []string{"A"}, state.Selected.Names())
}

func TestManagerDebouncedReloadCoalescesToggles(t *testing.T) {
	var reloads atomic.Int32
	manager := NewManager(staticFetcher(builtinInventory("A", "B", "C")), newMemStore(), Options{
		ReloadDebounce: 20 * time.Millisecond,
		OnReload:       func() { reloads.Add(1) },
	})

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)

	manager.Toggle("A", false)
	manager.Toggle("B", false)
	manager.Toggle("A", true)

	require.Eventually(t, func() bool {
		return reloads.Load() >= 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), reloads.Load())
}

func TestManagerSubscribeReceivesUpdates(t *testing.T) {
	manager := NewManager(staticFetcher(builtinInventory("A")), newMemStore(), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := manager.Subscribe(ctx)

	_, err := manager.Reconcile(context.Background(), "u-1")
	require.NoError(t, err)

	select {
	case update := <-updates:
		require.Equal(t, []string{"A"}, update.Selected)
	case <-time.After(time.Second):
		t.Fatal("no update received")
	}
}
