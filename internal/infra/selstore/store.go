package selstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"wunderadmin/internal/domain"
)

const (
	keyPrefix     = "wunder_tool_selection:"
	anonymousUser = "anonymous"
)

// Store persists per-user tool selections in a local bbolt file. Entries are
// last-write-wins across processes; bbolt's own locking is the only
// coordination. Stale entries for past users accumulate until Delete is
// called externally.
type Store struct {
	mu     sync.RWMutex
	db     *bolt.DB
	logger *zap.Logger
	closed bool
}

func Open(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, domain.E(domain.CodeInvalidArgument, "selstore.Open", "store path is required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store dir: %w", err)
	}
	options := &bolt.Options{Timeout: time.Second}
	db, err := bolt.Open(trimmed, 0o600, options)
	if err != nil {
		return nil, fmt.Errorf("open selection db: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, logger: logger.Named("selstore")}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// Get loads the cached selection for userID. A missing or malformed entry
// reads as "no cache" without an error; reconciliation falls back to its
// cold-start default in that case.
func (s *Store) Get(userID string) (*domain.CachedSelection, bool, error) {
	var raw []byte
	err := s.view(func(tx *bolt.Tx) error {
		bucket := selectionsBucket(tx)
		if bucket == nil {
			return fmt.Errorf("missing selections bucket")
		}
		if value := bucket.Get([]byte(storageKey(userID))); value != nil {
			raw = append([]byte(nil), value...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if raw == nil {
		return nil, false, nil
	}
	cached, ok := decodeCached(raw)
	if !ok {
		s.logger.Warn("discarding malformed selection cache", zap.String("user", displayUser(userID)))
		return nil, false, nil
	}
	return cached, true, nil
}

// Put overwrites the cached selection for userID.
func (s *Store) Put(userID string, cached domain.CachedSelection) error {
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode selection cache: %w", err)
	}
	return s.update(func(tx *bolt.Tx) error {
		bucket := selectionsBucket(tx)
		if bucket == nil {
			return fmt.Errorf("missing selections bucket")
		}
		return bucket.Put([]byte(storageKey(userID)), data)
	})
}

// Delete removes the cached selection for userID.
func (s *Store) Delete(userID string) error {
	return s.update(func(tx *bolt.Tx) error {
		bucket := selectionsBucket(tx)
		if bucket == nil {
			return fmt.Errorf("missing selections bucket")
		}
		return bucket.Delete([]byte(storageKey(userID)))
	})
}

func (s *Store) view(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return s.db.View(fn)
}

func (s *Store) update(fn func(*bolt.Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrStoreClosed
	}
	return s.db.Update(fn)
}

// decodeCached accepts the current object shape and the legacy plain-array
// shape, where known defaults to the selected list itself.
func decodeCached(raw []byte) (*domain.CachedSelection, bool) {
	var cached domain.CachedSelection
	if err := json.Unmarshal(raw, &cached); err == nil {
		return &cached, true
	}
	var legacy []string
	if err := json.Unmarshal(raw, &legacy); err == nil {
		return &domain.CachedSelection{
			Selected: legacy,
			Known:    append([]string(nil), legacy...),
		}, true
	}
	return nil, false
}

func storageKey(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return keyPrefix + anonymousUser
	}
	return keyPrefix + userID
}

func displayUser(userID string) string {
	if strings.TrimSpace(userID) == "" {
		return anonymousUser
	}
	return userID
}
