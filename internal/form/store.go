package form

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period before a changed state is persisted.
const DefaultDebounce = 500 * time.Millisecond

// Store owns the persisted form state. Saves are coalesced: only a state
// that stays unchanged for the debounce period reaches disk; intermediate
// states are dropped from persistence, never from memory. Persist failures
// are logged and swallowed.
type Store struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending *FormState
	timer   *time.Timer
	closed  bool
}

// StoreOptions configures a Store.
type StoreOptions struct {
	// Debounce overrides DefaultDebounce when positive.
	Debounce time.Duration
	Logger   *zap.Logger
}

// NewStore creates a store persisting to the given file path.
func NewStore(path string, opts StoreOptions) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("form store: path is required")
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{path: path, debounce: debounce, logger: logger}, nil
}

// Load reads the persisted form state, falling back to the seed defaults
// when the file is absent, unparseable, or structurally invalid. It never
// fails: a broken blob is recovered from silently.
func (s *Store) Load() FormState {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("read form state", zap.String("path", s.path), zap.Error(err))
		}
		return SeedState()
	}
	state, err := ParseState(data)
	if err != nil {
		s.logger.Warn("discarding invalid form state", zap.String("path", s.path), zap.Error(err))
		return SeedState()
	}
	return state
}

// Save schedules the state for persistence after the debounce period.
// A newer Save replaces any pending one.
func (s *Store) Save(state FormState) {
	snapshot := state.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.pending = &snapshot
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.flushPending)
}

// Flush writes any pending state immediately.
func (s *Store) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.flushPending()
}

// Close flushes pending state and stops the debounce timer.
func (s *Store) Close() {
	s.Flush()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// Reset replaces the persisted state with a fresh copy of the seed defaults
// and returns it. The write is immediate, not debounced.
func (s *Store) Reset() FormState {
	state := SeedState()
	s.mu.Lock()
	s.pending = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	if err := s.write(state); err != nil {
		s.logger.Warn("persist form state", zap.String("path", s.path), zap.Error(err))
	}
	return state
}

func (s *Store) flushPending() {
	s.mu.Lock()
	state := s.pending
	s.pending = nil
	s.mu.Unlock()
	if state == nil {
		return
	}
	if err := s.write(*state); err != nil {
		s.logger.Warn("persist form state", zap.String("path", s.path), zap.Error(err))
	}
}

// write persists a state blob using a tmp file and atomic rename.
func (s *Store) write(state FormState) error {
	payload, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmpPath := s.path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
