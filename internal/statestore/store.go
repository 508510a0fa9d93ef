package statestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Store persists the tracker aggregate as a single JSON document.
// Callers always load, mutate and save the whole aggregate; concurrent
// writers are not supported.
type Store struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Init writes a fresh empty aggregate with first_run stamped, only if no
// record exists yet. Idempotent across restarts.
func (s *Store) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat state file: %w", err)
	}

	state := NewState()
	state.Statistics.FirstRun = Timestamp(time.Now())
	return s.Save(state)
}

// Load reads the persisted aggregate. A missing or malformed file recovers
// to an empty state rather than failing: the tracker re-learns the unique
// set on the next cycle.
func (s *Store) Load() *State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("failed to read state file, starting empty", zap.Error(err))
		}
		return NewState()
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Warn("corrupt state file, starting empty", zap.Error(err))
		return NewState()
	}

	if state.UniqueFutures == nil {
		state.UniqueFutures = []string{}
	}
	if state.TrackingHistory == nil {
		state.TrackingHistory = []TrackingEvent{}
	}
	return &state
}

// Save atomically overwrites the persisted record with the full serialized
// aggregate (write to a temp file, then rename).
func (s *Store) Save(state *State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}

	return nil
}
