package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmylchreest/daibit/internal/model"
	"github.com/jmylchreest/daibit/internal/theme"
)

// DefaultKey is the storage key holding the serialized state.
const DefaultKey = "daibit-state"

var (
	// ErrNoState is returned by Load when nothing has been saved yet.
	ErrNoState = errors.New("no saved state")
	// ErrCorruptState is returned by Load when the saved entry cannot be decoded.
	ErrCorruptState = errors.New("saved state is corrupt")
)

// Snapshot is a loaded state together with its resolved theme.
type Snapshot struct {
	State *model.State
	Theme theme.Resolved
}

// StateOptions configures a StateStore.
type StateOptions struct {
	Key      string          // Storage key (default: DefaultKey)
	Resolver *theme.Resolver // Theme resolver (default: legacy mapping)
	Logger   *slog.Logger
}

// StateStore reads and writes the application state under one storage key.
type StateStore struct {
	storage  Storage
	key      string
	resolver *theme.Resolver
	logger   *slog.Logger
}

// NewStateStore creates a StateStore on top of storage.
func NewStateStore(storage Storage, opts StateOptions) *StateStore {
	if opts.Key == "" {
		opts.Key = DefaultKey
	}
	if opts.Resolver == nil {
		opts.Resolver = theme.NewResolver(theme.MappingLegacy)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &StateStore{
		storage:  storage,
		key:      opts.Key,
		resolver: opts.Resolver,
		logger:   opts.Logger,
	}
}

// Key returns the storage key in use.
func (s *StateStore) Key() string {
	return s.key
}

// Resolver returns the theme resolver applied on load.
func (s *StateStore) Resolver() *theme.Resolver {
	return s.resolver
}

// SetResolver replaces the theme resolver used for later snapshots.
// A nil resolver is ignored.
func (s *StateStore) SetResolver(r *theme.Resolver) {
	if r != nil {
		s.resolver = r
	}
}

// Load reads and decodes the saved state.
// It returns ErrNoState when the entry is absent or empty, and an error
// wrapping ErrCorruptState when it cannot be decoded or was written by a
// newer schema. Habit and day contents are not validated.
func (s *StateStore) Load() (*Snapshot, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if !ok || raw == "" {
		return nil, ErrNoState
	}

	var state model.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := upgrade(&state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}

	return s.snapshot(&state), nil
}

// LoadOrDefault loads the saved state, falling back to seed() when nothing
// usable is stored. A nil seed uses model.DefaultState. Read failures are
// logged, never returned.
func (s *StateStore) LoadOrDefault(seed func() *model.State) *Snapshot {
	snap, err := s.Load()
	if err == nil {
		return snap
	}

	if errors.Is(err, ErrNoState) {
		s.logger.Debug("no saved state, seeding defaults", "key", s.key)
	} else {
		s.logger.Warn("failed to load state, seeding defaults", "key", s.key, "error", err)
	}

	if seed == nil {
		seed = model.DefaultState
	}
	return s.snapshot(seed())
}

// Resolve wraps a state with its resolved theme without touching storage.
func (s *StateStore) Resolve(state *model.State) *Snapshot {
	return s.snapshot(state)
}

// Save writes state under the store key. Only the accent and background of
// the theme are written; extra top-level fields are written unchanged.
// The caller's state is not modified.
func (s *StateStore) Save(state *model.State) error {
	if state == nil {
		return errors.New("save: nil state")
	}

	clean := *state
	clean.SchemaVersion = model.CurrentSchemaVersion

	data, err := json.Marshal(clean)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

// SaveBestEffort saves state and logs any failure instead of returning it.
// It reports whether the write succeeded.
func (s *StateStore) SaveBestEffort(state *model.State) bool {
	if err := s.Save(state); err != nil {
		s.logger.Warn("failed to save state", "key", s.key, "error", err)
		return false
	}
	return true
}

// Reset removes the saved state.
func (s *StateStore) Reset() error {
	if err := s.storage.RemoveItem(s.key); err != nil {
		return fmt.Errorf("remove %s: %w", s.key, err)
	}
	return nil
}

func (s *StateStore) snapshot(state *model.State) *Snapshot {
	return &Snapshot{
		State: state,
		Theme: s.resolver.Resolve(state.Theme),
	}
}

// upgrade brings a decoded state to CurrentSchemaVersion.
func upgrade(state *model.State) error {
	if state.SchemaVersion > model.CurrentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (max: %d)",
			state.SchemaVersion, model.CurrentSchemaVersion)
	}
	if state.SchemaVersion < 0 {
		return fmt.Errorf("invalid schema version %d", state.SchemaVersion)
	}

	// Version 0: unversioned blob from the browser widget. Same layout,
	// the version field was simply never written.
	if state.SchemaVersion == 0 {
		state.SchemaVersion = 1
	}

	return nil
}
