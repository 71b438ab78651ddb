// Package session is the client's only persistent local state: the logged-in
// user and the saved-job bookmark list, kept in a single JSON file. Readers
// must tolerate a missing or corrupt file and treat it as logged out; writes
// are last-writer-wins with no transactional guarantees.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// User is the stored session identity.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// State is the full content of the session file.
type State struct {
	User      *User    `json:"user"`
	SavedJobs []string `json:"saved_jobs"`
}

// LoggedIn reports whether a usable session identity is present.
func (s State) LoggedIn() bool {
	return s.User != nil && s.User.ID != ""
}

type Store struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func New(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Store{path: path, logger: logger}
}

// Load reads the session state. Absent or corrupt data yields the logged-out
// zero state, never an error.
func (s *Store) Load() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *Store) load() State {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("reading session file", zap.String("path", s.path), zap.Error(err))
		}
		return State{}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		s.logger.Debug("session file is corrupt, treating as logged out",
			zap.String("path", s.path),
			zap.Error(err),
		)
		return State{}
	}

	return state
}

func (s *Store) write(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0o600)
}

// SetUser stores the session identity, keeping the bookmark list.
func (s *Store) SetUser(user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	state.User = user

	return s.write(state)
}

// ClearUser drops the session identity. Called on auth failures before
// sending the user back to login. Bookmarks survive.
func (s *Store) ClearUser() error {
	return s.SetUser(nil)
}

// SaveJob adds a job id to the bookmark list. Idempotent.
func (s *Store) SaveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	for _, saved := range state.SavedJobs {
		if saved == id {
			return nil
		}
	}
	state.SavedJobs = append(state.SavedJobs, id)

	return s.write(state)
}

// UnsaveJob removes a job id from the bookmark list.
func (s *Store) UnsaveJob(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.load()
	kept := state.SavedJobs[:0]
	for _, saved := range state.SavedJobs {
		if saved != id {
			kept = append(kept, saved)
		}
	}
	state.SavedJobs = kept

	return s.write(state)
}

// IsSaved reports whether a job id is bookmarked.
func (s *Store) IsSaved(id string) bool {
	for _, saved := range s.Load().SavedJobs {
		if saved == id {
			return true
		}
	}

	return false
}
