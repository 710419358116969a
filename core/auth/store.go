package auth

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// State is what a TokenStore keeps between requests.
type State struct {
	Tokens
	User *User `json:"user,omitempty"`
}

// TokenStore persists the access/refresh token pair. Implementations must be safe for concurrent use.
type TokenStore interface {
	Load() State
	Save(State) error
	Clear() error
}

type MemoryStore struct {
	mu    sync.RWMutex
	state State
}

var _ TokenStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return new(MemoryStore)
}

func (s *MemoryStore) Load() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *MemoryStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
	return nil
}

func (s *MemoryStore) Clear() error {
	return s.Save(State{})
}

// FileStore keeps the session in a JSON file so it survives between CLI runs.
// The file is read once; every Save rewrites it.
type FileStore struct {
	path   string
	mu     sync.RWMutex
	loaded bool
	state  State
}

var _ TokenStore = (*FileStore)(nil)

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() State {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.state
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.state = s.read()
		s.loaded = true
	}
	return s.state
}

// read returns an empty State when the file is missing or unreadable.
func (s *FileStore) read() State {
	var st State
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		return st
	}
	if err = json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

func (s *FileStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session directory")
	}
	data, err := json.Marshal(st)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err = ioutil.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session")
	}
	s.state = st
	s.loaded = true
	return nil
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}
	s.loaded = true
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session")
	}
	return nil
}
