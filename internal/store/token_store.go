package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"signin/internal/domain"
)

const (
	tokensFile       = "tokens.json"
	sealedTokensFile = "tokens.json.enc"
)

// FileTokenStore persists key/value pairs as a JSON map on disk.
//
// When a passphrase is configured the map is sealed and written to
// tokens.json.enc instead of tokens.json.
type FileTokenStore struct {
	dir    string
	sealer *sealer
	mu     sync.Mutex
}

// FileOption configures a FileTokenStore.
type FileOption func(*FileTokenStore)

// WithPassphrase seals the token file with a key derived from passphrase.
// An empty passphrase leaves the file in plain JSON.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileTokenStore) {
		if passphrase == "" {
			s.sealer = nil
			return
		}
		s.sealer = &sealer{passphrase: []byte(passphrase), params: defaultKDFParams()}
	}
}

// withKDFParams overrides the scrypt cost; tests use it to keep sealing fast.
func withKDFParams(p kdfParams) FileOption {
	return func(s *FileTokenStore) {
		if s.sealer != nil {
			s.sealer.params = p
		}
	}
}

// NewFileTokenStore returns a FileTokenStore rooted at dir.
func NewFileTokenStore(dir string, opts ...FileOption) *FileTokenStore {
	s := &FileTokenStore{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the file the store reads and writes.
func (s *FileTokenStore) Path() string {
	if s.sealer != nil {
		return filepath.Join(s.dir, sealedTokensFile)
	}
	return filepath.Join(s.dir, tokensFile)
}

// Save stores value under key, replacing any previous value.
func (s *FileTokenStore) Save(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.NewStorageFailure("Could not read the saved session", err)
	}
	m[key] = value
	if err := s.store(m); err != nil {
		return domain.NewStorageFailure("Could not save the session", err)
	}
	return nil
}

// Read returns the value stored under key and whether it was present.
func (s *FileTokenStore) Read(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return "", false, domain.NewStorageFailure("Could not read the saved session", err)
	}
	v, ok := m[key]
	return v, ok, nil
}

// Clear removes key. The file is deleted once the map is empty.
func (s *FileTokenStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return domain.NewStorageFailure("Could not read the saved session", err)
	}
	if _, ok := m[key]; !ok {
		return nil
	}
	delete(m, key)
	if len(m) == 0 {
		err = removeFile(s.Path())
	} else {
		err = s.store(m)
	}
	if err != nil {
		return domain.NewStorageFailure("Could not clear the session", err)
	}
	return nil
}

func (s *FileTokenStore) load() (map[string]string, error) {
	m := make(map[string]string)
	b, found, err := readFile(s.Path())
	if err != nil || !found {
		return m, err
	}
	if s.sealer != nil {
		if b, err = s.sealer.open(b); err != nil {
			return nil, err
		}
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(s.Path()), err)
	}
	return m, nil
}

func (s *FileTokenStore) store(m map[string]string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if s.sealer != nil {
		if b, err = s.sealer.seal(b); err != nil {
			return err
		}
	}
	return writeFile(s.Path(), b, 0o600)
}

// Compile-time assertion that FileTokenStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*FileTokenStore)(nil)
