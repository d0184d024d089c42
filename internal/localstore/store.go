package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Keys the application persists between sessions.
const (
	KeyUser            = "user"
	KeyTrip            = "trip"
	KeyTripFromHistory = "trip_from_history"
	KeyTags            = "tags"
	KeySearchConfig    = "search_config"
)

// PreferredTagsKey is the per-user key for saved travel-style tags.
func PreferredTagsKey(userID int64) string {
	return fmt.Sprintf("preferred_tags_%d", userID)
}

// Store is a file-backed key/value store: one JSON document per key under a
// base directory. The bot serves many chats, so reads and writes are
// serialized here.
type Store struct {
	basePath string
	mu       sync.Mutex
}

// New creates a Store and ensures the base directory exists.
func New(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &Store{basePath: basePath}, nil
}

// sanitizeKey makes a key safe for filenames.
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		" ", "_",
	)
	return replacer.Replace(key)
}

func (s *Store) pathFor(key string) string {
	return filepath.Join(s.basePath, sanitizeKey(key)+".json")
}

// Put stores v under key as indented JSON.
func (s *Store) Put(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal value for %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.pathFor(key), data, 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into out. It reports whether the key
// existed.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	data, err := os.ReadFile(s.pathFor(key))
	s.mu.Unlock()
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %q: %w", key, err)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the value stored under key, if any.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(s.pathFor(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Has reports whether key exists.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := os.Stat(s.pathFor(key))
	return !os.IsNotExist(err)
}
