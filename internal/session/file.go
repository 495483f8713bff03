package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore keeps the session snapshot in a JSON file under the user's
// config directory. File mode 0600: the snapshot holds live tokens.
type FileStore struct {
	path string
}

// DefaultPath resolves the snapshot location, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "saglikhep", "session.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "saglikhep", "session.json")
}

// NewFileStore builds a file-backed snapshot store at path (empty
// selects DefaultPath).
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = DefaultPath()
	}
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
