package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// The CLI runs one process per command, so the session outlives a process
// only through this file. A missing file simply means anonymous.

// Load reads a persisted session. Absent file yields an anonymous session.
func Load(path string) (Session, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Anonymous(), nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to read session file: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, fmt.Errorf("failed to parse session file: %w", err)
	}
	return s, nil
}

// Save persists the session for later processes.
func Save(path string, s Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create session dir: %w", err)
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}

// Discard removes the persisted session. Removing an absent file is fine.
func Discard(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
