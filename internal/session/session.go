// Package session keeps the last authenticated identity across restarts of
// the client. The stored identity is a read-only snapshot; the user store
// remains the source of truth.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"movieBrowser/models"
)

// Session is the persisted login: the identity and its bearer token.
type Session struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Holder persists at most one session.
type Holder interface {
	// Get returns the stored session, or nil when nobody is logged in.
	Get() (*Session, error)
	Set(s Session) error
	Clear() error
}

// FileHolder stores the session as a JSON blob in a single file.
type FileHolder struct {
	path string
	mu   sync.Mutex
}

func NewFileHolder(path string) *FileHolder {
	return &FileHolder{path: filepath.Clean(path)}
}

func (h *FileHolder) Get() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", h.path, err)
	}
	return &s, nil
}

func (h *FileHolder) Set(s Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	// Write a sibling file, then rename it over the old one.
	tmp := h.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, h.path)
}

func (h *FileHolder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.Remove(h.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryHolder keeps the session in memory only.
type MemoryHolder struct {
	mu sync.Mutex
	s  *Session
}

func (h *MemoryHolder) Get() (*Session, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.s == nil {
		return nil, nil
	}
	cp := *h.s
	return &cp, nil
}

func (h *MemoryHolder) Set(s Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = &s
	return nil
}

func (h *MemoryHolder) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.s = nil
	return nil
}
