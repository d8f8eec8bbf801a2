// Package localstore persists the device-scoped state the original
// frontend kept in browser localStorage: the session token and the
// favorite café ids. One JSON document on disk, read on demand and
// replaced atomically on write; concurrent app instances follow last
// write wins.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const stateFile = "state.json"

// Store is a file-backed key store implementing both ports.CredentialStore
// and ports.FavoriteStore.
type Store struct {
	path string
}

// New creates the state directory if needed and returns a store rooted
// there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{path: filepath.Join(dir, stateFile)}, nil
}

// document is the on-disk shape. Field names match the original
// localStorage keys.
type document struct {
	Token         string   `json:"token,omitempty"`
	FavoriteCafes []string `json:"favoriteCafes,omitempty"`
}

func (s *Store) load() (document, error) {
	var doc document
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read state: %w", err)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode state: %w", err)
	}
	return doc, nil
}

func (s *Store) save(doc document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

// Token returns the stored session token, or "" when none is stored.
func (s *Store) Token() (string, error) {
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

func (s *Store) SetToken(token string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Token = token
	return s.save(doc)
}

func (s *Store) ClearToken() error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.Token = ""
	return s.save(doc)
}

// Favorites returns the stored favorite café ids in insertion order.
func (s *Store) Favorites() ([]string, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.FavoriteCafes, nil
}

func (s *Store) SetFavorites(ids []string) error {
	doc, err := s.load()
	if err != nil {
		return err
	}
	doc.FavoriteCafes = ids
	return s.save(doc)
}
