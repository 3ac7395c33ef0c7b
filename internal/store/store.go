package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"pickemleague/internal/models"
)

const (
	usersFile = "users.json"
	picksFile = "picks.json"
)

// Store persists the two league documents as human-readable JSON files
// in a data directory. Every save rewrites the whole document; between
// concurrent requests the last writer wins.
type Store struct {
	dir    string
	logger *zap.SugaredLogger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.SugaredLogger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// LoadUsers returns the account document. A missing or unparsable file
// yields an empty document, never an error.
func (s *Store) LoadUsers() models.UserDocument {
	doc := models.UserDocument{}
	s.load(usersFile, &doc)
	if doc == nil {
		doc = models.UserDocument{}
	}
	return doc
}

// SaveUsers overwrites the account document.
func (s *Store) SaveUsers(doc models.UserDocument) error {
	return s.save(usersFile, doc)
}

// LoadPicks returns the picks document. A missing or unparsable file
// yields an empty document, never an error.
func (s *Store) LoadPicks() models.PickDocument {
	doc := models.PickDocument{}
	s.load(picksFile, &doc)
	if doc == nil {
		doc = models.PickDocument{}
	}
	return doc
}

// SavePicks overwrites the picks document.
func (s *Store) SavePicks(doc models.PickDocument) error {
	return s.save(picksFile, doc)
}

func (s *Store) load(name string, v any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warnf("Failed to read %s, treating as empty: %v", name, err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.logger.Warnf("Corrupt %s, treating as empty: %v", name, err)
	}
}

// save writes the document to a temp file in the same directory and
// renames it over the target, so readers see either the old or the new
// document but never a partial write.
func (s *Store) save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
