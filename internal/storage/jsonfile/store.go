package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/storage"
)

const fileVersion = 1

type fileLayout struct {
	Version int `json:"version"`
	*storage.DocumentSet
}

// Store keeps every collection in a single JSON file, rewritten on each
// mutation. A batch is applied to a copy and only becomes visible once the
// file has been replaced.
type Store struct {
	mu   sync.Mutex
	path string
	set  *storage.DocumentSet
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	set := storage.NewDocumentSet()
	if err := s.save(set); err != nil {
		return err
	}
	s.set = set
	return nil
}

func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run '%s init' first", constants.AppName)
		}
		return errors.Transient("failed to read storage", err)
	}

	layout := fileLayout{DocumentSet: storage.NewDocumentSet()}
	if err := json.Unmarshal(data, &layout); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if layout.Version > fileVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade the application", layout.Version, fileVersion)
	}
	if layout.Collections == nil {
		layout.Collections = make(map[string]map[string]storage.Document)
	}

	s.set = layout.DocumentSet
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// save writes set to a temporary file and renames it over the store file.
func (s *Store) save(set *storage.DocumentSet) error {
	data, err := json.MarshalIndent(fileLayout{Version: fileVersion, DocumentSet: set}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Transient("failed to write storage", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Transient("failed to write storage", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Transient("failed to write storage", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		return errors.Transient("failed to write storage", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return errors.Transient("failed to write storage", err)
	}
	return nil
}

// mutate applies fn to a copy of the current set and persists it.
func (s *Store) mutate(ctx context.Context, fn func(*storage.DocumentSet) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return fmt.Errorf("storage not loaded")
	}

	next := s.set.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.save(next); err != nil {
		return err
	}
	s.set = next
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	var id string
	err := s.mutate(ctx, func(set *storage.DocumentSet) error {
		var err error
		id, err = set.Insert(collection, fields)
		return err
	})
	if err != nil {
		return "", err
	}
	logger.Debug("Inserted document", "collection", collection, "id", id)
	return id, nil
}

func (s *Store) Query(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return s.set.Query(collection, q)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	return s.mutate(ctx, func(set *storage.DocumentSet) error {
		return set.Update(collection, id, fields)
	})
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return s.mutate(ctx, func(set *storage.DocumentSet) error {
		return set.Delete(collection, id)
	})
}

func (s *Store) Commit(ctx context.Context, b storage.Batch) error {
	err := s.mutate(ctx, func(set *storage.DocumentSet) error {
		return set.Apply(b, nil)
	})
	if err != nil {
		return &errors.BatchFailure{Op: "commit", Size: b.Len(), Err: err}
	}
	return nil
}
