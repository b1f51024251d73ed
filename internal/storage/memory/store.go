// Package memory provides an in-process document store. Nothing is
// persisted; it is intended for tests and embedding.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/storage"
)

type Store struct {
	mu        sync.Mutex
	set       *storage.DocumentSet
	failAfter int
}

func NewStore() *Store {
	return &Store{set: storage.NewDocumentSet(), failAfter: -1}
}

// FailAfter makes the next Commit fail once n of its operations have been
// applied. A negative n disables the fault.
func (s *Store) FailAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAfter = n
}

func (s *Store) Init() error { return nil }
func (s *Store) Load() error { return nil }
func (s *Store) Close() error { return nil }
func (s *Store) GetConfigPath() string { return "memory" }

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Insert(collection, fields)
}

func (s *Store) Query(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Query(collection, q)
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Update(collection, id, fields)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Delete(collection, id)
}

func (s *Store) Commit(ctx context.Context, b storage.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	failAfter := s.failAfter
	s.failAfter = -1

	next := s.set.Clone()
	err := next.Apply(b, func(i int, op storage.Op) error {
		if failAfter >= 0 && i >= failAfter {
			return errors.Transient("memory commit", fmt.Errorf("injected failure at operation %d", i))
		}
		return nil
	})
	if err != nil {
		return &errors.BatchFailure{Op: "commit", Size: b.Len(), Err: err}
	}
	s.set = next
	return nil
}
