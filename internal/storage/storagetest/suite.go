// Package storagetest holds behaviour checks shared by every storage.Provider.
package storagetest

import (
	"context"
	"testing"

	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/storage"
)

// Run exercises p against the Provider contract. p must be ready for use
// and empty.
func Run(t *testing.T, p storage.Provider) {
	t.Helper()
	ctx := context.Background()

	t.Run("filter and order", func(t *testing.T) {
		insert := func(user, date string, done bool) string {
			t.Helper()
			id, err := p.Insert(ctx, "entries", map[string]any{"userId": user, "date": date, "isDone": done, "weight": 180})
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			return id
		}
		a := insert("u1", "2025-01-02", false)
		b := insert("u1", "2025-01-01", true)
		c := insert("u1", "2025-01-02", false)
		insert("u2", "2025-01-01", false)

		asc, err := p.Query(ctx, "entries", storage.Where("userId", "u1").Sorted("date", storage.Ascending))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		assertIDs(t, "ascending", asc, b, a, c)

		desc, err := p.Query(ctx, "entries", storage.Where("userId", "u1").Sorted("date", storage.Descending))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		assertIDs(t, "descending", desc, c, a, b)

		done, err := p.Query(ctx, "entries", storage.Query{Filters: []storage.Filter{
			{Field: "userId", Value: "u1"},
			{Field: "isDone", Value: true},
		}})
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		assertIDs(t, "isDone filter", done, b)

		heavy, err := p.Query(ctx, "entries", storage.Where("weight", 180))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(heavy) != 4 {
			t.Errorf("numeric filter matched %d documents, want 4", len(heavy))
		}

		none, err := p.Query(ctx, "missing", storage.Query{})
		if err != nil {
			t.Fatalf("Query() on empty collection error = %v", err)
		}
		if len(none) != 0 {
			t.Errorf("empty collection returned %d documents", len(none))
		}
	})

	t.Run("rejects unsafe field names", func(t *testing.T) {
		if _, err := p.Query(ctx, "entries", storage.Where("a') OR 1=1 --", "x")); err == nil {
			t.Error("Query() accepted an unsafe field name")
		}
	})

	t.Run("update merges fields", func(t *testing.T) {
		id, err := p.Insert(ctx, "notes", map[string]any{"title": "Bike", "isDone": false})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if err := p.Update(ctx, "notes", id, map[string]any{"isDone": true}); err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		docs, err := p.Query(ctx, "notes", storage.Query{})
		if err != nil || len(docs) != 1 {
			t.Fatalf("Query() = %v, %v", docs, err)
		}
		if docs[0].Fields["title"] != "Bike" || docs[0].Fields["isDone"] != true {
			t.Errorf("fields after update = %v", docs[0].Fields)
		}

		if err := p.Update(ctx, "notes", "nope", map[string]any{"isDone": true}); !errors.IsNotFound(err) {
			t.Errorf("Update() missing id error = %v, want NotFoundError", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		id, err := p.Insert(ctx, "trash", map[string]any{"title": "x"})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if err := p.Delete(ctx, "trash", id); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if err := p.Delete(ctx, "trash", id); !errors.IsNotFound(err) {
			t.Errorf("second Delete() error = %v, want NotFoundError", err)
		}
	})

	t.Run("batch commits all", func(t *testing.T) {
		var ids []string
		for i := 0; i < 3; i++ {
			id, err := p.Insert(ctx, "batch", map[string]any{"isDone": false})
			if err != nil {
				t.Fatalf("Insert() error = %v", err)
			}
			ids = append(ids, id)
		}
		var b storage.Batch
		b.Update("batch", ids[0], map[string]any{"isDone": true})
		b.Update("batch", ids[1], map[string]any{"isDone": true})
		b.Delete("batch", ids[2])
		if err := p.Commit(ctx, b); err != nil {
			t.Fatalf("Commit() error = %v", err)
		}
		docs, err := p.Query(ctx, "batch", storage.Where("isDone", true))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		assertIDs(t, "after commit", docs, ids[0], ids[1])
	})

	t.Run("batch with missing id applies nothing", func(t *testing.T) {
		keep, err := p.Insert(ctx, "atomic", map[string]any{"isDone": false})
		if err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		var b storage.Batch
		b.Update("atomic", keep, map[string]any{"isDone": true})
		b.Delete("atomic", "does-not-exist")

		err = p.Commit(ctx, b)
		if !errors.IsBatchFailure(err) || !errors.IsNotFound(err) {
			t.Fatalf("Commit() error = %v, want BatchFailure wrapping NotFoundError", err)
		}
		docs, err := p.Query(ctx, "atomic", storage.Where("isDone", true))
		if err != nil {
			t.Fatalf("Query() error = %v", err)
		}
		if len(docs) != 0 {
			t.Errorf("failed batch left %d updated documents", len(docs))
		}
	})
}

func assertIDs(t *testing.T, label string, docs []storage.Document, want ...string) {
	t.Helper()
	if len(docs) != len(want) {
		t.Fatalf("%s: got %d documents, want %d", label, len(docs), len(want))
	}
	for i, id := range want {
		if docs[i].ID != id {
			t.Errorf("%s: position %d = %s, want %s", label, i, docs[i].ID, id)
		}
	}
}
