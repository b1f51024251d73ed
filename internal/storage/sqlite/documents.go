package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/storage"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) loaded() error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	return nil
}

func (s *Store) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	normalized, err := storage.EncodeFields(fields)
	if err != nil {
		return "", err
	}
	data, err := storage.MarshalFields(normalized)
	if err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)",
		collection, id, string(data))
	if err != nil {
		return "", errors.Transient("insert "+collection, err)
	}
	logger.Debug("Inserted document", "collection", collection, "id", id)
	return id, nil
}

// filterArg converts a filter value into the SQL type json_extract yields.
func filterArg(v any) any {
	if b, ok := v.(bool); ok {
		if b {
			return 1
		}
		return 0
	}
	return v
}

func (s *Store) Query(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if err := storage.ValidateQuery(q); err != nil {
		return nil, err
	}

	var sb strings.Builder
	args := []any{collection}
	sb.WriteString("SELECT id, seq, data FROM documents WHERE collection = ?")
	for _, f := range q.Filters {
		sb.WriteString(fmt.Sprintf(" AND json_extract(data, '$.%s') = ?", f.Field))
		args = append(args, filterArg(f.Value))
	}

	dir := "ASC"
	if q.Direction == storage.Descending {
		dir = "DESC"
	}
	sb.WriteString(" ORDER BY ")
	if q.OrderBy != "" {
		sb.WriteString(fmt.Sprintf("json_extract(data, '$.%s') %s, ", q.OrderBy, dir))
	}
	sb.WriteString("seq " + dir)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, errors.Transient("query "+collection, err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var doc storage.Document
		var data string
		if err := rows.Scan(&doc.ID, &doc.Seq, &data); err != nil {
			return nil, errors.Transient("query "+collection, err)
		}
		fields, err := storage.UnmarshalFields([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("corrupt document %s/%s: %w", collection, doc.ID, err)
		}
		doc.Fields = fields
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Transient("query "+collection, err)
	}
	return docs, nil
}

func updateDocument(ctx context.Context, q querier, collection, id string, fields map[string]any) error {
	var data string
	err := q.QueryRowContext(ctx,
		"SELECT data FROM documents WHERE collection = ? AND id = ?",
		collection, id).Scan(&data)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound(collection, id)
		}
		return errors.Transient("update "+collection, err)
	}

	current, err := storage.UnmarshalFields([]byte(data))
	if err != nil {
		return fmt.Errorf("corrupt document %s/%s: %w", collection, id, err)
	}
	updates, err := storage.EncodeFields(fields)
	if err != nil {
		return err
	}
	merged, err := storage.MarshalFields(storage.MergeFields(current, updates))
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx,
		"UPDATE documents SET data = ? WHERE collection = ? AND id = ?",
		string(merged), collection, id); err != nil {
		return errors.Transient("update "+collection, err)
	}
	return nil
}

func deleteDocument(ctx context.Context, q querier, collection, id string) error {
	res, err := q.ExecContext(ctx, "DELETE FROM documents WHERE collection = ? AND id = ?", collection, id)
	if err != nil {
		return errors.Transient("delete "+collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Transient("delete "+collection, err)
	}
	if n == 0 {
		return errors.NotFound(collection, id)
	}
	return nil
}

func (s *Store) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	if err := s.loaded(); err != nil {
		return err
	}
	return updateDocument(ctx, s.db, collection, id, fields)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	return deleteDocument(ctx, s.db, collection, id)
}

// Commit applies every operation of b inside one transaction.
func (s *Store) Commit(ctx context.Context, b storage.Batch) error {
	if err := s.loaded(); err != nil {
		return err
	}
	fail := func(err error) error {
		return &errors.BatchFailure{Op: "commit", Size: b.Len(), Err: err}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fail(errors.Transient("begin transaction", err))
	}
	defer func() { _ = tx.Rollback() }()

	for _, op := range b.Ops {
		var err error
		switch op.Kind {
		case storage.OpUpdate:
			err = updateDocument(ctx, tx, op.Collection, op.ID, op.Fields)
		case storage.OpDelete:
			err = deleteDocument(ctx, tx, op.Collection, op.ID)
		}
		if err != nil {
			return fail(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fail(errors.Transient("commit transaction", err))
	}
	logger.Debug("Committed batch", "operations", b.Len())
	return nil
}
