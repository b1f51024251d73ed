package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/storage"
)

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
		"INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)",
		collection, id, string(data))
	if err != nil {
		return "", errors.Transient("insert "+collection, err)
	}
	logger.Debug("Inserted document", "collection", collection, "id", id)
	return id, nil
}

// textValue renders v the way the ->> operator renders the stored JSON value.
func textValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// buildQuery renders q as SQL with $n placeholders.
func buildQuery(collection string, q storage.Query) (string, []any) {
	var sb strings.Builder
	args := []any{collection}
	sb.WriteString("SELECT id, seq, data FROM documents WHERE collection = $1")
	for _, f := range q.Filters {
		args = append(args, textValue(f.Value))
		sb.WriteString(fmt.Sprintf(" AND data->>'%s' = $%d", f.Field, len(args)))
	}

	dir := "ASC"
	if q.Direction == storage.Descending {
		dir = "DESC"
	}
	sb.WriteString(" ORDER BY ")
	if q.OrderBy != "" {
		sb.WriteString(fmt.Sprintf("data->'%s' %s, ", q.OrderBy, dir))
	}
	sb.WriteString("seq " + dir)
	return sb.String(), args
}

func (s *Store) Query(ctx context.Context, collection string, q storage.Query) ([]storage.Document, error) {
	if err := s.loaded(); err != nil {
		return nil, err
	}
	if err := storage.ValidateQuery(q); err != nil {
		return nil, err
	}

	query, args := buildQuery(collection, q)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Transient("query "+collection, err)
	}
	defer rows.Close()

	var docs []storage.Document
	for rows.Next() {
		var doc storage.Document
		var data []byte
		if err := rows.Scan(&doc.ID, &doc.Seq, &data); err != nil {
			return nil, errors.Transient("query "+collection, err)
		}
		fields, err := storage.UnmarshalFields(data)
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
	updates, err := storage.EncodeFields(fields)
	if err != nil {
		return err
	}
	patch, err := storage.MarshalFields(updates)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx,
		"UPDATE documents SET data = data || $1::jsonb WHERE collection = $2 AND id = $3",
		string(patch), collection, id)
	if err != nil {
		return errors.Transient("update "+collection, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Transient("update "+collection, err)
	}
	if n == 0 {
		return errors.NotFound(collection, id)
	}
	return nil
}

func deleteDocument(ctx context.Context, q querier, collection, id string) error {
	var deleted string
	err := q.QueryRowContext(ctx,
		"DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING id",
		collection, id).Scan(&deleted)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return errors.NotFound(collection, id)
		}
		return errors.Transient("delete "+collection, err)
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
