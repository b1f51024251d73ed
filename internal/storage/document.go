package storage

import (
	"fmt"
	"regexp"

	json "github.com/goccy/go-json"
)

// Document is a stored record. Seq is the store-assigned insertion sequence
// used to break ordering ties.
type Document struct {
	ID     string         `json:"id"`
	Seq    int64          `json:"seq"`
	Fields map[string]any `json:"fields"`
}

// Direction is a sort direction
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Filter is an exact-match condition on a top-level field
type Filter struct {
	Field string
	Value any
}

// Query selects documents from one collection. Results are ordered by
// OrderBy and then by insertion sequence, both in Direction.
type Query struct {
	Filters   []Filter
	OrderBy   string
	Direction Direction
}

// Where returns a query with a single equality filter.
func Where(field string, value any) Query {
	return Query{Filters: []Filter{{Field: field, Value: value}}}
}

// Sorted returns a copy of q ordered by field.
func (q Query) Sorted(field string, dir Direction) Query {
	q.OrderBy = field
	q.Direction = dir
	return q
}

// OpKind identifies a batch operation
type OpKind int

const (
	OpUpdate OpKind = iota
	OpDelete
)

func (k OpKind) String() string {
	if k == OpDelete {
		return "delete"
	}
	return "update"
}

// Op is a single mutation inside a Batch
type Op struct {
	Kind       OpKind
	Collection string
	ID         string
	Fields     map[string]any
}

// Batch is a set of mutations committed as one unit
type Batch struct {
	Ops []Op
}

// Update queues a field update of collection/id.
func (b *Batch) Update(collection, id string, fields map[string]any) {
	b.Ops = append(b.Ops, Op{Kind: OpUpdate, Collection: collection, ID: id, Fields: fields})
}

// Delete queues removal of collection/id.
func (b *Batch) Delete(collection, id string) {
	b.Ops = append(b.Ops, Op{Kind: OpDelete, Collection: collection, ID: id})
}

// Len returns the number of queued operations.
func (b *Batch) Len() int {
	return len(b.Ops)
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateField rejects field names that cannot be addressed safely in a
// JSON path or SQL expression.
func ValidateField(name string) error {
	if !fieldNamePattern.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}

// ValidateQuery checks every field name used by q.
func ValidateQuery(q Query) error {
	for _, f := range q.Filters {
		if err := ValidateField(f.Field); err != nil {
			return err
		}
	}
	if q.OrderBy != "" {
		return ValidateField(q.OrderBy)
	}
	return nil
}

// EncodeFields converts v (a struct or map) into document fields. The id
// key is dropped since identifiers live outside the field set.
func EncodeFields(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	delete(fields, "id")
	return fields, nil
}

// DecodeFields fills v from document fields.
func DecodeFields(fields map[string]any, v any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}

// MarshalFields serializes fields for storage in a text or JSON column.
func MarshalFields(fields map[string]any) ([]byte, error) {
	return json.Marshal(fields)
}

// UnmarshalFields parses a stored JSON object.
func UnmarshalFields(data []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	return fields, nil
}

// MergeFields returns a copy of base with updates applied on top.
func MergeFields(base, updates map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(updates))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range updates {
		merged[k] = v
	}
	return merged
}
