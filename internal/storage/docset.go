package storage

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/wishlog/internal/errors"
)

// DocumentSet holds collections in process memory. It backs the memory and
// JSON file providers; callers provide their own locking.
type DocumentSet struct {
	Seq         int64                          `json:"seq"`
	Collections map[string]map[string]Document `json:"collections"`
}

// NewDocumentSet returns an empty set.
func NewDocumentSet() *DocumentSet {
	return &DocumentSet{Collections: make(map[string]map[string]Document)}
}

// Clone returns a copy that shares no maps with s.
func (s *DocumentSet) Clone() *DocumentSet {
	clone := &DocumentSet{Seq: s.Seq, Collections: make(map[string]map[string]Document, len(s.Collections))}
	for name, docs := range s.Collections {
		copied := make(map[string]Document, len(docs))
		for id, doc := range docs {
			copied[id] = Document{ID: doc.ID, Seq: doc.Seq, Fields: MergeFields(doc.Fields, nil)}
		}
		clone.Collections[name] = copied
	}
	return clone
}

// Insert stores fields under a new identifier.
func (s *DocumentSet) Insert(collection string, fields map[string]any) (string, error) {
	normalized, err := normalizeFields(fields)
	if err != nil {
		return "", err
	}
	docs, ok := s.Collections[collection]
	if !ok {
		docs = make(map[string]Document)
		s.Collections[collection] = docs
	}
	s.Seq++
	id := uuid.New().String()
	docs[id] = Document{ID: id, Seq: s.Seq, Fields: normalized}
	return id, nil
}

// Query returns matching documents in query order.
func (s *DocumentSet) Query(collection string, q Query) ([]Document, error) {
	if err := ValidateQuery(q); err != nil {
		return nil, err
	}
	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		filters[i] = Filter{Field: f.Field, Value: normalizeValue(f.Value)}
	}

	var results []Document
	for _, doc := range s.Collections[collection] {
		if matches(doc, filters) {
			results = append(results, Document{ID: doc.ID, Seq: doc.Seq, Fields: MergeFields(doc.Fields, nil)})
		}
	}
	SortDocuments(results, q.OrderBy, q.Direction)
	return results, nil
}

// Update merges fields into an existing document.
func (s *DocumentSet) Update(collection, id string, fields map[string]any) error {
	doc, ok := s.Collections[collection][id]
	if !ok {
		return errors.NotFound(collection, id)
	}
	normalized, err := normalizeFields(fields)
	if err != nil {
		return err
	}
	doc.Fields = MergeFields(doc.Fields, normalized)
	s.Collections[collection][id] = doc
	return nil
}

// Delete removes a document.
func (s *DocumentSet) Delete(collection, id string) error {
	if _, ok := s.Collections[collection][id]; !ok {
		return errors.NotFound(collection, id)
	}
	delete(s.Collections[collection], id)
	return nil
}

// Apply runs every operation of b against s in order, stopping at the first
// error. before, when set, is called ahead of each operation and may abort
// it. Apply mutates s in place, so atomic callers apply to a Clone.
func (s *DocumentSet) Apply(b Batch, before func(i int, op Op) error) error {
	for i, op := range b.Ops {
		if before != nil {
			if err := before(i, op); err != nil {
				return err
			}
		}
		var err error
		switch op.Kind {
		case OpUpdate:
			err = s.Update(op.Collection, op.ID, op.Fields)
		case OpDelete:
			err = s.Delete(op.Collection, op.ID)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// SortDocuments orders docs by field (when set) and then by insertion
// sequence, reversing both for Descending.
func SortDocuments(docs []Document, field string, dir Direction) {
	sort.SliceStable(docs, func(i, j int) bool {
		c := 0
		if field != "" {
			c = compareValues(docs[i].Fields[field], docs[j].Fields[field])
		}
		if c == 0 {
			c = compareInt(docs[i].Seq, docs[j].Seq)
		}
		if dir == Descending {
			return c > 0
		}
		return c < 0
	})
}

func matches(doc Document, filters []Filter) bool {
	for _, f := range filters {
		v, ok := doc.Fields[f.Field]
		if !ok || compareValues(v, f.Value) != 0 {
			return false
		}
	}
	return true
}

// normalizeFields round-trips fields through JSON so stored values have the
// same types the SQL backends return.
func normalizeFields(fields map[string]any) (map[string]any, error) {
	if fields == nil {
		return make(map[string]any), nil
	}
	return EncodeFields(fields)
}

func normalizeValue(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

// typeRank orders JSON types: null < bool < number < string < other.
func typeRank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case bool:
		return 1
	case float64:
		return 2
	case string:
		return 3
	default:
		return 4
	}
}

func compareValues(a, b any) int {
	a, b = normalizeValue(a), normalizeValue(b)
	ra, rb := typeRank(a), typeRank(b)
	if ra != rb {
		return compareInt(int64(ra), int64(rb))
	}
	switch av := a.(type) {
	case bool:
		bv := b.(bool)
		switch {
		case av == bv:
			return 0
		case !av:
			return -1
		default:
			return 1
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		return strings.Compare(av, b.(string))
	}
	return 0
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
