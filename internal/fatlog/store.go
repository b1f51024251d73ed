// Package fatlog records dated weight, body-fat and mood observations.
// Entries are append-only.
package fatlog

import (
	"context"
	"math"
	"time"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/units"
	"github.com/julianstephens/wishlog/internal/utils"
)

// NewLog holds the caller-supplied fields of a log entry. Weight is in Unit.
type NewLog struct {
	Date    string
	BodyFat float64
	Weight  float64
	Unit    units.Unit
	Mood    models.Mood
	Note    string
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func (n NewLog) Validate() error {
	if !utils.ValidateDate(n.Date) {
		return errors.Validation("date", "%q is not a YYYY-MM-DD date", n.Date)
	}
	if !positiveFinite(n.BodyFat) {
		return errors.Validation("bodyFat", "must be a positive number")
	}
	if !positiveFinite(n.Weight) {
		return errors.Validation("weight", "must be a positive number")
	}
	if n.Unit != units.Pounds && n.Unit != units.Kilograms {
		return errors.Validation("unit", "%q is not lb or kg", n.Unit)
	}
	if !n.Mood.Valid() {
		return errors.Validation("mood", "%q is not a known mood", n.Mood)
	}
	return nil
}

type Store struct {
	db  storage.Provider
	now func() time.Time
}

func NewStore(db storage.Provider) *Store {
	return &Store{db: db, now: time.Now}
}

// List returns the user's logs by date in dir. Same-day entries follow
// insertion order, reversed for Descending.
func (s *Store) List(ctx context.Context, userID string, dir storage.Direction) ([]models.FatLog, error) {
	docs, err := s.db.Query(ctx, constants.CollectionLogs,
		storage.Where("userId", userID).Sorted("date", dir))
	if err != nil {
		return nil, err
	}

	logs := make([]models.FatLog, 0, len(docs))
	for _, doc := range docs {
		var l models.FatLog
		if err := storage.DecodeFields(doc.Fields, &l); err != nil {
			return nil, err
		}
		l.ID = doc.ID
		logs = append(logs, l)
	}
	return logs, nil
}

// Create validates n and stores it with the weight converted to pounds.
func (s *Store) Create(ctx context.Context, userID string, n NewLog) (models.FatLog, error) {
	if n.Unit == "" {
		n.Unit = units.Pounds
	}
	if err := n.Validate(); err != nil {
		return models.FatLog{}, err
	}

	l := models.FatLog{
		UserID:    userID,
		Date:      n.Date,
		BodyFat:   n.BodyFat,
		Weight:    units.ToCanonical(n.Weight, n.Unit),
		Mood:      n.Mood,
		Note:      n.Note,
		CreatedAt: s.now().UTC(),
	}
	fields, err := storage.EncodeFields(l)
	if err != nil {
		return models.FatLog{}, err
	}

	id, err := s.db.Insert(ctx, constants.CollectionLogs, fields)
	if err != nil {
		return models.FatLog{}, err
	}
	l.ID = id
	logger.Debug("Created log", "id", id, "date", l.Date, "weight", l.Weight)
	return l, nil
}
