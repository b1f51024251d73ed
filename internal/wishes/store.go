// Package wishes manages goals: creation, listing, completion and deletion,
// singly or as an atomic batch over a Selection.
package wishes

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/utils"
)

// NewWish holds the caller-supplied fields of a wish.
type NewWish struct {
	Title       string
	Description string
	TargetDate  string
}

// Validate checks field limits. Lengths are counted in characters.
func (n NewWish) Validate() error {
	title := strings.TrimSpace(n.Title)
	if title == "" {
		return errors.Validation("title", "must not be empty")
	}
	if l := utf8.RuneCountInString(title); l > constants.MaxWishTitleLen {
		return errors.Validation("title", "%d characters exceeds the limit of %d", l, constants.MaxWishTitleLen)
	}
	if l := utf8.RuneCountInString(n.Description); l > constants.MaxWishDescriptionLen {
		return errors.Validation("description", "%d characters exceeds the limit of %d", l, constants.MaxWishDescriptionLen)
	}
	if !utils.ValidateDate(n.TargetDate) {
		return errors.Validation("targetDate", "%q is not a YYYY-MM-DD date", n.TargetDate)
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

// List returns the user's wishes by target date, oldest first. Wishes
// sharing a date keep their creation order.
func (s *Store) List(ctx context.Context, userID string) ([]models.Wish, error) {
	docs, err := s.db.Query(ctx, constants.CollectionWishes,
		storage.Where("userId", userID).Sorted("targetDate", storage.Ascending))
	if err != nil {
		return nil, err
	}

	wishes := make([]models.Wish, 0, len(docs))
	for _, doc := range docs {
		var w models.Wish
		if err := storage.DecodeFields(doc.Fields, &w); err != nil {
			return nil, err
		}
		w.ID = doc.ID
		wishes = append(wishes, w)
	}
	return wishes, nil
}

// Create validates and stores a new, not yet done wish.
func (s *Store) Create(ctx context.Context, userID string, n NewWish) (models.Wish, error) {
	if err := n.Validate(); err != nil {
		return models.Wish{}, err
	}

	w := models.Wish{
		UserID:      userID,
		Title:       strings.TrimSpace(n.Title),
		Description: n.Description,
		TargetDate:  n.TargetDate,
		CreatedAt:   s.now().UTC(),
		IsDone:      false,
	}
	fields, err := storage.EncodeFields(w)
	if err != nil {
		return models.Wish{}, err
	}

	id, err := s.db.Insert(ctx, constants.CollectionWishes, fields)
	if err != nil {
		return models.Wish{}, err
	}
	w.ID = id
	logger.Debug("Created wish", "id", id, "targetDate", w.TargetDate)
	return w, nil
}

// MarkDone completes a wish. Completing a done wish changes nothing.
func (s *Store) MarkDone(ctx context.Context, id string) error {
	return s.db.Update(ctx, constants.CollectionWishes, id, map[string]any{"isDone": true})
}

// Delete permanently removes a wish.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, constants.CollectionWishes, id)
}

// MarkDoneBatch completes every selected wish in one atomic commit. The
// selection is cleared whether or not the commit succeeds.
func (s *Store) MarkDoneBatch(ctx context.Context, sel *Selection) error {
	return s.commitSelection(ctx, "mark done", sel, func(b *storage.Batch, id string) {
		b.Update(constants.CollectionWishes, id, map[string]any{"isDone": true})
	})
}

// DeleteBatch removes every selected wish in one atomic commit. The
// selection is cleared whether or not the commit succeeds.
func (s *Store) DeleteBatch(ctx context.Context, sel *Selection) error {
	return s.commitSelection(ctx, "delete", sel, func(b *storage.Batch, id string) {
		b.Delete(constants.CollectionWishes, id)
	})
}

func (s *Store) commitSelection(ctx context.Context, op string, sel *Selection, queue func(*storage.Batch, string)) error {
	defer sel.Clear()
	if sel.Len() == 0 {
		return nil
	}

	var b storage.Batch
	for _, id := range sel.IDs() {
		queue(&b, id)
	}

	if err := s.db.Commit(ctx, b); err != nil {
		logger.Warn("Batch failed", "op", op, "size", b.Len(), "error", err)
		if errors.IsBatchFailure(err) {
			return err
		}
		return &errors.BatchFailure{Op: op, Size: b.Len(), Err: err}
	}
	logger.Debug("Batch committed", "op", op, "size", b.Len())
	return nil
}
