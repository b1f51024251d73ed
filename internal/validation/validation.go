package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingOwner       ConflictType = "missing_owner"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFieldLimit         ConflictType = "field_limit"
	ConflictInvalidMeasurement ConflictType = "invalid_measurement"
	ConflictUnknownMood        ConflictType = "unknown_mood"
	ConflictSameDayMoods       ConflictType = "same_day_moods"
	ConflictMalformed          ConflictType = "malformed"
)

// Conflict represents a problem detected in stored wishes or logs
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	IDs         []string // Documents involved
	Warning     bool     // Legal but worth knowing about
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors returns true if any conflict is more than a warning
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if !c.Warning {
			return true
		}
	}
	return false
}

// Merge appends other's conflicts to vr.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var sb strings.Builder
	sb.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		prefix := "-"
		if c.Warning {
			prefix = "- (warning)"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", prefix, c.Description))
	}
	return sb.String()
}

// Validator checks stored wishes and log entries against the field
// constraints enforced on write.
type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateWishes checks wishes for missing owners, field limits and
// malformed target dates.
func (v *Validator) ValidateWishes(wishes []models.Wish) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	for _, w := range wishes {
		if w.UserID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingOwner,
				Description: fmt.Sprintf("Wish %q has no owner", w.Title),
				IDs:         []string{w.ID},
			})
		}

		title := strings.TrimSpace(w.Title)
		if title == "" || utf8.RuneCountInString(title) > constants.MaxWishTitleLen {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFieldLimit,
				Description: fmt.Sprintf("Wish %s has a title outside 1-%d characters: %q", w.ID, constants.MaxWishTitleLen, w.Title),
				IDs:         []string{w.ID},
			})
		}
		if utf8.RuneCountInString(w.Description) > constants.MaxWishDescriptionLen {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFieldLimit,
				Description: fmt.Sprintf("Wish %q has a description over %d characters", w.Title, constants.MaxWishDescriptionLen),
				IDs:         []string{w.ID},
			})
		}

		if !utils.ValidateDate(w.TargetDate) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Wish %q has invalid target date: %s", w.Title, w.TargetDate),
				IDs:         []string{w.ID},
			})
		}
	}

	return result
}

// ValidateLogs checks log entries for missing owners, malformed dates,
// non-positive measurements and unknown moods. Several moods on one day
// are reported as a warning since the heat-map shows only the last.
func (v *Validator) ValidateLogs(logs []models.FatLog) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	type dayKey struct{ user, date string }
	moodDays := make(map[dayKey][]string)

	for _, l := range logs {
		if l.UserID == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictMissingOwner,
				Description: fmt.Sprintf("Log entry %s has no owner", l.ID),
				Date:        l.Date,
				IDs:         []string{l.ID},
			})
		}

		if !utils.ValidateDate(l.Date) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("Log entry %s has invalid date: %s", l.ID, l.Date),
				IDs:         []string{l.ID},
			})
		}

		if l.Weight <= 0 || l.BodyFat <= 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidMeasurement,
				Description: fmt.Sprintf("Log entry on %s has non-positive values (weight %.1f, body fat %.1f)", l.Date, l.Weight, l.BodyFat),
				Date:        l.Date,
				IDs:         []string{l.ID},
			})
		}

		if !l.Mood.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownMood,
				Description: fmt.Sprintf("Log entry on %s has unknown mood %q", l.Date, l.Mood),
				Date:        l.Date,
				IDs:         []string{l.ID},
			})
		} else if l.Mood != models.MoodNone {
			k := dayKey{l.UserID, l.Date}
			moodDays[k] = append(moodDays[k], l.ID)
		}
	}

	keys := make([]dayKey, 0, len(moodDays))
	for k, ids := range moodDays {
		if len(ids) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].date != keys[j].date {
			return keys[i].date < keys[j].date
		}
		return keys[i].user < keys[j].user
	})
	for _, k := range keys {
		ids := moodDays[k]
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictSameDayMoods,
			Description: fmt.Sprintf("%d moods logged on %s; the heat-map shows the last one", len(ids), k.date),
			Date:        k.date,
			IDs:         ids,
			Warning:     true,
		})
	}

	return result
}
