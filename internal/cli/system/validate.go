package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	fmt.Println("Validating wishes and log entries...")
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(strings.TrimSuffix(result.FormatReport(), "\n"))

	// Warnings alone still exit cleanly
	if result.HasErrors() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

// validateStore reads every wish and log entry across all users and runs
// them through the validator. Documents that fail to decode are reported
// as malformed conflicts.
func validateStore(ctx *cli.Context) (validation.ValidationResult, error) {
	v := validation.New()
	result := validation.ValidationResult{Conflicts: []validation.Conflict{}}

	wishDocs, err := ctx.Store.Query(ctx.Ctx, constants.CollectionWishes, storage.Query{})
	if err != nil {
		return result, fmt.Errorf("failed to read wishes: %w", err)
	}
	wishes := make([]models.Wish, 0, len(wishDocs))
	for _, doc := range wishDocs {
		var w models.Wish
		if err := storage.DecodeFields(doc.Fields, &w); err != nil {
			result.Conflicts = append(result.Conflicts, malformed("wish", doc.ID, err))
			continue
		}
		w.ID = doc.ID
		wishes = append(wishes, w)
	}
	result.Merge(v.ValidateWishes(wishes))

	logDocs, err := ctx.Store.Query(ctx.Ctx, constants.CollectionLogs, storage.Query{})
	if err != nil {
		return result, fmt.Errorf("failed to read logs: %w", err)
	}
	logs := make([]models.FatLog, 0, len(logDocs))
	for _, doc := range logDocs {
		var l models.FatLog
		if err := storage.DecodeFields(doc.Fields, &l); err != nil {
			result.Conflicts = append(result.Conflicts, malformed("log entry", doc.ID, err))
			continue
		}
		l.ID = doc.ID
		logs = append(logs, l)
	}
	result.Merge(v.ValidateLogs(logs))

	return result, nil
}

func malformed(kind, id string, err error) validation.Conflict {
	return validation.Conflict{
		Type:        validation.ConflictMalformed,
		Description: fmt.Sprintf("Stored %s %s could not be decoded: %v", kind, id, err),
		IDs:         []string{id},
	}
}
