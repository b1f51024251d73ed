package wishes

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/models"
	wishsvc "github.com/julianstephens/wishlog/internal/wishes"
)

const shortIDLen = 8

type WishAddCmd struct {
	Title       string `arg:"" help:"Short title (up to 20 characters)."`
	Date        string `arg:"" help:"Target date (YYYY-MM-DD)."`
	Description string `short:"d" help:"Optional description (up to 100 characters)."`
}

func (c *WishAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	w, err := ctx.Wishes().Create(ctx.Ctx, userID, wishsvc.NewWish{
		Title:       c.Title,
		Description: c.Description,
		TargetDate:  c.Date,
	})
	if err != nil {
		return fmt.Errorf("failed to add wish: %w", err)
	}

	fmt.Printf("✓ Added wish: %s (ID: %s)\n\n", w.Title, shortID(w.ID))
	return printWishes(ctx, userID)
}

type WishListCmd struct{}

func (c *WishListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	return printWishes(ctx, userID)
}

type WishDoneCmd struct {
	IDs []string `arg:"" name:"id" help:"Wish IDs (or unique prefixes) to mark done."`
}

func (c *WishDoneCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	ids, err := resolveIDs(ctx, userID, c.IDs)
	if err != nil {
		return err
	}

	store := ctx.Wishes()
	if len(ids) == 1 {
		err = store.MarkDone(ctx.Ctx, ids[0])
	} else {
		err = store.MarkDoneBatch(ctx.Ctx, wishsvc.NewSelection(ids...))
	}
	if err != nil {
		return fmt.Errorf("failed to mark wishes done: %w", err)
	}

	fmt.Printf("✓ Marked %d wish(es) done\n\n", len(ids))
	return printWishes(ctx, userID)
}

type WishDeleteCmd struct {
	IDs []string `arg:"" name:"id" help:"Wish IDs (or unique prefixes) to delete."`
	Yes bool     `short:"y" help:"Delete several wishes without asking for confirmation."`
}

func (c *WishDeleteCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	ids, err := resolveIDs(ctx, userID, c.IDs)
	if err != nil {
		return err
	}

	store := ctx.Wishes()
	if len(ids) == 1 {
		if err := store.Delete(ctx.Ctx, ids[0]); err != nil {
			return fmt.Errorf("failed to delete wish: %w", err)
		}
		fmt.Printf("✓ Deleted wish %s\n\n", shortID(ids[0]))
		return printWishes(ctx, userID)
	}

	ok, err := cli.Confirm(
		fmt.Sprintf("Delete %d wishes?", len(ids)),
		"This cannot be undone. A backup is taken first when using SQLite.",
		c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Delete cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := store.DeleteBatch(ctx.Ctx, wishsvc.NewSelection(ids...)); err != nil {
		return fmt.Errorf("failed to delete wishes: %w", err)
	}

	fmt.Printf("✓ Deleted %d wishes\n\n", len(ids))
	return printWishes(ctx, userID)
}

// resolveIDs maps each argument to one of the user's wish IDs, accepting
// any unambiguous prefix. Wishes of other users are never matched.
func resolveIDs(ctx *cli.Context, userID string, args []string) ([]string, error) {
	list, err := ctx.Wishes().List(ctx.Ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}

	ids := make([]string, 0, len(args))
	seen := make(map[string]bool, len(args))
	for _, arg := range args {
		id, err := matchID(list, arg)
		if err != nil {
			return nil, err
		}
		// A full id and its prefix name the same wish
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func matchID(list []models.Wish, arg string) (string, error) {
	arg = strings.TrimSpace(arg)
	var matches []string
	for _, w := range list {
		if w.ID == arg {
			return w.ID, nil
		}
		if arg != "" && strings.HasPrefix(w.ID, arg) {
			matches = append(matches, w.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", errors.NotFound(constants.CollectionWishes, arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("wish ID prefix %q is ambiguous (%d matches)", arg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func printWishes(ctx *cli.Context, userID string) error {
	list, err := ctx.Wishes().List(ctx.Ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to list wishes: %w", err)
	}
	if len(list) == 0 {
		fmt.Println("No wishes yet. Add one with 'wishlog wish add'.")
		return nil
	}

	now, _, err := ctx.Now(userID)
	if err != nil {
		return err
	}

	uncompleted, completed := wishsvc.Partition(list)

	fmt.Println(cli.HeaderStyle.Render("Wishes"))
	if len(uncompleted) == 0 {
		fmt.Println(cli.MutedStyle.Render("  Everything is done."))
	}
	for _, w := range uncompleted {
		countdown, ok := wishsvc.CountdownFor(w, now)
		status := cli.MutedStyle.Render("invalid target date")
		if ok {
			status = cli.CountdownStyle(countdown.Days).Render(countdown.Message)
		}
		fmt.Printf("  %s  %-20s  %s  %s\n", cli.MutedStyle.Render(shortID(w.ID)), w.Title, w.TargetDate, status)
		if w.Description != "" {
			fmt.Printf("            %s\n", cli.MutedStyle.Render(w.Description))
		}
	}

	if len(completed) > 0 {
		fmt.Println()
		fmt.Println(cli.HeaderStyle.Render("Completed"))
		for _, w := range completed {
			fmt.Printf("  %s  %s  %s\n", cli.MutedStyle.Render(shortID(w.ID)), cli.DoneStyle.Render(w.Title), w.TargetDate)
		}
	}
	return nil
}
