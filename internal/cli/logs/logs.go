package logs

import (
	"fmt"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/fatlog"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/units"
)

type LogAddCmd struct {
	BodyFat float64 `arg:"" name:"body-fat" help:"Body-fat percentage."`
	Weight  float64 `arg:"" help:"Body weight."`
	Date    string  `help:"Date of the measurement (YYYY-MM-DD). Defaults to today."`
	Unit    string  `short:"u" help:"Unit of the weight (lb or kg). Defaults to the display_unit setting."`
	Mood    string  `short:"m" help:"Mood, as the emoji or its name (happy, calm, down, angry, stressed, excited, tired, sad)."`
	Note    string  `short:"n" help:"Free-text note."`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	now, s, err := ctx.Now(userID)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = now.Format(constants.DateFormat)
	}
	unitName := c.Unit
	if unitName == "" {
		unitName = s.DisplayUnit
	}
	unit, err := units.ParseUnit(unitName)
	if err != nil {
		return errors.Validation("unit", "%v", err)
	}
	mood, ok := models.ParseMood(c.Mood)
	if !ok {
		return errors.Validation("mood", "%q is not a known mood", c.Mood)
	}

	l, err := ctx.Logs().Create(ctx.Ctx, userID, fatlog.NewLog{
		Date:    date,
		BodyFat: c.BodyFat,
		Weight:  c.Weight,
		Unit:    unit,
		Mood:    mood,
		Note:    c.Note,
	})
	if err != nil {
		return fmt.Errorf("failed to add log: %w", err)
	}

	fmt.Printf("✓ Logged %s: %.1f%% body fat, %s %s\n", l.Date, l.BodyFat, units.Format(l.Weight, unit), l.Mood)
	return nil
}

type LogListCmd struct {
	Unit   string `short:"u" help:"Display unit (lb or kg). Defaults to the display_unit setting."`
	Oldest bool   `help:"List oldest entries first."`
	Limit  int    `short:"n" help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	unit, err := displayUnit(ctx, userID, c.Unit)
	if err != nil {
		return err
	}

	dir := storage.Descending
	if c.Oldest {
		dir = storage.Ascending
	}
	entries, err := ctx.Logs().List(ctx.Ctx, userID, dir)
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No log entries yet. Add one with 'wishlog log add'.")
		return nil
	}
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	fmt.Println(cli.HeaderStyle.Render("Date        Body fat  Weight      Mood"))
	for _, l := range entries {
		mood := string(l.Mood)
		if mood == "" {
			mood = cli.MutedStyle.Render("-")
		}
		fmt.Printf("%s  %6.1f%%   %-10s  %s", l.Date, l.BodyFat, units.Format(l.Weight, unit), mood)
		if l.Note != "" {
			fmt.Printf("  %s", cli.MutedStyle.Render(l.Note))
		}
		fmt.Println()
	}
	return nil
}

// displayUnit resolves a --unit flag, falling back to the user's setting.
func displayUnit(ctx *cli.Context, userID, flag string) (units.Unit, error) {
	if flag != "" {
		unit, err := units.ParseUnit(flag)
		if err != nil {
			return "", errors.Validation("unit", "%v", err)
		}
		return unit, nil
	}
	s, err := ctx.Settings().Get(ctx.Ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	return units.ParseUnit(s.DisplayUnit)
}
