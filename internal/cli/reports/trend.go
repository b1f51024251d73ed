package reports

import (
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/trend"
	"github.com/julianstephens/wishlog/internal/units"
)

type TrendCmd struct {
	Unit string `short:"u" help:"Weight unit (lb or kg). Defaults to the display_unit setting."`
	JSON bool   `name:"json" help:"Print the chart series as JSON."`
}

// trendReport is the --json document.
type trendReport struct {
	Unit    units.Unit    `json:"unit"`
	Series  trend.Series  `json:"series"`
	Summary trend.Summary `json:"summary"`
}

func (c *TrendCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}

	unit, err := resolveUnit(ctx, userID, c.Unit)
	if err != nil {
		return err
	}
	entries, err := ctx.Logs().List(ctx.Ctx, userID, storage.Ascending)
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}
	series := trend.Project(entries).InUnit(unit)

	if c.JSON {
		return writeTrendJSON(os.Stdout, unit, series)
	}
	writeTrend(os.Stdout, unit, series)
	return nil
}

func writeTrendJSON(w io.Writer, unit units.Unit, series trend.Series) error {
	data, err := json.MarshalIndent(trendReport{Unit: unit, Series: series, Summary: series.Summary()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode trend: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeTrend(w io.Writer, unit units.Unit, series trend.Series) {
	if series.Empty() {
		fmt.Fprintln(w, "No log entries yet. Add one with 'wishlog log add'.")
		return
	}

	fmt.Fprintln(w, cli.HeaderStyle.Render(fmt.Sprintf("Date        Weight (%s)  Body fat", unit)))
	for i, date := range series.Dates {
		fmt.Fprintf(w, "%s  %11.1f  %7.1f%%\n", date, series.Weights[i], series.BodyFats[i])
	}

	sum := series.Summary()
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s to %s, %d entries\n", sum.From, sum.To, sum.Points)
	fmt.Fprintf(w, "  Weight:   %.1f → %.1f %s (%s)\n", sum.Weight.First, sum.Weight.Last, unit, signed(sum.Weight.Delta))
	fmt.Fprintf(w, "  Body fat: %.1f%% → %.1f%% (%s)\n", sum.BodyFat.First, sum.BodyFat.Last, signed(sum.BodyFat.Delta))
}

func signed(delta float64) string {
	s := fmt.Sprintf("%+.1f", delta)
	switch {
	case delta < 0:
		return cli.OnTrackStyle.Render(s)
	case delta > 0:
		return cli.SoonStyle.Render(s)
	default:
		return cli.MutedStyle.Render(s)
	}
}

// resolveUnit parses a --unit flag, falling back to the user's setting.
func resolveUnit(ctx *cli.Context, userID, flag string) (units.Unit, error) {
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
