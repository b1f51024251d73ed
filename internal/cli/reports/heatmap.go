package reports

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/heatmap"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/storage"
)

var weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type HeatmapCmd struct {
	Days int `help:"Number of days to show, ending today. Defaults to the heatmap_days setting."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	now, s, err := ctx.Now(userID)
	if err != nil {
		return err
	}

	days := s.HeatmapDays
	if c.Days != 0 {
		days = c.Days
	}
	if days <= 0 {
		return errors.Validation("days", "must be positive")
	}

	entries, err := ctx.Logs().List(ctx.Ctx, userID, storage.Ascending)
	if err != nil {
		return fmt.Errorf("failed to list logs: %w", err)
	}
	buckets := heatmap.Bucket(entries, days, now)
	from, to, _ := heatmap.Window(days, now)

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Mood heat-map %s to %s", from, to)))
	fmt.Println()
	writeGrid(os.Stdout, heatmap.Grid(buckets, days, now))
	fmt.Println()
	writeLegend(os.Stdout)
	fmt.Printf("\n%d of %d days have a mood\n", len(buckets), days)
	return nil
}

// writeGrid prints one row per weekday with a column per week.
func writeGrid(w io.Writer, weeks [][]heatmap.Cell) {
	for day := 0; day < 7; day++ {
		var sb strings.Builder
		sb.WriteString(cli.MutedStyle.Render(weekdayLabels[day]))
		sb.WriteString(" ")
		for _, week := range weeks {
			cell := week[day]
			if cell.Padding() {
				sb.WriteString(" ")
			} else {
				sb.WriteString(cli.MoodCell(cell.Mood))
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}

func writeLegend(w io.Writer) {
	parts := make([]string, 0, len(models.Moods))
	for _, info := range models.Moods {
		parts = append(parts, fmt.Sprintf("%s %s %s", cli.MoodCell(info.Mood), info.Mood, info.Label))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}
