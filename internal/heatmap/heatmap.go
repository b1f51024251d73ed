// Package heatmap buckets log moods by calendar date for a trailing window.
package heatmap

import (
	"time"

	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/utils"
)

// civil returns midnight UTC on t's calendar date, so day arithmetic is
// unaffected by DST in t's location.
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Window returns the first and last date of the windowDays-long range
// ending today, inclusive. ok is false when windowDays is not positive.
func Window(windowDays int, today time.Time) (from, to string, ok bool) {
	if windowDays <= 0 {
		return "", "", false
	}
	end := civil(today)
	start := utils.AddDays(end, -(windowDays - 1))
	return utils.FormatDate(start), utils.FormatDate(end), true
}

// Bucket maps each date in the window to a mood. Logs without a valid date
// or without a mood are skipped. When several logs share a date the last
// one in input order wins.
func Bucket(logs []models.FatLog, windowDays int, today time.Time) map[string]models.Mood {
	buckets := make(map[string]models.Mood)
	from, to, ok := Window(windowDays, today)
	if !ok {
		return buckets
	}

	for _, l := range logs {
		if l.Mood == models.MoodNone || !utils.ValidateDate(l.Date) {
			continue
		}
		// YYYY-MM-DD compares in calendar order
		if l.Date < from || l.Date > to {
			continue
		}
		buckets[l.Date] = l.Mood
	}
	return buckets
}

// Cell is one day of the calendar grid. Padding cells before the window
// start or after today have an empty Date.
type Cell struct {
	Date string
	Mood models.Mood
}

// Padding reports whether c lies outside the window.
func (c Cell) Padding() bool {
	return c.Date == ""
}

// Grid lays the window out as week columns of seven cells, Sunday first,
// the way a contribution calendar is drawn.
func Grid(buckets map[string]models.Mood, windowDays int, today time.Time) [][]Cell {
	if windowDays <= 0 {
		return [][]Cell{}
	}
	end := civil(today)
	start := utils.AddDays(end, -(windowDays - 1))

	first := utils.AddDays(start, -int(start.Weekday()))
	last := utils.AddDays(end, int(time.Saturday-end.Weekday()))

	var weeks [][]Cell
	for day := first; !day.After(last); day = utils.AddDays(day, 7) {
		week := make([]Cell, 7)
		for i := range week {
			d := utils.AddDays(day, i)
			if d.Before(start) || d.After(end) {
				continue
			}
			date := utils.FormatDate(d)
			week[i] = Cell{Date: date, Mood: buckets[date]}
		}
		weeks = append(weeks, week)
	}
	return weeks
}
