// Package trend projects log entries into index-aligned chart series.
package trend

import (
	"sort"

	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/units"
)

// Series holds index-aligned points ordered by date. Weights are pounds
// unless converted with InUnit.
type Series struct {
	Dates    []string  `json:"dates"`
	Weights  []float64 `json:"weights"`
	BodyFats []float64 `json:"bodyFats"`
}

// Project sorts a copy of logs by date and emits one point per entry.
// Same-day entries are kept as separate points in input order.
func Project(logs []models.FatLog) Series {
	sorted := make([]models.FatLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	s := Series{
		Dates:    make([]string, 0, len(sorted)),
		Weights:  make([]float64, 0, len(sorted)),
		BodyFats: make([]float64, 0, len(sorted)),
	}
	for _, l := range sorted {
		s.Dates = append(s.Dates, l.Date)
		s.Weights = append(s.Weights, l.Weight)
		s.BodyFats = append(s.BodyFats, l.BodyFat)
	}
	return s
}

func (s Series) Len() int {
	return len(s.Dates)
}

func (s Series) Empty() bool {
	return s.Len() == 0
}

// InUnit returns a copy with weights converted from pounds to unit.
func (s Series) InUnit(unit units.Unit) Series {
	out := Series{
		Dates:    append([]string{}, s.Dates...),
		Weights:  make([]float64, len(s.Weights)),
		BodyFats: append([]float64{}, s.BodyFats...),
	}
	for i, w := range s.Weights {
		out.Weights[i] = units.FromCanonical(w, unit)
	}
	return out
}

// Change is the first and last value of a series and their difference.
type Change struct {
	First float64 `json:"first"`
	Last  float64 `json:"last"`
	Delta float64 `json:"delta"`
}

func change(values []float64) Change {
	if len(values) == 0 {
		return Change{}
	}
	first, last := values[0], values[len(values)-1]
	return Change{First: first, Last: last, Delta: last - first}
}

// Summary describes the change across the whole series.
type Summary struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Points  int    `json:"points"`
	Weight  Change `json:"weight"`
	BodyFat Change `json:"bodyFat"`
}

// Summary returns the zero Summary for an empty series.
func (s Series) Summary() Summary {
	if s.Empty() {
		return Summary{}
	}
	return Summary{
		From:    s.Dates[0],
		To:      s.Dates[len(s.Dates)-1],
		Points:  s.Len(),
		Weight:  change(s.Weights),
		BodyFat: change(s.BodyFats),
	}
}
