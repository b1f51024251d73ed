package trend

import (
	"math"
	"reflect"
	"testing"

	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/units"
)

func TestProjectEmpty(t *testing.T) {
	for _, logs := range [][]models.FatLog{nil, {}} {
		s := Project(logs)
		if s.Dates == nil || s.Weights == nil || s.BodyFats == nil {
			t.Fatalf("Project(%v) returned a nil sequence: %+v", logs, s)
		}
		if !s.Empty() || s.Len() != 0 {
			t.Errorf("Project(%v) not empty: %+v", logs, s)
		}
		if s.Summary() != (Summary{}) {
			t.Errorf("Summary() of empty series = %+v", s.Summary())
		}
	}
}

func TestProjectSortsAndKeepsSameDayPoints(t *testing.T) {
	logs := []models.FatLog{
		{ID: "c", Date: "2025-01-03", Weight: 178, BodyFat: 19},
		{ID: "a1", Date: "2025-01-01", Weight: 180, BodyFat: 21},
		{ID: "b", Date: "2025-01-02", Weight: 179, BodyFat: 20},
		{ID: "a2", Date: "2025-01-01", Weight: 181, BodyFat: 22},
	}
	input := append([]models.FatLog{}, logs...)

	s := Project(logs)

	if want := []string{"2025-01-01", "2025-01-01", "2025-01-02", "2025-01-03"}; !reflect.DeepEqual(s.Dates, want) {
		t.Errorf("Dates = %v, want %v", s.Dates, want)
	}
	if want := []float64{180, 181, 179, 178}; !reflect.DeepEqual(s.Weights, want) {
		t.Errorf("Weights = %v, want %v", s.Weights, want)
	}
	if want := []float64{21, 22, 20, 19}; !reflect.DeepEqual(s.BodyFats, want) {
		t.Errorf("BodyFats = %v, want %v", s.BodyFats, want)
	}
	if !reflect.DeepEqual(logs, input) {
		t.Error("Project() reordered its input")
	}

	sum := s.Summary()
	if sum.From != "2025-01-01" || sum.To != "2025-01-03" || sum.Points != 4 {
		t.Errorf("Summary() = %+v", sum)
	}
	if sum.Weight.Delta != -2 || sum.BodyFat.Delta != -2 {
		t.Errorf("Summary() deltas = %+v / %+v", sum.Weight, sum.BodyFat)
	}
}

func TestInUnit(t *testing.T) {
	s := Project([]models.FatLog{{Date: "2025-01-01", Weight: 176.4, BodyFat: 20}})

	kg := s.InUnit(units.Kilograms)
	if math.Abs(kg.Weights[0]-80) > 0.1 {
		t.Errorf("weight in kg = %v, want ~80", kg.Weights[0])
	}
	if kg.BodyFats[0] != 20 {
		t.Errorf("body fat changed by conversion: %v", kg.BodyFats[0])
	}
	if s.Weights[0] != 176.4 {
		t.Errorf("InUnit() mutated the source series: %v", s.Weights[0])
	}
}
