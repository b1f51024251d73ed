// Package units converts body weight between the canonical storage unit
// (pounds) and the units a user may enter or display.
package units

import (
	"fmt"
	"math"
	"strings"

	"github.com/julianstephens/wishlog/internal/constants"
)

// Unit is a mass unit
type Unit string

const (
	Pounds    Unit = "lb"
	Kilograms Unit = "kg"
)

func (u Unit) String() string { return string(u) }

// ParseUnit parses a user-supplied unit name (case-insensitive).
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lb", "lbs", "pound", "pounds":
		return Pounds, nil
	case "kg", "kgs", "kilogram", "kilograms":
		return Kilograms, nil
	default:
		return "", fmt.Errorf("unknown weight unit %q (expected lb or kg)", s)
	}
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ToCanonical converts value in unit to pounds, rounded to one decimal place.
// This is the value persisted with a log entry.
func ToCanonical(value float64, unit Unit) float64 {
	if unit == Kilograms {
		return Round1(value * constants.PoundsPerKilogram)
	}
	return Round1(value)
}

// FromCanonical converts a stored pound value to unit for display.
// The result is not rounded and never written back.
func FromCanonical(pounds float64, unit Unit) float64 {
	if unit == Kilograms {
		return pounds / constants.PoundsPerKilogram
	}
	return pounds
}

// Format renders a stored pound value in unit with one decimal place.
func Format(pounds float64, unit Unit) string {
	return fmt.Sprintf("%.1f %s", FromCanonical(pounds, unit), unit)
}
