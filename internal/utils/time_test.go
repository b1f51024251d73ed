package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Asia/Tokyo", timezone: "Asia/Tokyo", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"2025-06-15", true},
		{"2024-02-29", true},
		{"2025-02-29", false},
		{"2025-13-01", false},
		{"2025/06/15", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidateDate(tt.input); got != tt.want {
				t.Errorf("ValidateDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalendarDaysUntil(t *testing.T) {
	base := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		target    time.Time
		reference time.Time
		want      int
	}{
		{"same date", base, base, 0},
		{"tomorrow", base.AddDate(0, 0, 1), base, 1},
		{"yesterday", base.AddDate(0, 0, -1), base, -1},
		{"ten days out", base.AddDate(0, 0, 10), base, 10},
		{"across month boundary", time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), base, 16},
		{"across leap day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalendarDaysUntil(tt.target, tt.reference); got != tt.want {
				t.Errorf("CalendarDaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCalendarDaysUntilIgnoresTimeOfDay(t *testing.T) {
	target := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	// Past midnight on the target date: millisecond flooring would say -1.
	lateOnTarget := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	if got := CalendarDaysUntil(target, lateOnTarget); got != 0 {
		t.Errorf("late on target day = %d, want 0", got)
	}

	// One minute before midnight the day before: flooring would say 0.
	lateDayBefore := time.Date(2025, 6, 14, 23, 59, 0, 0, time.UTC)
	if got := CalendarDaysUntil(target, lateDayBefore); got != 1 {
		t.Errorf("late the day before = %d, want 1", got)
	}

	earlyDayAfter := time.Date(2025, 6, 16, 0, 0, 1, 0, time.UTC)
	if got := CalendarDaysUntil(target, earlyDayAfter); got != -1 {
		t.Errorf("just after midnight the day after = %d, want -1", got)
	}

	targetWithTime := time.Date(2025, 6, 16, 18, 30, 0, 0, time.UTC)
	if got := CalendarDaysUntil(targetWithTime, lateOnTarget); got != 1 {
		t.Errorf("target with time component = %d, want 1", got)
	}
}

func TestCalendarDaysUntilAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	// 2025-03-09 is 23 hours long in New York.
	ref := time.Date(2025, 3, 8, 12, 0, 0, 0, loc)
	target := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
	if got := CalendarDaysUntil(target, ref); got != 2 {
		t.Errorf("CalendarDaysUntil across DST = %d, want 2", got)
	}
}

func TestDaysUntilDate(t *testing.T) {
	ref := time.Date(2025, 6, 15, 21, 0, 0, 0, time.Local)

	got, err := DaysUntilDate("2025-06-25", ref)
	if err != nil {
		t.Fatalf("DaysUntilDate() error = %v", err)
	}
	if got != 10 {
		t.Errorf("DaysUntilDate() = %d, want 10", got)
	}

	if _, err := DaysUntilDate("not-a-date", ref); err == nil {
		t.Error("DaysUntilDate() expected error for invalid date")
	}
}

func TestParseDateInLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}

	got, err := ParseDateInLocation("2025-01-02", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Location() != loc || got.Day() != 2 || got.Hour() != 0 {
		t.Errorf("ParseDateInLocation() = %v", got)
	}
	if FormatDate(got) != "2025-01-02" {
		t.Errorf("FormatDate() = %q", FormatDate(got))
	}
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 6, 15, 13, 45, 10, 99, time.UTC)
	want := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if got := StartOfDay(in); !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}
