package models

import "time"

// Mood is one of a fixed set of mood symbols attached to a log entry
type Mood string

const (
	MoodNone     Mood = ""
	MoodHappy    Mood = "😊"
	MoodCalm     Mood = "😐"
	MoodDown     Mood = "😞"
	MoodAngry    Mood = "😡"
	MoodStressed Mood = "😩"
	MoodExcited  Mood = "🥳"
	MoodTired    Mood = "😴"
	MoodSad      Mood = "😢"
)

// MoodInfo describes how a mood is labelled and bucketed on the heat-map
type MoodInfo struct {
	Mood       Mood
	Label      string
	ColorClass string
}

// Moods lists every valid mood in display order
var Moods = []MoodInfo{
	{MoodHappy, "happy", "color-happy"},
	{MoodCalm, "calm", "color-calm"},
	{MoodDown, "down", "color-down"},
	{MoodAngry, "angry", "color-angry"},
	{MoodStressed, "stressed", "color-anxious"},
	{MoodExcited, "excited", "color-excited"},
	{MoodTired, "tired", "color-tired"},
	{MoodSad, "sad", "color-sad"},
}

// Valid reports whether m is empty or one of the known moods.
func (m Mood) Valid() bool {
	if m == MoodNone {
		return true
	}
	_, ok := m.Info()
	return ok
}

// Info returns the metadata for m.
func (m Mood) Info() (MoodInfo, bool) {
	for _, info := range Moods {
		if info.Mood == m {
			return info, true
		}
	}
	return MoodInfo{}, false
}

// ParseMood accepts either the symbol itself or its label (e.g. "happy").
func ParseMood(s string) (Mood, bool) {
	if s == "" {
		return MoodNone, true
	}
	for _, info := range Moods {
		if string(info.Mood) == s || info.Label == s {
			return info.Mood, true
		}
	}
	return MoodNone, false
}

// FatLog is a dated body-fat, weight and mood observation
type FatLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // YYYY-MM-DD format
	BodyFat   float64   `json:"bodyFat"`
	Weight    float64   `json:"weight"` // always pounds
	Mood      Mood      `json:"mood,omitempty"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
