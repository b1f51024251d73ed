package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wishlog/internal/models"
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	DoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Strikethrough(true)
	OverdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	TodayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	SoonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	OnTrackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// SoonDays is how close a target date must be to be highlighted.
const SoonDays = 7

// moodColors maps heat-map colour classes to terminal colours.
var moodColors = map[string]lipgloss.Color{
	"color-happy":   lipgloss.Color("#f9c74f"),
	"color-calm":    lipgloss.Color("#90be6d"),
	"color-down":    lipgloss.Color("#577590"),
	"color-angry":   lipgloss.Color("#f94144"),
	"color-anxious": lipgloss.Color("#f8961e"),
	"color-excited": lipgloss.Color("#b5179e"),
	"color-tired":   lipgloss.Color("#adb5bd"),
	"color-sad":     lipgloss.Color("#4361ee"),
}

var emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))

// MoodCell renders one heat-map square for m. Days without a mood are dim.
func MoodCell(m models.Mood) string {
	info, ok := m.Info()
	if !ok {
		return emptyCellStyle.Render("■")
	}
	return lipgloss.NewStyle().Foreground(moodColors[info.ColorClass]).Render("■")
}

// CountdownStyle picks the style for a wish that is days away.
func CountdownStyle(days int) lipgloss.Style {
	switch {
	case days < 0:
		return OverdueStyle
	case days == 0:
		return TodayStyle
	case days <= SoonDays:
		return SoonStyle
	default:
		return OnTrackStyle
	}
}
