package constants

const (
	// Setting keys
	SettingTimezone    = "timezone"
	SettingDisplayUnit = "display_unit"
	SettingHeatmapDays = "heatmap_days"

	// Default Settings Values
	DefaultTimezone    = "Local" // Use system local timezone by default
	DefaultDisplayUnit = "lb"
	DefaultHeatmapDays = 365
)
