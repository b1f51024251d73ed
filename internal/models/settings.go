package models

// Settings holds per-user preferences
type Settings struct {
	Timezone    string `json:"timezone"`
	DisplayUnit string `json:"displayUnit"`
	HeatmapDays int    `json:"heatmapDays"`
}
