package settings

import (
	"fmt"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/models"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	s, err := ctx.Settings().Get(ctx.Ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	printSettings(s)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" enum:"timezone,display_unit,heatmap_days" help:"Setting to change (timezone, display_unit, heatmap_days)."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		return err
	}
	s, err := ctx.Settings().Set(ctx.Ctx, userID, c.Key, c.Value)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	fmt.Println()
	printSettings(s)
	return nil
}

func printSettings(s models.Settings) {
	fmt.Println("Current Settings:")
	fmt.Printf("  Timezone:      %s\n", s.Timezone)
	fmt.Printf("  Display Unit:  %s\n", s.DisplayUnit)
	fmt.Printf("  Heatmap Days:  %d\n", s.HeatmapDays)
}
