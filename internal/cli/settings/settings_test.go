package settings

import (
	"testing"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	wlerrors "github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/identity"
	"github.com/julianstephens/wishlog/internal/storage/memory"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	return cli.NewContext(memory.NewStore(), identity.NewStatic("user-1"), nil)
}

func TestSettingsShowCmd(t *testing.T) {
	ctx := setupTestContext(t)
	if err := (&SettingsShowCmd{}).Run(ctx); err != nil {
		t.Errorf("settings show failed: %v", err)
	}
}

func TestSettingsSetCmd(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr bool
	}{
		{name: "timezone", key: constants.SettingTimezone, value: "Europe/Berlin"},
		{name: "display unit", key: constants.SettingDisplayUnit, value: "kg"},
		{name: "heatmap days", key: constants.SettingHeatmapDays, value: "90"},
		{name: "bad timezone", key: constants.SettingTimezone, value: "Mars/Olympus", wantErr: true},
		{name: "bad unit", key: constants.SettingDisplayUnit, value: "stone", wantErr: true},
		{name: "zero days", key: constants.SettingHeatmapDays, value: "0", wantErr: true},
		{name: "unknown key", key: "theme", value: "dark", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestContext(t)
			err := (&SettingsSetCmd{Key: tt.key, Value: tt.value}).Run(ctx)
			if tt.wantErr {
				if !wlerrors.IsValidation(err) {
					t.Errorf("Run() error = %v, want validation error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
		})
	}
}

func TestSettingsSetCmdPersists(t *testing.T) {
	ctx := setupTestContext(t)

	if err := (&SettingsSetCmd{Key: constants.SettingDisplayUnit, Value: "kg"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	s, err := ctx.Settings().Get(ctx.Ctx, "user-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if s.DisplayUnit != "kg" || s.Timezone != constants.DefaultTimezone {
		t.Errorf("settings = %+v", s)
	}

	// Other users keep the defaults
	other, err := ctx.Settings().Get(ctx.Ctx, "user-2")
	if err != nil || other.DisplayUnit != constants.DefaultDisplayUnit {
		t.Errorf("user-2 settings = %+v, %v", other, err)
	}
}
