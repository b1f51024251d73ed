package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/cli/auth"
	"github.com/julianstephens/wishlog/internal/cli/backups"
	"github.com/julianstephens/wishlog/internal/cli/logs"
	"github.com/julianstephens/wishlog/internal/cli/reports"
	"github.com/julianstephens/wishlog/internal/cli/settings"
	"github.com/julianstephens/wishlog/internal/cli/system"
	"github.com/julianstephens/wishlog/internal/cli/wishes"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/errors"
	"github.com/julianstephens/wishlog/internal/identity"
	"github.com/julianstephens/wishlog/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite path, .json path, or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use WISHLOG_DB_CONNECTION, .pgpass, or the OS keyring instead." type:"string" env:"WISHLOG_CONFIG" default:"~/.config/wishlog/wishlog.db"`
	User    string `help:"Act as this user ID instead of the logged-in session." env:"WISHLOG_USER"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize wishlog storage."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored wishes and logs for conflicts."`
	Login    auth.LoginCmd      `cmd:"" help:"Start a session stored in the OS keyring."`
	Logout   auth.LogoutCmd     `cmd:"" help:"End the current session."`
	Whoami   auth.WhoamiCmd     `cmd:"" help:"Show the current user ID."`
	Wish     struct {
		Add    wishes.WishAddCmd    `cmd:"" help:"Add a wish."`
		List   wishes.WishListCmd   `cmd:"" help:"List wishes with their countdowns." default:"1"`
		Done   wishes.WishDoneCmd   `cmd:"" help:"Mark one or more wishes done."`
		Delete wishes.WishDeleteCmd `cmd:"" help:"Delete one or more wishes."`
	} `cmd:"" help:"Manage wishes."`
	Log struct {
		Add  logs.LogAddCmd  `cmd:"" help:"Record body fat, weight and mood."`
		List logs.LogListCmd `cmd:"" help:"List log entries." default:"1"`
	} `cmd:"" help:"Manage body-fat log entries."`
	Trend    reports.TrendCmd   `cmd:"" help:"Show weight and body-fat trend."`
	Heatmap  reports.HeatmapCmd `cmd:"" help:"Show the mood heat-map."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show current settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability." default:"1"`
	} `cmd:"" help:"Manage credentials in the OS keyring."`
}

// storeFreeCommands run without loading the document store.
var storeFreeCommands = map[string]bool{
	"init":           true,
	"login":          true,
	"logout":         true,
	"whoami":         true,
	"doctor":         true,
	"keyring set":    true,
	"keyring get":    true,
	"keyring delete": true,
	"keyring status": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal wish list and body-fat tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	configDir, err := cli.ExpandHome(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		errors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	store, err := cli.ResolveStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	var session *identity.Session
	if secret := os.Getenv(constants.EnvTokenSecret); secret != "" {
		session = identity.NewSession(secret, identity.KeyringTokens{})
	}
	var ident identity.Provider = identity.NewStatic(CLI.User)
	if CLI.User == "" && session != nil {
		ident = session
	}

	appCtx := cli.NewContext(store, ident, session)
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	appCtx.Ctx = runCtx

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && !storeFreeCommands[ctx.Selected().Path()] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		stop()
		store.Close()
		errors.Fatal(err)
	}
}
