package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wishlog/internal/backup"
	"github.com/julianstephens/wishlog/internal/fatlog"
	"github.com/julianstephens/wishlog/internal/identity"
	"github.com/julianstephens/wishlog/internal/logger"
	"github.com/julianstephens/wishlog/internal/models"
	"github.com/julianstephens/wishlog/internal/settings"
	"github.com/julianstephens/wishlog/internal/storage"
	"github.com/julianstephens/wishlog/internal/storage/sqlite"
	"github.com/julianstephens/wishlog/internal/utils"
	"github.com/julianstephens/wishlog/internal/wishes"
)

type Context struct {
	Ctx      context.Context
	Store    storage.Provider
	Identity identity.Provider
	Session  *identity.Session
}

func NewContext(store storage.Provider, ident identity.Provider, session *identity.Session) *Context {
	return &Context{
		Ctx:      context.Background(),
		Store:    store,
		Identity: ident,
		Session:  session,
	}
}

// UserID resolves the current user or explains how to become one.
func (c *Context) UserID() (string, error) {
	if c.Identity == nil {
		return "", fmt.Errorf("%w: run 'wishlog login' or pass --user", identity.ErrUnauthenticated)
	}
	id, err := identity.Resolve(c.Ctx, c.Identity)
	if errors.Is(err, identity.ErrUnauthenticated) {
		return "", fmt.Errorf("%w: run 'wishlog login' or pass --user", err)
	}
	return id, err
}

func (c *Context) Wishes() *wishes.Store {
	return wishes.NewStore(c.Store)
}

func (c *Context) Logs() *fatlog.Store {
	return fatlog.NewStore(c.Store)
}

func (c *Context) Settings() *settings.Service {
	return settings.NewService(c.Store)
}

// Now returns the current time in the user's configured timezone along with
// the settings it was read from.
func (c *Context) Now(userID string) (time.Time, models.Settings, error) {
	s, err := c.Settings().Get(c.Ctx, userID)
	if err != nil {
		return time.Time{}, s, fmt.Errorf("failed to get settings: %w", err)
	}
	now, err := utils.NowInTimezone(s.Timezone)
	if err != nil {
		return time.Time{}, s, err
	}
	return now, s, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only the SQLite store is file based; other backends are skipped.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		logger.Debug("Skipping automatic backup for non-SQLite store")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}
