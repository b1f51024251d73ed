package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/constants"
	"github.com/julianstephens/wishlog/internal/identity"
)

var errNoSession = fmt.Errorf("session login is not configured; set %s or use --user", constants.EnvTokenSecret)

type LoginCmd struct {
	As  string        `name:"as" help:"User ID to log in as. A new ID is generated when omitted."`
	TTL time.Duration `help:"How long the session stays valid." default:"720h"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if ctx.Session == nil {
		return errNoSession
	}

	userID := c.As
	if userID == "" {
		userID = uuid.NewString()
	}
	if err := ctx.Session.Login(userID, c.TTL); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Printf("✓ Logged in as %s\n", cli.TitleStyle.Render(userID))
	fmt.Printf("  Session expires %s\n", time.Now().Add(c.TTL).Format("2006-01-02 15:04"))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	if ctx.Session == nil {
		return errNoSession
	}
	if err := ctx.Session.Logout(); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	fmt.Println("✓ Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	userID, err := ctx.UserID()
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			fmt.Println("Not logged in.")
		}
		return err
	}
	fmt.Println(userID)
	return nil
}
