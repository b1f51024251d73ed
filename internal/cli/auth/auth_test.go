package auth

import (
	"errors"
	"testing"
	"time"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/wishlog/internal/cli"
	"github.com/julianstephens/wishlog/internal/identity"
	"github.com/julianstephens/wishlog/internal/keyring"
	"github.com/julianstephens/wishlog/internal/storage/memory"
)

func setupSession(t *testing.T) *cli.Context {
	t.Helper()
	gokeyring.MockInit()
	session := identity.NewSession("test-secret", identity.KeyringTokens{})
	return cli.NewContext(memory.NewStore(), session, session)
}

func TestLoginLogout(t *testing.T) {
	ctx := setupSession(t)

	if err := (&WhoamiCmd{}).Run(ctx); !errors.Is(err, identity.ErrUnauthenticated) {
		t.Fatalf("whoami before login error = %v, want ErrUnauthenticated", err)
	}

	if err := (&LoginCmd{As: "user-1", TTL: time.Hour}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if id, err := ctx.UserID(); err != nil || id != "user-1" {
		t.Errorf("UserID() after login = %q, %v", id, err)
	}
	if err := (&WhoamiCmd{}).Run(ctx); err != nil {
		t.Errorf("whoami after login error = %v", err)
	}

	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := keyring.GetSessionToken(); !errors.Is(err, keyring.ErrNotFound) {
		t.Errorf("token still stored after logout: %v", err)
	}
	if _, err := ctx.UserID(); !errors.Is(err, identity.ErrUnauthenticated) {
		t.Errorf("UserID() after logout error = %v", err)
	}

	// A second logout is not an error
	if err := (&LogoutCmd{}).Run(ctx); err != nil {
		t.Errorf("second logout error = %v", err)
	}
}

func TestLoginGeneratesUserID(t *testing.T) {
	ctx := setupSession(t)

	if err := (&LoginCmd{TTL: time.Hour}).Run(ctx); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	id, err := ctx.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if len(id) != 36 {
		t.Errorf("generated user ID %q is not a UUID", id)
	}
}

func TestLoginWithoutSession(t *testing.T) {
	ctx := cli.NewContext(memory.NewStore(), identity.NewStatic(""), nil)

	if err := (&LoginCmd{As: "user-1", TTL: time.Hour}).Run(ctx); err == nil {
		t.Error("login without a session should fail")
	}
	if err := (&LogoutCmd{}).Run(ctx); err == nil {
		t.Error("logout without a session should fail")
	}
}
