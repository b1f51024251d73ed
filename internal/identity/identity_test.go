package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/wishlog/internal/keyring"
)

const testSecret = "test-secret"

func TestResolveStatic(t *testing.T) {
	ctx := context.Background()

	id, err := Resolve(ctx, NewStatic("user-1"))
	if err != nil || id != "user-1" {
		t.Errorf("Resolve() = %q, %v; want user-1", id, err)
	}

	if _, err := Resolve(ctx, NewStatic("")); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Resolve() with empty user error = %v, want ErrUnauthenticated", err)
	}
}

func TestStaticWatchClosesWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := NewStatic("user-1").Watch(ctx)

	if st := <-ch; !st.Authenticated || st.UserID != "user-1" {
		t.Errorf("first state = %+v", st)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("channel yielded a second state")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

// memTokens is an in-process TokenStore.
type memTokens struct {
	token string
}

func (m *memTokens) Get() (string, error) {
	if m.token == "" {
		return "", keyring.ErrNotFound
	}
	return m.token, nil
}

func (m *memTokens) Set(token string) error {
	m.token = token
	return nil
}

func (m *memTokens) Delete() error {
	if m.token == "" {
		return keyring.ErrNotFound
	}
	m.token = ""
	return nil
}

func TestIssueAndVerify(t *testing.T) {
	s := NewSession(testSecret, &memTokens{})

	token, err := s.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", claims.Subject)
	}
}

func TestVerifyRejects(t *testing.T) {
	s := NewSession(testSecret, &memTokens{})
	valid, err := s.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherKey, err := NewSession("other-secret", &memTokens{}).Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := NewSession(testSecret, &memTokens{})
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.Issue("user-1", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("SignedString() error = %v", err)
	}

	other, err := s.Issue("user-2", time.Hour)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	vp, op := strings.Split(valid, "."), strings.Split(other, ".")
	swapped := strings.Join([]string{vp[0], op[1], vp[2]}, ".")

	tests := map[string]string{
		"garbage":       "not-a-token",
		"wrong key":     otherKey,
		"expired":       old,
		"alg none":      unsigned,
		"swapped body":  swapped,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Verify(token); err == nil {
				t.Error("Verify() accepted token")
			}
		})
	}
}

func TestIssueRequiresSecret(t *testing.T) {
	s := NewSession("", &memTokens{})
	if _, err := s.Issue("user-1", time.Hour); err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("Issue() without secret error = %v", err)
	}
}

func TestSessionWatchFollowsLoginAndLogout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := NewSession(testSecret, &memTokens{})
	ch := s.Watch(ctx)

	next := func() State {
		t.Helper()
		select {
		case st := <-ch:
			return st
		case <-time.After(time.Second):
			t.Fatal("no state received")
			return State{}
		}
	}

	if st := next(); st.Authenticated {
		t.Fatalf("initial state = %+v, want unauthenticated", st)
	}

	if err := s.Login("user-1", time.Hour); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if st := next(); !st.Authenticated || st.UserID != "user-1" {
		t.Errorf("state after login = %+v", st)
	}

	id, err := Resolve(ctx, s)
	if err != nil || id != "user-1" {
		t.Errorf("Resolve() = %q, %v", id, err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if st := next(); st.Authenticated {
		t.Errorf("state after logout = %+v", st)
	}
	if _, err := Resolve(ctx, s); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Resolve() after logout error = %v", err)
	}

	// Logging out twice is fine
	if err := s.Logout(); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestKeyringTokens(t *testing.T) {
	gokeyring.MockInit()

	s := NewSession(testSecret, KeyringTokens{})
	if err := s.Login("user-2", time.Hour); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if st := s.Current(); st.UserID != "user-2" {
		t.Errorf("Current() = %+v", st)
	}
	if err := s.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if st := s.Current(); st.Authenticated {
		t.Errorf("Current() after logout = %+v", st)
	}
}
