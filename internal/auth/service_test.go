package auth

import (
	"context"
	"testing"
	"time"

	pkgauth "github.com/swiftcart/storefront-state/pkg/auth"
	"github.com/swiftcart/storefront-state/pkg/config"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/security"
)

type stubSessionWriter struct {
	loginUsername string
	loginToken    string
	loggedOut     bool
	loginErr      error
}

func (s *stubSessionWriter) Login(_ context.Context, username, token string) error {
	if s.loginErr != nil {
		return s.loginErr
	}
	s.loginUsername = username
	s.loginToken = token
	return nil
}

func (s *stubSessionWriter) Logout(context.Context) error {
	s.loggedOut = true
	return nil
}

func testConfigs() (config.JWTConfig, config.AuthConfig, config.PasswordConfig) {
	jwt := config.JWTConfig{Secret: "unit-test-secret", Issuer: "swiftcart", ExpirationMinutes: 15}
	auth := config.AuthConfig{DemoUsername: "demo", DemoPassword: "s3cret"}
	pass := config.PasswordConfig{ArgonMemoryKB: 8 * 1024, ArgonTime: 1, ArgonParallelism: 1, ArgonSaltLen: 16, ArgonKeyLen: 32}
	return jwt, auth, pass
}

func TestLoginMintsTokenAndOpensSession(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	sessions := &stubSessionWriter{}
	svc, err := NewService(ServiceParams{
		Sessions: sessions,
		JWTCfg:   jwtCfg,
		AuthCfg:  authCfg,
		PassCfg:  passCfg,
		Now:      func() time.Time { return time.Unix(1700000000, 0) },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "demo", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Username != "demo" || resp.Token == "" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if sessions.loginUsername != "demo" || sessions.loginToken != resp.Token {
		t.Fatalf("session not opened with minted token: %+v", sessions)
	}

	claims, err := pkgauth.ParseSessionToken(jwtCfg, resp.Token)
	if err != nil {
		t.Fatalf("minted token should parse: %v", err)
	}
	if claims.Username != "demo" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	sessions := &stubSessionWriter{}
	svc, err := NewService(ServiceParams{Sessions: sessions, JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	cases := []LoginRequest{
		{Username: "demo", Password: "wrong"},
		{Username: "someone-else", Password: "s3cret"},
		{Username: "", Password: "s3cret"},
		{Username: "demo", Password: ""},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeUnauthorized {
			t.Fatalf("request %+v: expected unauthorized, got %v", req, err)
		}
	}
	if sessions.loginUsername != "" {
		t.Fatal("no session should open on failed login")
	}
}

func TestLoginUsernameIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	sessions := &stubSessionWriter{}
	svc, err := NewService(ServiceParams{Sessions: sessions, JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "DEMO", Password: "s3cret"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Username != "demo" {
		t.Fatalf("response should carry the canonical username, got %q", resp.Username)
	}
}

func TestNewServiceAcceptsPrecomputedHash(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	hash := mustHash(t, "hunter2", passCfg)
	authCfg.DemoPassword = ""
	authCfg.DemoPasswordHash = hash

	svc, err := NewService(ServiceParams{Sessions: &stubSessionWriter{}, JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if _, err := svc.Login(context.Background(), LoginRequest{Username: "demo", Password: "hunter2"}); err != nil {
		t.Fatalf("login with precomputed hash failed: %v", err)
	}
}

func TestNewServiceValidatesParams(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	if _, err := NewService(ServiceParams{JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg}); err == nil {
		t.Fatal("expected error for missing session writer")
	}

	authCfg.DemoUsername = " "
	if _, err := NewService(ServiceParams{Sessions: &stubSessionWriter{}, JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg}); err == nil {
		t.Fatal("expected error for blank demo username")
	}
}

func TestLogoutDelegates(t *testing.T) {
	t.Parallel()

	jwtCfg, authCfg, passCfg := testConfigs()
	sessions := &stubSessionWriter{}
	svc, err := NewService(ServiceParams{Sessions: sessions, JWTCfg: jwtCfg, AuthCfg: authCfg, PassCfg: passCfg})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	if err := svc.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if !sessions.loggedOut {
		t.Fatal("logout must reach the session writer")
	}
}

func mustHash(t *testing.T, password string, cfg config.PasswordConfig) string {
	t.Helper()
	hash, err := security.HashPassword(password, cfg)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return hash
}
