package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/swiftcart/storefront-state/pkg/auth"
	"github.com/swiftcart/storefront-state/pkg/config"
	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/security"
)

const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the session controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context) error
}

// sessionWriter is the slice of the state store the service touches.
type sessionWriter interface {
	Login(ctx context.Context, username, token string) error
	Logout(ctx context.Context) error
}

type service struct {
	sessions     sessionWriter
	jwtCfg       config.JWTConfig
	demoUsername string
	demoHash     string
	now          func() time.Time
}

// ServiceParams bundles the dependencies required to build a session service.
type ServiceParams struct {
	Sessions sessionWriter
	JWTCfg   config.JWTConfig
	AuthCfg  config.AuthConfig
	PassCfg  config.PasswordConfig

	// Now overrides the clock in tests.
	Now func() time.Time
}

// NewService constructs the simulated login service. Credentials are checked
// against a single configured demo account, hashing the plain password at
// startup when no hash was provided.
func NewService(params ServiceParams) (Service, error) {
	if params.Sessions == nil {
		return nil, fmt.Errorf("session writer is required")
	}
	if strings.TrimSpace(params.AuthCfg.DemoUsername) == "" {
		return nil, fmt.Errorf("demo username is required")
	}

	hash := params.AuthCfg.DemoPasswordHash
	if hash == "" {
		if params.AuthCfg.DemoPassword == "" {
			return nil, fmt.Errorf("demo password or hash is required")
		}
		hashed, err := security.HashPassword(params.AuthCfg.DemoPassword, params.PassCfg)
		if err != nil {
			return nil, fmt.Errorf("hash demo password: %w", err)
		}
		hash = hashed
	}

	now := params.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		sessions:     params.Sessions,
		jwtCfg:       params.JWTCfg,
		demoUsername: params.AuthCfg.DemoUsername,
		demoHash:     hash,
		now:          now,
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !strings.EqualFold(username, s.demoUsername) {
		// Verify against the demo hash anyway so both paths cost the same.
		_, _ = security.VerifyPassword(req.Password, s.demoHash)
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	ok, err := security.VerifyPassword(req.Password, s.demoHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	token, err := pkgauth.MintSessionToken(s.jwtCfg, s.now(), s.demoUsername)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint jwt")
	}
	if err := s.sessions.Login(ctx, s.demoUsername, token); err != nil {
		return nil, err
	}

	return &LoginResponse{Token: token, Username: s.demoUsername}, nil
}

func (s *service) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}
