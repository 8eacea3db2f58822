package session

import (
	"context"
	"strings"
	"sync"

	pkgerrors "github.com/swiftcart/storefront-state/pkg/errors"
	"github.com/swiftcart/storefront-state/pkg/logger"
	"github.com/swiftcart/storefront-state/pkg/storage"
)

// Gate is the two-state login machine. Cart and comparison aggregates consult
// it before computing: stored data for a user stays invisible while logged
// out. The active username and session token survive restarts through the
// storage adapter.
type Gate struct {
	mu      sync.RWMutex
	adapter storage.Adapter
	logg    *logger.Logger

	loggedIn bool
	username string
	token    string
}

// NewGate restores the persisted session. The gate starts logged in only when
// both a username and a token were persisted by an earlier login.
func NewGate(ctx context.Context, adapter storage.Adapter, logg *logger.Logger) (*Gate, error) {
	if adapter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storage adapter is required")
	}
	g := &Gate{adapter: adapter, logg: logg}

	var username, token string
	if _, err := adapter.Load(ctx, storage.KeyUsername, &username); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore username")
	}
	foundToken, err := adapter.Load(ctx, storage.KeySessionToken, &token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore session token")
	}

	g.username = username
	g.token = token
	g.loggedIn = foundToken && token != "" && username != ""

	if g.loggedIn && logg != nil {
		logg.Info(logg.WithUsername(ctx, username), "session.restored")
	}
	return g, nil
}

// Login transitions to LoggedIn for the given shopper and persists the
// username and token. Credential checking happens upstream; the gate records
// the outcome.
func (g *Gate) Login(ctx context.Context, username, token string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session token is required")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.adapter.Save(ctx, storage.KeyUsername, username); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist username")
	}
	if err := g.adapter.Save(ctx, storage.KeySessionToken, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist session token")
	}

	g.loggedIn = true
	g.username = username
	g.token = token

	if g.logg != nil {
		g.logg.Info(g.logg.WithUsername(ctx, username), "session.login")
	}
	return nil
}

// Logout clears the session and removes the persisted username and token.
// Logging out while logged out is harmless.
func (g *Gate) Logout(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.adapter.Remove(ctx, storage.KeyUsername); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear username")
	}
	if err := g.adapter.Remove(ctx, storage.KeySessionToken); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session token")
	}

	username := g.username
	g.loggedIn = false
	g.username = ""
	g.token = ""

	if g.logg != nil {
		g.logg.Info(g.logg.WithUsername(ctx, username), "session.logout")
	}
	return nil
}

// IsLoggedIn reports the gate state.
func (g *Gate) IsLoggedIn() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loggedIn
}

// Username returns the active shopper, empty while logged out.
func (g *Gate) Username() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.username
}

// Token returns the persisted session token, empty while logged out.
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}
