package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the typed JWT issued after a successful login.
type SessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}
