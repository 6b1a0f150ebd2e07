// Package auth issues and verifies the bearer tokens used by the storefront
// and the admin panel.
package auth

import (
	"errors"
	"time"

	"storefront-service/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

const (
	UserTokenTTL  = 7 * 24 * time.Hour
	AdminTokenTTL = 12 * time.Hour
)

var (
	ErrMissingToken = domain.Unauthorized("Not Authorized")
	ErrInvalidToken = domain.Unauthorized("Invalid or expired token")
	ErrForbidden    = domain.Unauthorized("Not Authorized")
)

type Claims struct {
	UserID string `json:"id,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the caller a credential was issued to.
type Identity struct {
	UserID string
	Admin  bool
}

type Guard struct {
	secret []byte
	now    func() time.Time
}

func NewGuard(secret string) *Guard {
	return &Guard{secret: []byte(secret), now: time.Now}
}

// Authorize validates credential and checks that it carries role. It has no state
// besides the secret.
func (g *Guard) Authorize(credential string, role Role) (Identity, error) {
	if credential == "" {
		return Identity{}, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(credential, claims, func(t *jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}

	id := Identity{UserID: claims.UserID, Admin: claims.Admin}
	switch role {
	case RoleAdmin:
		if !id.Admin {
			return Identity{}, ErrForbidden
		}
	case RoleUser:
		if id.UserID == "" {
			return Identity{}, ErrForbidden
		}
	default:
		return Identity{}, errors.New("auth: unknown role")
	}
	return id, nil
}

// IssueUser signs a user token valid for UserTokenTTL.
func (g *Guard) IssueUser(userID string) (string, error) {
	return g.sign(Claims{UserID: userID}, UserTokenTTL)
}

// IssueAdmin signs an administrator token valid for AdminTokenTTL.
func (g *Guard) IssueAdmin() (string, error) {
	return g.sign(Claims{Admin: true}, AdminTokenTTL)
}

func (g *Guard) sign(c Claims, ttl time.Duration) (string, error) {
	now := g.now()
	c.IssuedAt = jwt.NewNumericDate(now)
	c.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(g.secret)
}
