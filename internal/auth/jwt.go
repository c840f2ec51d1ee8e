package auth

import (
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"citizendesk/backend/internal/config"
	"citizendesk/backend/internal/models"
)

const issuer = "citizendesk-service"

// Actor is the authenticated staff identity carried through a request.
type Actor struct {
	UserID string
	Name   string
	Email  string
	Role   models.Role
}

// TokenManager issues and verifies admin session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a TokenManager with the shared HS256 secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: config.TokenTTL}
}

// Issue signs a token for the given staff user.
func (tm *TokenManager) Issue(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(tm.ttl).Unix(),
		"iss":   issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token, returning the embedded actor.
func (tm *TokenManager) Verify(tokenString string) (*Actor, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	role := models.Role(stringClaim(claims, "role"))
	if !models.ValidRole(role) {
		return nil, errors.New("invalid token: unknown role")
	}

	return &Actor{
		UserID: stringClaim(claims, "sub"),
		Name:   stringClaim(claims, "name"),
		Email:  stringClaim(claims, "email"),
		Role:   role,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}
