package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrUnauthorized = errors.New("invalid or missing credential")

// TokenIssuer signs and verifies the bearer credentials handed out by
// /auth/login. HS256 with a shared secret; claims carry identity + role so
// handlers never need a user lookup per request.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

func (t *TokenIssuer) Issue(u *User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(t.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) Verify(token string) (Identity, error) {
	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Identity{}, ErrUnauthorized
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrUnauthorized
	}
	sub, _ := claims["sub"].(string)
	name, _ := claims["name"].(string)
	roleStr, _ := claims["role"].(string)
	role, ok := ParseRole(roleStr)
	if sub == "" || !ok {
		return Identity{}, ErrUnauthorized
	}
	return Identity{UserID: sub, Name: name, Role: role}, nil
}
