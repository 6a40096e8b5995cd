package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing or malformed credentials")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidClaims = errors.New("invalid token claims")
)

// Identity is the authenticated caller as asserted by the identity provider.
// This service trusts the token fully and performs no lookups of its own.
type Identity struct {
	UserID         string
	Email          string
	FullName       string
	ProfilePicture *string
}

// IdentityClaims is the JWT payload issued by the identity provider.
type IdentityClaims struct {
	Email          string `json:"email"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
	jwt.RegisteredClaims
}

// ExtractToken pulls the bearer token from the Authorization header, falling
// back to the "token" query parameter for WebSocket upgrades (browsers cannot
// set headers on those).
func ExtractToken(r *http.Request) (string, error) {
	if authz := r.Header.Get("Authorization"); authz != "" {
		if !strings.HasPrefix(authz, "Bearer ") {
			return "", ErrMissingToken
		}
		return strings.TrimPrefix(authz, "Bearer "), nil
	}
	if token := r.URL.Query().Get("token"); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

// VerifyIdentity validates the request's JWT and returns the caller identity.
func VerifyIdentity(r *http.Request, secret string) (*Identity, error) {
	tokenStr, err := ExtractToken(r)
	if err != nil {
		return nil, err
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, ErrInvalidClaims
	}

	id := &Identity{
		UserID:   claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
	}
	if claims.ProfilePicture != "" {
		pic := claims.ProfilePicture
		id.ProfilePicture = &pic
	}
	return id, nil
}
