// Package session issues and verifies the signed session tokens that carry
// an admin's identity and permission snapshot. Tokens are never stored
// server-side; validity is signature plus expiry.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/telegram-clone/admin-api/internal/core/domain"
)

// Claims is the token payload. Permissions are a snapshot taken at issuance;
// later permission edits do not retroactively change live sessions.
type Claims struct {
	AdminID     string             `json:"adminId"`
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Role        domain.Role        `json:"role"`
	Permissions domain.Permissions `json:"permissions"`
	jwt.RegisteredClaims
}

// Issue signs an HS256 token for the admin with the given lifetime.
func Issue(secret string, admin *domain.Admin, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		AdminID:     admin.ID,
		Username:    admin.Username,
		Email:       admin.Email,
		Role:        admin.Role,
		Permissions: admin.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse verifies signature and expiry and returns the typed claims.
// Any failure maps to domain.ErrTokenInvalid.
func Parse(secret, raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.Join(domain.ErrTokenInvalid, err)
	}
	return claims, nil
}
