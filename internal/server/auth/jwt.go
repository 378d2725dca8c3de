// Package auth implements the token and password-hashing capabilities the
// rest of the server depends on. Tokens are stateless HS256 JWTs; there is
// no server-side session table, so a token cannot be revoked before its
// natural expiry.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkarpovs/studynotes/internal/common"
)

// Identity is the authenticated principal a verified token resolves to.
type Identity struct {
	UserID   string
	Username string
}

// Claims embeds the registered claims plus the user identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"uid"`
	Username string `json:"username"`
}

// GenerateToken mints a signed token carrying the user identity, expiring
// after validityDuration.
func GenerateToken(userID, username string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID:   userID,
		Username: username,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetIdentityFromToken verifies the signature and expiry and returns the
// embedded identity. Expired tokens map to common.ErrTokenExpired, anything
// else that fails verification to common.ErrInvalidToken.
func GetIdentityFromToken(tokenString string, secretKey []byte) (*Identity, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return &Identity{UserID: claims.UserID, Username: claims.Username}, nil
}
