package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medical-history-server/internal/models"
)

// Principal is the authenticated caller for the current request. It is
// rebuilt from the token on every request and never persisted.
type Principal struct {
	UserID int64
	Role   models.Role
}

// Claims represents the JWT claims issued by the user service. UserID is a
// pointer so an absent claim is distinguishable from user id 0.
type Claims struct {
	UserID *int64 `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// VerifiedToken is the result of a successful verification.
type VerifiedToken struct {
	Principal Principal
	Subject   string
	TokenID   string
	ExpiresAt time.Time
}

// TokenVerifier validates bearer tokens with a shared-secret HMAC.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a TokenVerifier for the given shared secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify checks the token's signature and expiry and extracts the caller's
// identity. A missing or malformed userId or role claim is a hard failure.
func (v *TokenVerifier) Verify(tokenString string) (*VerifiedToken, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if claims.UserID == nil {
		return nil, fmt.Errorf("userId claim missing in token")
	}
	role, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, fmt.Errorf("invalid role claim: %w", err)
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &VerifiedToken{
		Principal: Principal{UserID: *claims.UserID, Role: role},
		Subject:   claims.Subject,
		TokenID:   claims.ID,
		ExpiresAt: expiresAt,
	}, nil
}
