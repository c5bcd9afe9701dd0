package auth

import (
	"errors"
	"log/slog"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

// HMACVerifier implements JWTVerifier for HS256 tokens signed with a shared secret.
type HMACVerifier struct {
	secret []byte
	logger *slog.Logger
}

// NewHMACVerifier creates a verifier for tokens signed with secret
func NewHMACVerifier(secret string, logger *slog.Logger) (JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret cannot be empty")
	}
	return &HMACVerifier{secret: []byte(secret), logger: logger}, nil
}

// VerifyToken validates an HS256 token. Any other algorithm is rejected.
func (v *HMACVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{},
		func(*jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}
	return validClaims(token, v.logger)
}

// Close releases nothing
func (v *HMACVerifier) Close() error {
	return nil
}

// SignHS256 mints an HS256 token for username and role. Used by wikictl and tests.
func SignHS256(secret, username string, role models.Role, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = username
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, models.Claims{
		RegisteredClaims: claims,
		Role:             string(role),
	})
	return token.SignedString([]byte(secret))
}
