package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"wikiflow/internal/domain"
	"wikiflow/internal/domain/models"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSVerifier implements JWTVerifier with public keys fetched from a JWKS endpoint.
type JWKSVerifier struct {
	jwks   keyfunc.Keyfunc
	logger *slog.Logger
}

// NewJWKSVerifier creates a verifier for RS256/ES256 tokens. keyfunc caches the
// key set and refreshes it from HTTP cache headers.
func NewJWKSVerifier(jwksURL string, logger *slog.Logger) (JWTVerifier, error) {
	if jwksURL == "" {
		return nil, errors.New("JWKS URL cannot be empty")
	}

	jwks, err := keyfunc.NewDefaultCtx(context.Background(), []string{jwksURL})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWKS client: %w", err)
	}

	logger.Info("JWT verifier initialized", "jwks_url", jwksURL)

	return &JWKSVerifier{
		jwks:   jwks,
		logger: logger,
	}, nil
}

// VerifyToken validates a token signed by a key from the JWKS
func (v *JWKSVerifier) VerifyToken(tokenString string) (*models.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.Claims{}, v.jwks.Keyfunc,
		jwt.WithValidMethods([]string{"RS256", "ES256"}),
	)
	if err != nil {
		v.logger.Debug("token parse failed", "error", err)
		return nil, domain.ErrUnauthorized
	}
	return validClaims(token, v.logger)
}

// Close is a no-op; keyfunc v3 manages its own refresh goroutine lifetime.
func (v *JWKSVerifier) Close() error {
	v.logger.Info("JWT verifier closed")
	return nil
}

// validClaims extracts claims from a parsed token and requires a subject
func validClaims(token *jwt.Token, logger *slog.Logger) (*models.Claims, error) {
	if !token.Valid {
		logger.Debug("token is invalid after parsing")
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*models.Claims)
	if !ok {
		logger.Error("failed to extract claims from token")
		return nil, domain.ErrUnauthorized
	}

	// sub carries the username
	if claims.Subject == "" {
		logger.Debug("token missing subject claim")
		return nil, domain.ErrUnauthorized
	}

	return claims, nil
}
