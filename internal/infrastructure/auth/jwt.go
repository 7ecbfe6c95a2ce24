package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/infrastructure/config"
)

// Common errors
var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpiredToken      = errors.New("token has expired")
	ErrInvalidClaims     = errors.New("invalid token claims")
	ErrTokenNotYetValid  = errors.New("token is not yet valid")
	ErrMissingPharmacyID = errors.New("missing pharmacy_id in claims")
	ErrMissingUserID     = errors.New("missing user_id in claims")
	ErrTokenBlacklisted  = errors.New("token has been revoked")
)

// Claims represents custom JWT claims. Every token is scoped to one
// pharmacy; the pharmacy ID in the token is the only source of request
// tenancy.
type Claims struct {
	jwt.RegisteredClaims
	PharmacyID string `json:"pharmacy_id"`
	UserID     string `json:"user_id"`
	Username   string `json:"username"`
}

// IssuedToken is a signed token together with its expiration
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	TokenType string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
		issuer:     cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	PharmacyID uuid.UUID
	UserID     uuid.UUID
	Username   string
}

// GenerateToken generates a signed access token for a pharmacy user
func (s *JWTService) GenerateToken(input GenerateTokenInput) (*IssuedToken, error) {
	now := time.Now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		PharmacyID: input.PharmacyID.String(),
		UserID:     input.UserID.String(),
		Username:   input.Username,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{
		Token:     signed,
		ExpiresAt: now.Add(s.expiration),
		TokenType: "Bearer",
	}, nil
}

// ValidateToken validates a token and returns its claims
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.PharmacyID == "" {
		return nil, ErrMissingPharmacyID
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// GetPharmacyUUID extracts and parses the pharmacy ID from claims
func (c *Claims) GetPharmacyUUID() (uuid.UUID, error) {
	return uuid.Parse(c.PharmacyID)
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetExpiration returns the configured token lifetime
func (s *JWTService) GetExpiration() time.Duration {
	return s.expiration
}
