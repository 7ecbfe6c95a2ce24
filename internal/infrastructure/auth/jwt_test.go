package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rxreturns/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     "test-secret-key-at-least-32-chars!",
		Expiration: time.Hour,
		Issuer:     "rxreturns-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	t.Run("generates a valid bearer token", func(t *testing.T) {
		service := newTestJWTService()

		issued, err := service.GenerateToken(GenerateTokenInput{
			PharmacyID: uuid.New(),
			UserID:     uuid.New(),
			Username:   "pharmacist",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, issued.Token)
		assert.Equal(t, "Bearer", issued.TokenType)
		assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)
	})
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("round-trips claims", func(t *testing.T) {
		service := newTestJWTService()
		pharmacyID := uuid.New()
		userID := uuid.New()

		issued, err := service.GenerateToken(GenerateTokenInput{
			PharmacyID: pharmacyID,
			UserID:     userID,
			Username:   "pharmacist",
		})
		require.NoError(t, err)

		claims, err := service.ValidateToken(issued.Token)

		require.NoError(t, err)
		assert.Equal(t, pharmacyID.String(), claims.PharmacyID)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "pharmacist", claims.Username)
		assert.Equal(t, "rxreturns-test", claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects token signed with a different secret", func(t *testing.T) {
		service := newTestJWTService()
		other := NewJWTService(config.JWTConfig{
			Secret:     "another-secret-key-also-32-chars!!",
			Expiration: time.Hour,
			Issuer:     "rxreturns-test",
		})

		issued, err := other.GenerateToken(GenerateTokenInput{
			PharmacyID: uuid.New(),
			UserID:     uuid.New(),
		})
		require.NoError(t, err)

		claims, err := service.ValidateToken(issued.Token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		service := NewJWTService(config.JWTConfig{
			Secret:     "test-secret-key-at-least-32-chars!",
			Expiration: -time.Minute,
			Issuer:     "rxreturns-test",
		})

		issued, err := service.GenerateToken(GenerateTokenInput{
			PharmacyID: uuid.New(),
			UserID:     uuid.New(),
		})
		require.NoError(t, err)

		claims, err := service.ValidateToken(issued.Token)

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		service := newTestJWTService()

		claims, err := service.ValidateToken("not.a.token")

		assert.Nil(t, claims)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestClaims_Helpers(t *testing.T) {
	service := newTestJWTService()
	pharmacyID := uuid.New()
	userID := uuid.New()

	issued, err := service.GenerateToken(GenerateTokenInput{
		PharmacyID: pharmacyID,
		UserID:     userID,
	})
	require.NoError(t, err)

	claims, err := service.ValidateToken(issued.Token)
	require.NoError(t, err)

	t.Run("parses pharmacy UUID", func(t *testing.T) {
		parsed, err := claims.GetPharmacyUUID()
		assert.NoError(t, err)
		assert.Equal(t, pharmacyID, parsed)
	})

	t.Run("parses user UUID", func(t *testing.T) {
		parsed, err := claims.GetUserUUID()
		assert.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("remaining TTL is positive for live token", func(t *testing.T) {
		assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
	})
}
