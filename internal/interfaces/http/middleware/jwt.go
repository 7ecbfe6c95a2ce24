package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rxreturns/backend/internal/infrastructure/auth"
	"github.com/rxreturns/backend/internal/interfaces/http/dto"
)

// Context keys set by the JWT middleware.
const (
	JWTClaimsKey     = "jwt_claims"
	JWTPharmacyIDKey = "jwt_pharmacy_id"
	JWTUserIDKey     = "jwt_user_id"
	JWTUsernameKey   = "jwt_username"
)

// JWTMiddlewareConfig holds configuration for the JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService validates and parses tokens
	JWTService *auth.JWTService
	// Blacklist optionally rejects revoked tokens by JTI
	Blacklist auth.TokenBlacklist
	// SkipPaths are exact paths that bypass authentication
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that bypass authentication
	SkipPathPrefixes []string
	// Logger logs authentication failures
	Logger *zap.Logger
}

// JWT returns a middleware that authenticates requests with a Bearer
// token and stores the pharmacy claims in the gin context.
func JWT(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if shouldSkip(c.Request.URL.Path, cfg.SkipPaths, cfg.SkipPathPrefixes) {
			c.Next()
			return
		}

		tokenString, err := extractBearerToken(c)
		if err != nil {
			abortUnauthorized(c, "Missing or malformed Authorization header")
			return
		}

		claims, err := cfg.JWTService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("token validation failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abortUnauthorized(c, unauthorizedMessage(err))
			return
		}

		if cfg.Blacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.Blacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Warn("blacklist check failed, rejecting token",
					zap.String("jti", claims.ID),
					zap.Error(err))
				abortUnauthorized(c, "Token could not be verified")
				return
			}
			if blacklisted {
				abortUnauthorized(c, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTPharmacyIDKey, claims.PharmacyID)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)

		c.Next()
	}
}

// GetJWTClaims retrieves the validated claims from the gin context
func GetJWTClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(JWTClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

// GetJWTPharmacyID retrieves the pharmacy ID claim from the gin context
func GetJWTPharmacyID(c *gin.Context) string {
	if value, exists := c.Get(JWTPharmacyIDKey); exists {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTUserID retrieves the user ID claim from the gin context
func GetJWTUserID(c *gin.Context) string {
	if value, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

func shouldSkip(path string, skipPaths, skipPrefixes []string) bool {
	for _, p := range skipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", auth.ErrInvalidToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}

func unauthorizedMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenNotYetValid):
		return "Token is not valid yet"
	case errors.Is(err, auth.ErrMissingPharmacyID):
		return "Token is missing the pharmacy claim"
	default:
		return "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
