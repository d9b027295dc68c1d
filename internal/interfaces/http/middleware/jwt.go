package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/identity"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/auth"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/logger"
	"github.com/Bhargav2112/Flipcart-Clone/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey    = "jwt_claims"
	JWTPrincipalKey = "jwt_principal"
	UserEmailKey    = "user_email"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

var errMissingToken = errors.New("missing bearer token")

// RevocationChecker reports whether a token id was revoked by logout
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	// JWTService is required for token validation
	JWTService *auth.JWTService
	// Revocations is optional; without it logout cannot revoke access tokens
	Revocations RevocationChecker
	// Optional lets requests without a token through as anonymous.
	// A token that is present must still be valid.
	Optional bool
	Logger   *zap.Logger
}

// JWTAuth authenticates the bearer token and stores the caller's principal
func JWTAuth(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			if cfg.Optional {
				c.Set(JWTPrincipalKey, identity.Principal{})
				c.Next()
				return
			}
			abortAuth(c, cfg, errMissingToken, "Missing authorization header")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, BearerPrefix)
		if !ok || tokenString == "" {
			abortAuth(c, cfg, errMissingToken, "Invalid authorization header format")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortAuth(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.Revocations != nil && claims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				// revocation lookups fail open
				cfg.Logger.Error("Failed to check token revocation",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if revoked {
				abortAuth(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		userID, err := claims.UserUUID()
		if err != nil {
			abortAuth(c, cfg, auth.ErrInvalidClaims, "Malformed user id")
			return
		}
		principal := identity.NewPrincipal(userID, claims.Email, identity.Role(claims.Role))

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTPrincipalKey, principal)
		c.Set(UserEmailKey, principal.Email)

		ctx := logger.WithUserEmail(c.Request.Context(), principal.Email)
		ctx = logger.WithContext(ctx, logger.FromContext(ctx).With(zap.String("user_email", principal.Email)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// abortAuth answers 401 with the token error code
func abortAuth(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	cfg.Logger.Debug("JWT authentication failed",
		zap.Error(err),
		zap.String("reason", message),
		zap.String("path", c.Request.URL.Path),
	)

	code, msg := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, msg = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		code, msg = dto.ErrCodeTokenRevoked, "Token has been revoked"
	case !errors.Is(err, errMissingToken):
		code, msg = dto.ErrCodeTokenInvalid, "Invalid token"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, msg, GetRequestID(c)))
}

// RequireAuth rejects anonymous callers. Pair it with an optional JWTAuth.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetPrincipal(c).IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// RequireRole lets only principals holding one of roles through. Admins pass
// every role check.
func RequireRole(roles ...identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p.IsAnonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, "Authentication required", GetRequestID(c)))
			return
		}
		if !p.IsAdmin() && !slices.Contains(roles, p.Role) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden, "Insufficient role", GetRequestID(c)))
			return
		}
		c.Next()
	}
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetPrincipal returns the authenticated caller, or the anonymous principal
func GetPrincipal(c *gin.Context) identity.Principal {
	if v, exists := c.Get(JWTPrincipalKey); exists {
		if p, ok := v.(identity.Principal); ok {
			return p
		}
	}
	return identity.Principal{}
}

// GetUserID returns the authenticated user's id, or uuid.Nil
func GetUserID(c *gin.Context) uuid.UUID {
	return GetPrincipal(c).UserID
}
