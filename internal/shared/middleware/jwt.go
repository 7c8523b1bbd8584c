package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/enslabs/clubs-admin-api/internal/config"
	sharedContext "github.com/enslabs/clubs-admin-api/internal/shared/context"
	sharedError "github.com/enslabs/clubs-admin-api/internal/shared/error"
	"github.com/enslabs/clubs-admin-api/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

// Session error constants (errInfo)
const (
	missingToken  = "MISSING_TOKEN"
	invalidToken  = "INVALID_TOKEN"
	expiredToken  = "EXPIRED_TOKEN"
	invalidClaims = "INVALID_CLAIMS"
	notAdmin      = "NOT_ADMIN"
)

// Domain errors
var (
	ErrMissingToken  = sharedError.NewDomainError(missingToken)
	ErrInvalidToken  = sharedError.NewDomainError(invalidToken)
	ErrExpiredToken  = sharedError.NewDomainError(expiredToken)
	ErrInvalidClaims = sharedError.NewDomainError(invalidClaims)
	ErrNotAdmin      = sharedError.NewDomainError(notAdmin)
)

// Register session error responses
func init() {
	unauthorized := sharedError.ErrorResponse{
		Status:  http.StatusUnauthorized,
		Code:    "AUTH-000",
		Message: "Authentication required.",
	}

	sharedError.RegisterDomainErrorResponse(missingToken, unauthorized)
	sharedError.RegisterDomainErrorResponse(invalidToken, unauthorized)
	sharedError.RegisterDomainErrorResponse(expiredToken, unauthorized)
	sharedError.RegisterDomainErrorResponse(invalidClaims, unauthorized)

	sharedError.RegisterDomainErrorResponse(notAdmin, sharedError.ErrorResponse{
		Status:  http.StatusForbidden,
		Code:    "AUTH-001",
		Message: "This wallet is not authorized to administer clubs.",
	})
}

// AdminSession authenticates the bearer session token and requires the
// resolved wallet address to be on the admin allowlist. Authorization
// short-circuits here, before any core logic runs.
func AdminSession(cfg *config.Config, tokenManager token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		// Step 1: extract token
		tokenString, err := extractToken(c)
		if err != nil {
			slog.Warn("session token extraction failed",
				"step", "extract_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleSessionError(c, err)
			return
		}

		// Step 2: validate token
		claims, err := tokenManager.ValidateToken(tokenString)
		if err != nil {
			slog.Warn("session token validation failed",
				"step", "validate_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleSessionError(c, mapTokenError(err))
			return
		}

		// Step 3: admin allowlist
		if !cfg.IsAdmin(claims.Address) {
			slog.Warn("non-admin wallet rejected",
				"step", "admin_check",
				"address", claims.Address,
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handleSessionError(c, ErrNotAdmin)
			return
		}

		c.Set(sharedContext.ActorAddressKey, claims.Address)
		c.Next()
	}
}

// handleSessionError responds using the standardized error response format.
// Logging happens at the point of detection in AdminSession.
func handleSessionError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		c.JSON(resp.Status, resp)
	} else {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-999",
			Message: "Authentication failed.",
		})
	}
	c.Abort()
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", ErrMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) {
		return "", ErrInvalidToken
	}

	return parts[1], nil
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, token.ErrExpiredToken):
		return ErrExpiredToken
	case errors.Is(err, token.ErrInvalidClaims):
		return ErrInvalidClaims
	default:
		return ErrInvalidToken
	}
}
