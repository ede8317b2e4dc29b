package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/university-service/internal/auth"
	"github.com/SAP-F-2025/university-service/internal/models"
	"github.com/SAP-F-2025/university-service/internal/utils"
)

// Context keys set by the auth middleware
const (
	ctxUserID   = "user_id"
	ctxUserRole = "user_role"
	ctxClaims   = "claims"
)

// TokenValidator checks a bearer token and returns its claims
type TokenValidator interface {
	Validate(ctx context.Context, token string) (*auth.Claims, error)
}

// JWTAuthMiddleware authenticates requests with the service's own tokens
type JWTAuthMiddleware struct {
	tokens TokenValidator
	logger utils.Logger
}

func NewJWTAuthMiddleware(tokens TokenValidator, logger utils.Logger) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens, logger: logger}
}

// AuthMiddleware rejects the request with 401 unless it carries a valid token
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.tokens.Validate(c.Request.Context(), bearerToken(c.GetHeader("Authorization")))
		if err != nil {
			utils.FromContext(c, m.logger).Info("Token rejected", "path", c.Request.URL.Path, "reason", err.Error())
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: tokenErrorMessage(err)})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserRole, claims.Role)
		c.Set(ctxClaims, claims)

		c.Next()
	}
}

// bearerToken extracts the token from "Bearer <token>"; anything else counts as missing
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

func tokenErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenMissing):
		return "Missing authorization token"
	case errors.Is(err, auth.ErrTokenExpired):
		return "Token has expired"
	case errors.Is(err, auth.ErrTokenRevoked):
		return "Token has been revoked"
	default:
		return "Invalid token"
	}
}

// GetClaimsFromContext returns the claims stored by AuthMiddleware
func GetClaimsFromContext(c *gin.Context) (*auth.Claims, error) {
	v, exists := c.Get(ctxClaims)
	if !exists {
		return nil, fmt.Errorf("claims not found in context")
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil, fmt.Errorf("invalid claims type in context")
	}
	return claims, nil
}

// GetUserIDFromContext extracts user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userID, exists := c.Get(ctxUserID)
	if !exists {
		return 0, fmt.Errorf("user ID not found in context")
	}

	id, ok := userID.(uint)
	if !ok {
		return 0, fmt.Errorf("invalid user ID type in context")
	}

	return id, nil
}

// GetUserRoleFromContext extracts user role from Gin context
func GetUserRoleFromContext(c *gin.Context) (models.UserRole, error) {
	userRole, exists := c.Get(ctxUserRole)
	if !exists {
		return "", fmt.Errorf("user role not found in context")
	}

	role, ok := userRole.(models.UserRole)
	if !ok {
		return "", fmt.Errorf("invalid user role type in context")
	}

	return role, nil
}
