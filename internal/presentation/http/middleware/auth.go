package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/ddms"
	"github.com/sangkips/ddms-api/pkg/utils"
)

// Gin context keys set by AuthMiddleware
const (
	KeyUserID          = "user_id"
	KeyUserMobile      = "user_mobile"
	KeyUserRoles       = "user_roles"
	KeyUserPermissions = "user_permissions"
	KeyStoreID         = "store_id"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(ddms.HeaderAuthorization)
		if authHeader == "" {
			response.Unauthorized(c, ddms.CodeUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, ddms.CodeUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, utils.ErrTokenExpired) {
				c.Set(response.LoginStatusKey, ddms.LoginExpired)
				response.Error(c, apperror.ErrTokenExpired)
			} else {
				response.Error(c, apperror.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		c.Set(KeyUserID, claims.UserID)
		c.Set(KeyUserMobile, claims.Mobile)
		c.Set(KeyUserRoles, claims.Roles)
		c.Set(KeyUserPermissions, claims.Permissions)
		c.Set(KeyStoreID, claims.StoreID)

		if claims.StoreID != uuid.Nil {
			c.Request = c.Request.WithContext(infraRepo.WithStore(c.Request.Context(), claims.StoreID))
		}

		c.Next()
	}
}

// SubjectFrom builds the permission subject of the authenticated caller.
// It returns nil before AuthMiddleware has run.
func SubjectFrom(c *gin.Context) *access.Subject {
	if _, ok := c.Get(KeyUserID); !ok {
		return nil
	}
	return access.SubjectFromClaims(c.GetStringSlice(KeyUserRoles), c.GetStringSlice(KeyUserPermissions))
}

// RequirePermission aborts with 403 unless the caller holds
// resource:action in the current store. SUPER_ADMIN passes every check.
func RequirePermission(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SubjectFrom(c).HasPermission(resource, action) {
			response.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSuperAdmin aborts with 403 unless the caller is SUPER_ADMIN.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !SubjectFrom(c).IsSuperAdmin() {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}
		c.Next()
	}
}
