package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/access"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/internal/presentation/http/middleware"
	"github.com/sangkips/ddms-api/pkg/apperror"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.KeyUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetStoreID returns the store the request is scoped to
func GetStoreID(c *gin.Context) uuid.UUID {
	return middleware.GetStoreID(c)
}

// IsSuperAdmin checks if the caller holds the SUPER_ADMIN role
func IsSuperAdmin(c *gin.Context) bool {
	return middleware.SubjectFrom(c).IsSuperAdmin()
}

func currentUser(c *gin.Context) (uuid.UUID, bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, apperror.ErrUnauthorized.ErrorCode, "User not authenticated")
		return uuid.Nil, false
	}
	return *userID, true
}

func pathID(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds the body into req. Validation failures are reported
// per field; anything else is a bad request.
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]apperror.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperror.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: "failed on the '" + fe.Tag() + "' rule",
			})
		}
		response.ValidationError(c, fields)
		return false
	}
	response.BadRequest(c, "Invalid request body")
	return false
}

// fieldPath turns "CreateReceiptRequest.Items[0].Amount" into
// "items[0].amount".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToLower(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, ".")
}

// parseDate accepts YYYY-MM-DD or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(response.DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// permissionsOf is the subject handlers consult for per-request checks
func permissionsOf(c *gin.Context) access.Authorizer {
	return middleware.SubjectFrom(c)
}
