package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	infraRepo "github.com/sangkips/ddms-api/internal/infrastructure/repository"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/ddms"
)

// StoreContext reconciles the X-Store-ID header with the store the
// access token is scoped to. Without the header the token's store is
// used. A header naming another store is honoured only for SUPER_ADMIN;
// everyone else has to switch stores and get a new token.
func StoreContext(storeRepo repository.StoreRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(ddms.HeaderStoreID)
		if header == "" {
			c.Next()
			return
		}

		storeID, err := uuid.Parse(header)
		if err != nil {
			response.ErrorWithCode(c, http.StatusBadRequest, ddms.CodeStoreRequired, "Invalid X-Store-ID header")
			c.Abort()
			return
		}
		if storeID == GetStoreID(c) {
			c.Next()
			return
		}

		if !SubjectFrom(c).IsSuperAdmin() {
			response.Forbidden(c, "Access denied to this store")
			c.Abort()
			return
		}
		store, err := storeRepo.GetByID(c.Request.Context(), storeID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if store == nil {
			response.NotFound(c, "Store not found")
			c.Abort()
			return
		}

		c.Set(KeyStoreID, storeID)
		c.Request = c.Request.WithContext(infraRepo.WithStore(c.Request.Context(), storeID))
		c.Next()
	}
}

// RequireStore ensures a store context exists
func RequireStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetStoreID(c) == uuid.Nil {
			response.Error(c, apperror.ErrStoreRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetStoreID retrieves the store ID from gin context
func GetStoreID(c *gin.Context) uuid.UUID {
	storeID, exists := c.Get(KeyStoreID)
	if !exists {
		return uuid.Nil
	}
	id, ok := storeID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
