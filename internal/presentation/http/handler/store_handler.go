package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
)

// StoreHandler handles store-related HTTP requests
type StoreHandler struct {
	storeService *service.StoreService
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(storeService *service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

// ListStores returns every store for super admins, or only the stores
// the caller belongs to
func (h *StoreHandler) ListStores(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	stores, err := h.storeService.ListStores(c.Request.Context(), userID, IsSuperAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stores retrieved successfully", stores)
}

// GetCurrentStore returns the store the request is scoped to
func (h *StoreHandler) GetCurrentStore(c *gin.Context) {
	store, err := h.storeService.GetStore(c.Request.Context(), GetStoreID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Store retrieved successfully", store)
}

// CreateStore creates a store owned by the caller
func (h *StoreHandler) CreateStore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.CreateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.CreateStore(c.Request.Context(), &service.CreateStoreInput{
		OwnerID:        userID,
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Contact:        req.Contact,
		ReceiptPrefix:  req.ReceiptPrefix,
		PaymentOptions: req.PaymentOptions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Store created successfully", store)
}

// UpdateCurrentStore updates the current store's settings
func (h *StoreHandler) UpdateCurrentStore(c *gin.Context) {
	var req request.UpdateStoreRequest
	if !bindJSON(c, &req) {
		return
	}

	store, err := h.storeService.UpdateStore(c.Request.Context(), &service.UpdateStoreInput{
		ID:             GetStoreID(c),
		Name:           req.Name,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		Contact:        req.Contact,
		ReceiptPrefix:  req.ReceiptPrefix,
		PaymentOptions: req.PaymentOptions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store updated successfully", store)
}

// AddMember adds a user to the current store
func (h *StoreHandler) AddMember(c *gin.Context) {
	var req request.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.storeService.AddMember(c.Request.Context(), GetStoreID(c), userID, req.IsDefault); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", nil)
}
