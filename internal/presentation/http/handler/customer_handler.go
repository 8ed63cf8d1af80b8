package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/pkg/pagination"
)

// CustomerHandler handles donor-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers of the current store
func (h *CustomerHandler) List(c *gin.Context) {
	params := pagination.ParseParams(c.Query("page"), c.Query("per_page"))

	result, err := h.customerService.ListCustomers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customers retrieved successfully", result)
}

// Get handles fetching one customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}
	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:            id,
		AccountNumber: req.AccountNumber,
		Name:          req.Name,
		Mobile:        req.Mobile,
		Email:         req.Email,
		Address:       req.Address,
		Active:        req.Active,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}

// ParticularHandler handles particular-related HTTP requests
type ParticularHandler struct {
	particularService *service.ParticularService
}

// NewParticularHandler creates a new particular handler
func NewParticularHandler(particularService *service.ParticularService) *ParticularHandler {
	return &ParticularHandler{particularService: particularService}
}

// List handles listing particulars. ?type= narrows by type and
// ?active=true hides retired ones.
func (h *ParticularHandler) List(c *gin.Context) {
	particulars, err := h.particularService.ListParticulars(c.Request.Context(), repository.ParticularFilter{
		Type:       c.Query("type"),
		ActiveOnly: c.Query("active") == "true",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Particulars retrieved successfully", particulars)
}

// Create handles creating a particular
func (h *ParticularHandler) Create(c *gin.Context) {
	var req request.CreateParticularRequest
	if !bindJSON(c, &req) {
		return
	}

	particular, err := h.particularService.CreateParticular(c.Request.Context(), &service.CreateParticularInput{
		Name: req.Name,
		Type: enum.ParticularType(req.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Particular created successfully", particular)
}

// Update handles updating a particular
func (h *ParticularHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "particular")
	if !ok {
		return
	}
	var req request.UpdateParticularRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateParticularInput{
		ID:     id,
		Name:   req.Name,
		Active: req.Active,
	}
	if req.Type != nil {
		t := enum.ParticularType(*req.Type)
		input.Type = &t
	}

	particular, err := h.particularService.UpdateParticular(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Particular updated successfully", particular)
}

// Delete handles deleting a particular
func (h *ParticularHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "particular")
	if !ok {
		return
	}

	if err := h.particularService.DeleteParticular(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Particular deleted successfully", nil)
}
