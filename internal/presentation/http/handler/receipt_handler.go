package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/domain/enum"
	"github.com/sangkips/ddms-api/internal/domain/repository"
	"github.com/sangkips/ddms-api/internal/domain/workflow"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
	"github.com/sangkips/ddms-api/pkg/apperror"
	"github.com/sangkips/ddms-api/pkg/pagination"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing receipts
// @Summary List receipts
// @Tags receipts
// @Security BearerAuth
// @Param state query string false "Receipt state, any case"
// @Param customerId query string false "Customer ID"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param search query string false "Receipt number, reference or donor"
// @Param page query int false "Page"
// @Param per_page query int false "Page size"
// @Success 200 {object} response.APIResponse
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *gin.Context) {
	var q request.ReceiptFilterRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	filter, ok := receiptFilter(c, &q)
	if !ok {
		return
	}

	result, err := h.receiptService.ListReceipts(c.Request.Context(), filter, pagination.ParseParams(q.Page, q.PerPage))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", response.NewReceiptListResponse(result))
}

// Get handles fetching one receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", response.NewReceiptResponse(receipt))
}

// Create handles creating a receipt in DRAFT
// @Summary Create receipt
// @Tags receipts
// @Security BearerAuth
// @Param Idempotency-Key header string false "Replay protection"
// @Param request body request.CreateReceiptRequest true "Receipt"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /receipts [post]
func (h *ReceiptHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.CreateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.CreateReceiptInput{
		ActorID:         userID,
		ReferenceNumber: req.ReferenceNumber,
		PaymentDetails:  req.PaymentDetails,
	}
	var fields []apperror.FieldError
	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
		input.Date = date
	}
	if id, err := uuid.Parse(req.CustomerID); err == nil {
		input.CustomerID = id
	}
	if mode, ok := paymentMode(req.PaymentMode); ok {
		input.PaymentMode = mode
	} else {
		fields = append(fields, apperror.FieldError{Field: "paymentMode", Message: "unknown payment mode"})
	}
	items, itemFields := receiptItems(req.Items)
	input.Items = items
	fields = append(fields, itemFields...)
	if len(fields) > 0 {
		response.ValidationError(c, fields)
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", response.NewReceiptResponse(receipt))
}

// Update handles editing a receipt that is still DRAFT or UNPAID
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	var req request.UpdateReceiptRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.UpdateReceiptInput{
		ID:              id,
		ReferenceNumber: req.ReferenceNumber,
		PaymentDetails:  req.PaymentDetails,
	}
	var fields []apperror.FieldError
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
		input.Date = &date
	}
	if req.CustomerID != nil {
		if customerID, err := uuid.Parse(*req.CustomerID); err == nil {
			input.CustomerID = &customerID
		}
	}
	if req.PaymentMode != nil {
		if mode, ok := paymentMode(*req.PaymentMode); ok {
			input.PaymentMode = &mode
		} else {
			fields = append(fields, apperror.FieldError{Field: "paymentMode", Message: "unknown payment mode"})
		}
	}
	if req.Items != nil {
		items, itemFields := receiptItems(req.Items)
		input.Items = items
		fields = append(fields, itemFields...)
	}
	if len(fields) > 0 {
		response.ValidationError(c, fields)
		return
	}

	receipt, err := h.receiptService.UpdateReceipt(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", response.NewReceiptResponse(receipt))
}

// ChangeState handles plain lifecycle edges
// @Summary Change receipt state
// @Description Moves a receipt along an edge that needs neither approval nor payment
// @Tags receipts
// @Security BearerAuth
// @Param request body request.ChangeStateRequest true "Target state"
// @Success 200 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse "INVALID_STATE_TRANSITION"
// @Failure 422 {object} response.APIResponse "APPROVAL_REQUIRED or PAYMENT_REQUIRED"
// @Router /receipts/{id}/state-change [post]
func (h *ReceiptHandler) ChangeState(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	var req request.ChangeStateRequest
	if !bindJSON(c, &req) {
		return
	}

	newState, err := enum.ParseReceiptState(req.NewState)
	if err != nil {
		response.ValidationError(c, []apperror.FieldError{
			{Field: "newState", Message: "unknown receipt state"},
		})
		return
	}

	receipt, err := h.receiptService.ChangeState(c.Request.Context(), &service.ChangeStateInput{
		ID:       id,
		ActorID:  userID,
		NewState: newState,
		Notes:    req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt state updated", response.NewReceiptResponse(receipt))
}

// Approve handles approving a receipt pending approval
// @Summary Approve receipt
// @Tags receipts
// @Security BearerAuth
// @Param request body request.ApproveRequest false "Notes"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /receipts/{id}/approve [post]
func (h *ReceiptHandler) Approve(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	var req request.ApproveRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	receipt, err := h.receiptService.Approve(c.Request.Context(), &service.ApproveInput{
		ID:      id,
		ActorID: userID,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt approved", response.NewReceiptResponse(receipt))
}

// Pay handles recording a payment
// @Summary Pay receipt
// @Description A payment covering the outstanding balance moves the receipt to PAID, less moves it to PARTIAL
// @Tags receipts
// @Security BearerAuth
// @Param request body request.PayRequest true "Payment"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse "INSUFFICIENT_AMOUNT or OVERPAYMENT"
// @Router /receipts/{id}/pay [post]
func (h *ReceiptHandler) Pay(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}
	var req request.PayRequest
	if !bindJSON(c, &req) {
		return
	}
	mode, ok := paymentMode(req.PaymentMode)
	if !ok {
		response.ValidationError(c, []apperror.FieldError{{Field: "paymentMode", Message: "unknown payment mode"}})
		return
	}

	receipt, err := h.receiptService.Pay(c.Request.Context(), &service.PayInput{
		ID:             id,
		ActorID:        userID,
		Amount:         req.PaidAmount,
		PaymentMode:    mode,
		PaymentDetails: req.PaymentDetails,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded", response.NewReceiptResponse(receipt))
}

// Approvals handles listing the lifecycle history of a receipt
func (h *ReceiptHandler) Approvals(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	transitions, err := h.receiptService.ListApprovals(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Approvals retrieved successfully", response.NewApprovalResponses(transitions))
}

// Actions lists what the caller may do with a receipt in its current
// state
func (h *ReceiptHandler) Actions(c *gin.Context) {
	id, ok := pathID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	actions := workflow.Actions(receipt.ReceiptState, permissionsOf(c))
	response.Success(c, http.StatusOK, "Actions retrieved successfully", response.NewActionResponses(actions))
}

func paymentMode(s string) (enum.PaymentMode, bool) {
	if s == "" {
		return "", true
	}
	var mode enum.PaymentMode
	if err := mode.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		return "", false
	}
	return mode, true
}

func receiptItems(reqs []request.ReceiptItemRequest) ([]service.ReceiptItemInput, []apperror.FieldError) {
	items := make([]service.ReceiptItemInput, 0, len(reqs))
	var fields []apperror.FieldError
	for i, r := range reqs {
		id, err := uuid.Parse(r.ParticularID)
		if err != nil {
			fields = append(fields, apperror.FieldError{
				Field:   "items[" + strconv.Itoa(i) + "].particularId",
				Message: "must be a UUID",
			})
			continue
		}
		items = append(items, service.ReceiptItemInput{ParticularID: id, Amount: r.Amount})
	}
	return items, fields
}

// receiptFilter converts list and report query parameters. It writes a
// validation error and returns false when a parameter is malformed.
func receiptFilter(c *gin.Context, q *request.ReceiptFilterRequest) (repository.ReceiptFilter, bool) {
	filter := repository.ReceiptFilter{Search: q.Search}
	var fields []apperror.FieldError

	if q.State != "" {
		state, err := enum.ParseReceiptState(q.State)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "state", Message: "unknown receipt state"})
		}
		filter.State = state
	}
	if q.CustomerID != "" {
		id, err := uuid.Parse(q.CustomerID)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "customerId", Message: "must be a UUID"})
		}
		filter.CustomerID = &id
	}
	if q.StartDate != "" {
		t, err := parseDate(q.StartDate)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "startDate", Message: "must be YYYY-MM-DD"})
		}
		filter.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := parseDate(q.EndDate)
		if err != nil {
			fields = append(fields, apperror.FieldError{Field: "endDate", Message: "must be YYYY-MM-DD"})
		}
		// A bare date includes the whole day.
		if len(q.EndDate) == len(response.DateLayout) {
			t = t.AddDate(0, 0, 1)
		}
		filter.EndDate = &t
	}

	if len(fields) > 0 {
		response.ValidationError(c, fields)
		return filter, false
	}
	return filter, true
}
