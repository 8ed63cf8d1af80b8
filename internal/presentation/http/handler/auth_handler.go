package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/ddms-api/internal/application/service"
	"github.com/sangkips/ddms-api/internal/domain/entity"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/request"
	"github.com/sangkips/ddms-api/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
// @Summary Login
// @Description Authenticate with mobile number and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Mobile:   req.Mobile,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", loginResponse(output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if !bindJSON(c, &req) {
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", loginResponse(output))
}

// Logout handles user logout. Tokens are stateless; the client discards
// them.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if userID := GetUserID(c); userID != nil {
		h.authService.Logout(c.Request.Context(), *userID)
	}
	response.OK(c, "Logged out successfully", nil)
}

// Me returns the current user scoped to the current store
// @Summary Current user
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.authService.GetProfile(c.Request.Context(), userID, GetStoreID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully",
		response.NewUserResponse(profile.User, profile.Stores, profile.CurrentStoreID))
}

// SwitchStore issues a token scoped to another store
// @Summary Switch store
// @Tags auth
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.SwitchStoreRequest true "Target store"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /store-context/switch [post]
func (h *AuthHandler) SwitchStore(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request.SwitchStoreRequest
	if !bindJSON(c, &req) {
		return
	}
	storeID, err := uuid.Parse(req.StoreID)
	if err != nil {
		response.BadRequest(c, "Invalid store ID")
		return
	}

	output, err := h.authService.SwitchStore(c.Request.Context(), userID, storeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Store switched successfully", &response.SwitchStoreResponse{
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
		Store:        output.Store,
		User:         response.NewUserResponse(output.User, []entity.Store{*output.Store}, output.Store.ID),
	})
}

func loginResponse(output *service.LoginOutput) *response.LoginResponse {
	return &response.LoginResponse{
		User:         response.NewUserResponse(output.User, output.Stores, output.StoreID),
		Token:        output.AccessToken,
		RefreshToken: output.RefreshToken,
		TokenType:    "Bearer",
	}
}
