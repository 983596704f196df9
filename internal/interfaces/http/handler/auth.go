package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/retailhub/backend/internal/application/identity"
	"github.com/retailhub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *identity.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
// @Summary      Register an account
// @Description  Create a buyer or shop account; a confirmation key is sent by email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RegisterRequest true "Registration details"
// @Success      201 {object} dto.Response{data=identity.RegisterResult}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req identity.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// Confirm godoc
// @Summary      Confirm an account
// @Description  Activate a pending account with the emailed confirmation key
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.ConfirmRequest true "Confirmation key"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/confirm [post]
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req identity.ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	if err := h.authService.Confirm(c.Request.Context(), req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Account confirmed"})
}

// Login godoc
// @Summary      Log in
// @Description  Authenticate with email and password, returns a JWT pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Credentials"
// @Success      200 {object} dto.Response{data=identity.LoginResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new JWT pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshRequest true "Refresh token"
// @Success      200 {object} dto.Response{data=identity.LoginResult}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
// @Summary      Log out
// @Description  Revoke the current access token
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user ID in token")
		return
	}

	err = h.authService.Logout(c.Request.Context(), identity.LogoutInput{
		UserID:   userID,
		TokenJTI: claims.ID,
		TokenTTL: claims.GetRemainingTTL(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// GetProfile godoc
// @Summary      Get own profile
// @Tags         auth
// @Produce      json
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}

// UpdateProfile godoc
// @Summary      Update own profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.UpdateProfileRequest true "Profile details"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	info, err := h.authService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, info)
}
