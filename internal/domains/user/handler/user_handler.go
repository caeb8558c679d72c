package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storyshare-backend/internal/domains/user"
	"storyshare-backend/internal/shared/middleware"
	"storyshare-backend/internal/shared/response"
)

// UserHandler serves the /api/auth route group: signup, login, password
// reset, profile, and user administration.
type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{service: service}
}

// ========================================
// AUTHENTICATION ENDPOINTS
// ========================================

// Signup handles POST /api/auth/signup.
func (h *UserHandler) Signup(c *gin.Context) {
	var req user.SignupRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.Signup(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// AddAdmin handles POST /api/auth/add-admin (admin only, gated by the
// router).
func (h *UserHandler) AddAdmin(c *gin.Context) {
	var req user.SignupRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.AddAdmin(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// Login handles POST /api/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// LoginAdmin handles POST /api/auth/login/admin.
func (h *UserHandler) LoginAdmin(c *gin.Context) {
	var req user.LoginRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	token, err := h.service.LoginAdmin(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req user.ForgotPasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "reset password link sent")
}

// ResetPassword handles POST /api/auth/reset-password/:token.
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req user.ResetPasswordRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "password reset")
}

// ========================================
// PROFILE ENDPOINTS
// ========================================

// GetProfile handles GET /api/auth/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.service.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/auth/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto)
}

// ========================================
// ADMIN ENDPOINTS
// ========================================

// ListUsers handles GET /api/auth/users (admin only).
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, users)
}

// DeleteUser handles DELETE /api/auth/users/:id (admin only).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.service.DeleteUser(c.Request.Context(), middleware.PathObjectID(c, "id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "user deleted successfully")
}

// ========================================
// HELPERS
// ========================================

func (h *UserHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body")
		return false
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", err)
		return false
	}
	return true
}

// handleError maps domain errors onto the HTTP error taxonomy.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(c, "user not found")
	case errors.Is(err, user.ErrAdminNotFound):
		response.NotFound(c, "admin not found")
	case errors.Is(err, user.ErrEmailAlreadyRegistered):
		response.Conflict(c, "user already registered")
	case errors.Is(err, user.ErrEmailAlreadyAdmin):
		response.Conflict(c, "user is already admin")
	case errors.Is(err, user.ErrPasswordIncorrect):
		response.BadRequest(c, "password incorrect")
	case errors.Is(err, user.ErrInvalidToken):
		response.Unauthorized(c, "invalid token")
	case errors.Is(err, user.ErrNotResetToken):
		response.Forbidden(c, "unauthorized action")
	default:
		response.InternalServerError(c, err.Error())
	}
}
