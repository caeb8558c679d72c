package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storyshare-backend/internal/domains/owner"
	"storyshare-backend/internal/shared/middleware"
	"storyshare-backend/internal/shared/response"
)

// OwnerHandler serves the /api/owners route group. Listing is public;
// mutations are admin only.
type OwnerHandler struct {
	service owner.Service
}

func NewOwnerHandler(service owner.Service) *OwnerHandler {
	return &OwnerHandler{service: service}
}

// List handles GET /api/owners.
func (h *OwnerHandler) List(c *gin.Context) {
	owners, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, owners)
}

// Create handles POST /api/owners (admin only).
func (h *OwnerHandler) Create(c *gin.Context) {
	var req owner.AddRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, created)
}

// Update handles PUT /api/owners/:id (admin only).
func (h *OwnerHandler) Update(c *gin.Context) {
	var req owner.EditRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.PathObjectID(c, "id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/owners/:id (admin only).
func (h *OwnerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PathObjectID(c, "id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "owner deleted successfully")
}

func (h *OwnerHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
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

func (h *OwnerHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
	case errors.Is(err, owner.ErrOwnerNotFound):
		response.NotFound(c, "owner not found")
	default:
		response.InternalServerError(c, err.Error())
	}
}
