package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storyshare-backend/internal/domains/genre"
	"storyshare-backend/internal/shared/middleware"
	"storyshare-backend/internal/shared/response"
)

// GenreHandler serves the /api/genres route group. Listing is public;
// mutations are admin only.
type GenreHandler struct {
	service genre.Service
}

func NewGenreHandler(service genre.Service) *GenreHandler {
	return &GenreHandler{service: service}
}

// List handles GET /api/genres.
func (h *GenreHandler) List(c *gin.Context) {
	genres, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, genres)
}

// Create handles POST /api/genres (admin only).
func (h *GenreHandler) Create(c *gin.Context) {
	var req genre.AddRequest
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

// Update handles PUT /api/genres/:id (admin only).
func (h *GenreHandler) Update(c *gin.Context) {
	var req genre.EditRequest
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

// Delete handles DELETE /api/genres/:id (admin only).
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PathObjectID(c, "id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "genre deleted successfully")
}

func (h *GenreHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
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

func (h *GenreHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
	case errors.Is(err, genre.ErrGenreNotFound):
		response.NotFound(c, "genre not found")
	default:
		response.InternalServerError(c, err.Error())
	}
}
