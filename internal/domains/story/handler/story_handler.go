package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"storyshare-backend/internal/domains/story"
	"storyshare-backend/internal/shared/middleware"
	"storyshare-backend/internal/shared/response"
)

// StoryHandler serves the /api/stories route group: stories plus their
// nested comment, rating, and like endpoints.
type StoryHandler struct {
	service story.Service
}

func NewStoryHandler(service story.Service) *StoryHandler {
	return &StoryHandler{service: service}
}

// ========================================
// STORY ENDPOINTS
// ========================================

// List handles GET /api/stories.
func (h *StoryHandler) List(c *gin.Context) {
	stories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, stories)
}

// Get handles GET /api/stories/:id.
func (h *StoryHandler) Get(c *gin.Context) {
	detail, err := h.service.Get(c.Request.Context(), middleware.PathObjectID(c, "id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, detail)
}

// Create handles POST /api/stories (authenticated).
func (h *StoryHandler) Create(c *gin.Context) {
	var req story.AddRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, created)
}

// Update handles PUT /api/stories/:id (authenticated; admin or author).
func (h *StoryHandler) Update(c *gin.Context) {
	var req story.EditRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.GetUserID(c), middleware.PathObjectID(c, "id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// Delete handles DELETE /api/stories/:id (admin only).
func (h *StoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.PathObjectID(c, "id")); err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "story deleted successfully")
}

// ========================================
// COMMENT ENDPOINTS
// ========================================

// ListComments handles GET /api/stories/:id/comments.
func (h *StoryHandler) ListComments(c *gin.Context) {
	comments, err := h.service.ListComments(c.Request.Context(), middleware.PathObjectID(c, "id"))
	if err != nil {
		// this endpoint's missing-story message differs from the rest
		if errors.Is(err, story.ErrStoryNotFound) {
			response.NotFound(c, "story is not found")
			return
		}
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, comments)
}

// AddComment handles POST /api/stories/:id/comments (authenticated).
func (h *StoryHandler) AddComment(c *gin.Context) {
	var req story.CommentRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	created, err := h.service.AddComment(c.Request.Context(), middleware.GetUserID(c), middleware.PathObjectID(c, "id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, created)
}

// UpdateComment handles PUT /api/stories/:id/comments/:commentId
// (authenticated).
func (h *StoryHandler) UpdateComment(c *gin.Context) {
	var req story.CommentRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	updated, err := h.service.UpdateComment(
		c.Request.Context(),
		middleware.GetUserID(c),
		middleware.PathObjectID(c, "id"),
		middleware.PathObjectID(c, "commentId"),
		req,
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteComment handles DELETE /api/stories/:id/comments/:commentId
// (authenticated; admin or the comment's author). The body is validated
// against the comment schema, matching the platform's existing contract.
func (h *StoryHandler) DeleteComment(c *gin.Context) {
	var req story.CommentRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	err := h.service.DeleteComment(
		c.Request.Context(),
		middleware.GetUserID(c),
		middleware.PathObjectID(c, "id"),
		middleware.PathObjectID(c, "commentId"),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "comment is removed")
}

// ========================================
// RATING AND LIKE ENDPOINTS
// ========================================

// AddRating handles POST /api/stories/:id/ratings (authenticated).
func (h *StoryHandler) AddRating(c *gin.Context) {
	var req story.RatingRequest
	if !h.bindAndValidate(c, &req) {
		return
	}

	err := h.service.AddRating(c.Request.Context(), middleware.GetUserID(c), middleware.PathObjectID(c, "id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "rating added")
}

// ToggleLike handles GET /api/stories/:id/likes (authenticated).
func (h *StoryHandler) ToggleLike(c *gin.Context) {
	liked, err := h.service.ToggleLike(c.Request.Context(), middleware.GetUserID(c), middleware.PathObjectID(c, "id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if liked {
		response.Message(c, http.StatusOK, "story liked")
		return
	}
	response.Message(c, http.StatusOK, "removed like from story")
}

// ========================================
// HELPERS
// ========================================

func (h *StoryHandler) bindAndValidate(c *gin.Context, req interface{ Validate() error }) bool {
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

func (h *StoryHandler) handleError(c *gin.Context, err error) {
	var vErrs validation.Errors

	switch {
	case errors.As(err, &vErrs):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "validation failed", vErrs)
	case errors.Is(err, story.ErrStoryNotFound):
		response.NotFound(c, "story not found")
	case errors.Is(err, story.ErrCommentNotFound):
		response.NotFound(c, "comment not found")
	case errors.Is(err, story.ErrAlreadyRated):
		response.BadRequest(c, "user already rated this story")
	case errors.Is(err, story.ErrUnauthorizedAction):
		response.Forbidden(c, "unauthorized action")
	default:
		response.InternalServerError(c, err.Error())
	}
}
