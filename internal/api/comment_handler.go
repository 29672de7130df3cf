package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles public comment and moderation endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// List handles GET /api/comments?contentId=
func (h *CommentHandler) List(c *gin.Context) {
	comments, err := h.services.Comment.ListPublic(c.Request.Context(), c.Query("contentId"))
	if err != nil {
		respondError(c, h.log, err, "Article not found", "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Create handles POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	comment, err := h.services.Comment.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err, "Article not found", "Failed to create comment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Comment submitted successfully. It will be visible after admin approval.",
		"commentId": comment.ID,
	})
}

// AdminList handles GET /api/comments/admin?contentId=
func (h *CommentHandler) AdminList(c *gin.Context) {
	comments, err := h.services.Comment.ListAdmin(c.Request.Context(), c.Query("contentId"))
	if err != nil {
		respondError(c, h.log, err, "Article not found", "Failed to fetch comments")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// AdminAction handles POST /api/comments/admin
func (h *CommentHandler) AdminAction(c *gin.Context) {
	var req models.CommentActionRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, err := h.services.Comment.Moderate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Comment not found", "Failed to perform action")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}
