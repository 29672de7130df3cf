package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

const contentNotFound = "Content not found"

// ContentHandler handles article and image endpoints
type ContentHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// List handles GET /api/content
// Visitors only see published rows
func (h *ContentHandler) List(c *gin.Context) {
	contentType, err := validation.ParseContentType(c.Query("type"))
	if err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to fetch content")
		return
	}

	items, err := h.services.Content.List(c.Request.Context(), models.ContentFilter{
		Type:          contentType,
		PublishedOnly: !isAdmin(c),
	})
	if err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to fetch content")
		return
	}
	c.JSON(http.StatusOK, items)
}

// Get handles GET /api/content/:id
func (h *ContentHandler) Get(c *gin.Context) {
	item, err := h.services.Content.Get(c.Request.Context(), c.Param("id"), isAdmin(c))
	if err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to fetch content")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /api/content
// A multipart body uploads an image; a JSON body creates an article
func (h *ContentHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	if isMultipart(c) {
		upload, err := readUpload(c, "file", h.cfg.Storage.MaxImageSize)
		if err != nil {
			respondError(c, h.log, err, contentNotFound, "Failed to create content")
			return
		}
		item, err := h.services.Content.CreateImage(ctx, imageInput(c), upload)
		if err != nil {
			respondError(c, h.log, err, contentNotFound, "Failed to create content")
			return
		}
		c.JSON(http.StatusCreated, item)
		return
	}

	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	item, err := h.services.Content.CreateArticle(ctx, &in)
	if err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to create content")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Update handles PUT /api/content/:id
// A multipart body may carry a replacement file
func (h *ContentHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if isMultipart(c) {
		upload, err := readUpload(c, "file", h.cfg.Storage.MaxImageSize)
		if err != nil {
			respondError(c, h.log, err, contentNotFound, "Failed to update content")
			return
		}
		item, err := h.services.Content.UpdateImage(ctx, id, imageInput(c), upload)
		if err != nil {
			respondError(c, h.log, err, contentNotFound, "Failed to update content")
			return
		}
		c.JSON(http.StatusOK, item)
		return
	}

	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	item, err := h.services.Content.Update(ctx, id, &in)
	if err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to update content")
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /api/content/:id
func (h *ContentHandler) Delete(c *gin.Context) {
	if err := h.services.Content.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err, contentNotFound, "Failed to delete content")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Content deleted successfully"})
}

// imageInput reads the text fields of an image form. Absent fields stay nil.
func imageInput(c *gin.Context) *models.ImageInput {
	in := &models.ImageInput{Title: c.PostForm("title")}
	if desc, ok := c.GetPostForm("description"); ok {
		in.Description = &desc
	}
	if raw, ok := c.GetPostForm("published"); ok {
		if published, err := strconv.ParseBool(raw); err == nil {
			in.Published = &published
		} else if raw == "on" {
			published = true
			in.Published = &published
		}
	}
	return in
}
