package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

// AdminHandler renders the admin panel and handles its form posts
type AdminHandler struct {
	services *service.Services
	cfg      *config.Config
	auth     *AuthHandler
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, cfg *config.Config, auth *AuthHandler, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		cfg:      cfg,
		auth:     auth,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// LoginPage handles GET /admin/login
func (h *AdminHandler) LoginPage(c *gin.Context) {
	if isAdmin(c) {
		c.Redirect(http.StatusSeeOther, safeNext(c.Query("next")))
		return
	}
	c.HTML(http.StatusOK, "admin_login.html", gin.H{
		"Error": c.Query("err"),
		"Next":  c.Query("next"),
	})
}

// Login handles POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	next := c.PostForm("next")
	if err := c.ShouldBind(&req); err != nil {
		h.loginFailed(c, next, "Username dan password wajib diisi")
		return
	}

	session, err := h.services.Auth.Login(req.Username, req.Password)
	if err != nil {
		h.loginFailed(c, next, "Username atau password salah")
		return
	}
	h.auth.setSessionCookie(c, session)
	c.Redirect(http.StatusSeeOther, safeNext(next))
}

func (h *AdminHandler) loginFailed(c *gin.Context, next, message string) {
	c.HTML(http.StatusUnauthorized, "admin_login.html", gin.H{
		"Error": message,
		"Next":  next,
	})
}

// Logout handles POST /admin/logout
func (h *AdminHandler) Logout(c *gin.Context) {
	h.auth.clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/admin/login")
}

// Dashboard handles GET /admin
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	stats, err := h.services.Stats.Dashboard(ctx)
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	storageStats, err := h.services.Stats.StorageStats(ctx)
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	data := pageData(c, "Dashboard", "dashboard")
	data["Stats"] = stats
	data["Storage"] = storageStats
	c.HTML(http.StatusOK, "admin_dashboard.html", data)
}

// Content handles GET /admin/content
func (h *AdminHandler) Content(c *gin.Context) {
	contentType, err := validation.ParseContentType(c.Query("type"))
	if err != nil {
		contentType = ""
	}
	items, err := h.services.Content.List(c.Request.Context(), models.ContentFilter{Type: contentType})
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	data := pageData(c, "Konten", "content")
	data["Items"] = items
	data["Type"] = string(contentType)
	c.HTML(http.StatusOK, "admin_content.html", data)
}

// NewContent handles GET /admin/content/new?type=
func (h *AdminHandler) NewContent(c *gin.Context) {
	kind := models.ContentTypeArticle
	if strings.EqualFold(c.Query("type"), string(models.ContentTypeImage)) {
		kind = models.ContentTypeImage
	}
	h.renderForm(c, http.StatusOK, nil, kind, "")
}

// CreateContent handles POST /admin/content/new
func (h *AdminHandler) CreateContent(c *gin.Context) {
	ctx := c.Request.Context()
	kind := models.ContentType(c.PostForm("type"))

	var err error
	if kind == models.ContentTypeImage {
		var upload *service.Upload
		if upload, err = readUpload(c, "file", h.cfg.Storage.MaxImageSize); err == nil {
			_, err = h.services.Content.CreateImage(ctx, imageInput(c), upload)
		}
	} else {
		kind = models.ContentTypeArticle
		_, err = h.services.Content.CreateArticle(ctx, articleForm(c))
	}

	if err != nil {
		h.formFailed(c, nil, kind, err)
		return
	}
	redirectWithFlash(c, "/admin/content", "ok", "Konten berhasil disimpan")
}

// EditContent handles GET /admin/content/:id/edit
func (h *AdminHandler) EditContent(c *gin.Context) {
	item, err := h.services.Content.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, item, item.Type, "")
}

// UpdateContent handles POST /admin/content/:id/edit
func (h *AdminHandler) UpdateContent(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	item, err := h.services.Content.Get(ctx, id, true)
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	if item.Type == models.ContentTypeImage {
		in := imageInput(c)
		in.Published = checkbox(c, "published")
		var upload *service.Upload
		if upload, err = readUpload(c, "file", h.cfg.Storage.MaxImageSize); err == nil {
			_, err = h.services.Content.UpdateImage(ctx, id, in, upload)
		}
	} else {
		_, err = h.services.Content.Update(ctx, id, articleForm(c))
	}

	if err != nil {
		h.formFailed(c, item, item.Type, err)
		return
	}
	redirectWithFlash(c, "/admin/content", "ok", "Konten berhasil diperbarui")
}

// TogglePublish handles POST /admin/content/:id/publish
func (h *AdminHandler) TogglePublish(c *gin.Context) {
	published, _ := strconv.ParseBool(c.PostForm("published"))
	_, err := h.services.Content.Update(c.Request.Context(), c.Param("id"), &models.ArticleInput{Published: &published})
	if err != nil {
		redirectWithError(c, "/admin/content", err, h.log)
		return
	}
	msg := "Konten disembunyikan"
	if published {
		msg = "Konten dipublikasikan"
	}
	redirectWithFlash(c, "/admin/content", "ok", msg)
}

// DeleteContent handles POST /admin/content/:id/delete
func (h *AdminHandler) DeleteContent(c *gin.Context) {
	if err := h.services.Content.Delete(c.Request.Context(), c.Param("id")); err != nil {
		redirectWithError(c, "/admin/content", err, h.log)
		return
	}
	redirectWithFlash(c, "/admin/content", "ok", "Konten berhasil dihapus")
}

// Donations handles GET /admin/donations
func (h *AdminHandler) Donations(c *gin.Context) {
	filter := models.DonationFilter{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", 20),
	}
	if status, err := validation.ParseDonationStatus(c.Query("status")); err == nil {
		filter.Status = status
	}

	page, err := h.services.Donation.List(c.Request.Context(), filter)
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	data := pageData(c, "Donasi", "donations")
	data["Page"] = page
	data["Status"] = string(filter.Status)
	c.HTML(http.StatusOK, "admin_donations.html", data)
}

// UpdateDonation handles POST /admin/donations/:id/status
func (h *AdminHandler) UpdateDonation(c *gin.Context) {
	// Return to the same filter and page
	back := "/admin/donations"
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Path == back {
		back = ref.RequestURI()
	}

	d, err := h.services.Donation.UpdateStatus(c.Request.Context(), c.Param("id"), c.PostForm("status"))
	if err != nil {
		redirectWithError(c, back, err, h.log)
		return
	}
	msg := "Donasi diverifikasi"
	if d.Status == models.DonationStatusRejected {
		msg = "Donasi ditolak"
	}
	redirectWithFlash(c, back, "ok", msg)
}

// Comments handles GET /admin/comments
func (h *AdminHandler) Comments(c *gin.Context) {
	comments, err := h.services.Comment.ListAdmin(c.Request.Context(), c.Query("contentId"))
	if err != nil {
		h.renderFailure(c, err)
		return
	}
	data := pageData(c, "Komentar", "comments")
	data["Comments"] = comments
	c.HTML(http.StatusOK, "admin_comments.html", data)
}

// CommentAction handles POST /admin/comments/action
func (h *AdminHandler) CommentAction(c *gin.Context) {
	var req models.CommentActionRequest
	var msg string
	err := bindForm(c, &req)
	if err == nil {
		msg, err = h.services.Comment.Moderate(c.Request.Context(), &req)
	}
	if err != nil {
		redirectWithError(c, "/admin/comments", err, h.log)
		return
	}
	redirectWithFlash(c, "/admin/comments", "ok", msg)
}

func (h *AdminHandler) renderForm(c *gin.Context, status int, item *models.Content, kind models.ContentType, formErr string) {
	title, action := "Tulis Artikel", "/admin/content/new"
	if kind == models.ContentTypeImage {
		title = "Unggah Gambar"
	}
	published := kind == models.ContentTypeImage
	if item != nil {
		title, action = "Ubah Konten", "/admin/content/"+item.ID+"/edit"
		published = item.Published
	}

	data := pageData(c, title, "content")
	data["Item"] = item
	data["Kind"] = string(kind)
	data["Action"] = action
	data["Published"] = published
	data["Error"] = formErr
	c.HTML(status, "admin_content_form.html", data)
}

// formFailed re-renders the form with the client-facing message for err
func (h *AdminHandler) formFailed(c *gin.Context, item *models.Content, kind models.ContentType, err error) {
	status, body := classifyError(err, "Konten tidak ditemukan")
	message, _ := body["error"].(string)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to save content")
		message = "Terjadi kesalahan saat menyimpan konten"
	}
	h.renderForm(c, status, item, kind, message)
}

func (h *AdminHandler) renderFailure(c *gin.Context, err error) {
	status, body := classifyError(err, "Data tidak ditemukan")
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to render admin page")
		body = gin.H{"error": "Terjadi kesalahan, silakan coba lagi nanti."}
	}
	data := pageData(c, "Kesalahan", "")
	data["Message"] = body["error"]
	c.HTML(status, "not_found.html", data)
}

// articleForm reads an article from the admin form. Unchecked boxes are
// sent as published=false.
func articleForm(c *gin.Context) *models.ArticleInput {
	in := &models.ArticleInput{Published: checkbox(c, "published")}
	for field, dst := range map[string]**string{
		"title":       &in.Title,
		"description": &in.Description,
		"content":     &in.Content,
		"excerpt":     &in.Excerpt,
	} {
		if v, ok := c.GetPostForm(field); ok {
			v := v
			*dst = &v
		}
	}
	return in
}

func checkbox(c *gin.Context, field string) *bool {
	checked := c.PostForm(field) == "true" || c.PostForm(field) == "on"
	return &checked
}

// safeNext keeps post-login redirects inside the admin panel
func safeNext(next string) string {
	if strings.HasPrefix(next, "/admin") && !strings.HasPrefix(next, "/admin/login") && !strings.Contains(next, "//") {
		return next
	}
	return "/admin"
}
