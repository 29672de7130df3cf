package api

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rs/zerolog"
)

// homeArticleCount is how many recent articles the home page shows
const homeArticleCount = 3

// teamMember is one row of the management team page
type teamMember struct {
	Name string
	Role string
}

var team = []teamMember{
	{Name: "Romo Paroki", Role: "Penanggung Jawab"},
	{Name: "Koordinator Pengelola", Role: "Ketua Pengelola"},
	{Name: "Sekretariat", Role: "Sekretaris"},
	{Name: "Bendahara", Role: "Bendahara"},
	{Name: "Seksi Liturgi", Role: "Koordinator Liturgi dan Jadwal"},
}

// PageHandler renders the public site
type PageHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *PageHandler {
	return &PageHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "pages").Logger(),
	}
}

// pageData builds the template data every page expects
func pageData(c *gin.Context, title, active string) gin.H {
	return gin.H{
		"Title":      title,
		"Active":     active,
		"Flash":      c.Query("ok"),
		"FlashError": c.Query("err"),
	}
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	data := pageData(c, "", "home")

	articles, err := h.services.Content.List(ctx, models.ContentFilter{Type: models.ContentTypeArticle, PublishedOnly: true})
	if err != nil {
		h.renderError(c, err)
		return
	}
	if len(articles) > homeArticleCount {
		articles = articles[:homeArticleCount]
	}
	images, err := h.services.Content.List(ctx, models.ContentFilter{Type: models.ContentTypeImage, PublishedOnly: true})
	if err != nil {
		h.renderError(c, err)
		return
	}

	data["Articles"] = articles
	data["Images"] = images
	c.HTML(http.StatusOK, "home.html", data)
}

// Static renders one of the fixed information pages
func (h *PageHandler) Static(page, title, active string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := pageData(c, title, active)
		data["Team"] = team
		c.HTML(http.StatusOK, page, data)
	}
}

// News handles GET /news
func (h *PageHandler) News(c *gin.Context) {
	articles, err := h.services.Content.List(c.Request.Context(), models.ContentFilter{
		Type:          models.ContentTypeArticle,
		PublishedOnly: true,
	})
	if err != nil {
		h.renderError(c, err)
		return
	}
	data := pageData(c, "Berita", "news")
	data["Articles"] = articles
	c.HTML(http.StatusOK, "news_list.html", data)
}

// NewsDetail handles GET /news/:id
func (h *PageHandler) NewsDetail(c *gin.Context) {
	ctx := c.Request.Context()

	article, err := h.services.Content.Get(ctx, c.Param("id"), false)
	if err == nil && article.Type != models.ContentTypeArticle {
		err = service.ErrNotFound
	}
	if err != nil {
		h.renderError(c, err)
		return
	}
	comments, err := h.services.Comment.ListPublic(ctx, article.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	data := pageData(c, article.Title, "news")
	data["Article"] = article
	data["Comments"] = comments
	c.HTML(http.StatusOK, "news_detail.html", data)
}

// SubmitComment handles POST /news/:id/komentar
func (h *PageHandler) SubmitComment(c *gin.Context) {
	id := c.Param("id")
	back := "/news/" + url.PathEscape(id)

	var in models.CommentInput
	err := bindForm(c, &in)
	in.ContentID = id

	if err == nil {
		_, err = h.services.Comment.Create(c.Request.Context(), &in)
	}
	if err != nil {
		redirectWithError(c, back+"#komentar", err, h.log)
		return
	}
	redirectWithFlash(c, back+"#komentar", "ok", "Terima kasih! Komentar Anda akan tampil setelah disetujui admin.")
}

// SubmitDonation handles POST /donasi
func (h *PageHandler) SubmitDonation(c *gin.Context) {
	var in models.DonationInput
	var proof *service.Upload
	err := bindForm(c, &in)
	if err == nil {
		proof, err = readUpload(c, "proofFile", h.cfg.Storage.MaxProofSize)
	}
	if err == nil {
		_, err = h.services.Donation.Create(c.Request.Context(), &in, proof)
	}
	if err != nil {
		redirectWithError(c, "/#donasi", err, h.log)
		return
	}
	redirectWithFlash(c, "/#donasi", "ok", "Terima kasih! Donasi Anda akan segera kami verifikasi.")
}

// NoRoute renders the 404 page for unknown routes
func (h *PageHandler) NoRoute(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.HTML(http.StatusNotFound, "not_found.html", pageData(c, "Tidak ditemukan", ""))
}

func (h *PageHandler) renderError(c *gin.Context, err error) {
	status, body := classifyError(err, "Halaman tidak ditemukan")
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Failed to render page")
		body = gin.H{"error": "Terjadi kesalahan, silakan coba lagi nanti."}
	}
	data := pageData(c, "Tidak ditemukan", "")
	data["Message"] = body["error"]
	c.HTML(status, "not_found.html", data)
}
