package api

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/service"
	"github.com/rosa-mystica-tuntang/web/internal/web"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) (*gin.Engine, error) {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Storage.MaxProofSize + multipartOverhead

	templates, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	router.SetHTMLTemplate(templates)

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(requestIDMiddleware())
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())
	router.Use(sessionMiddleware(services.Auth, cfg.Auth.CookieName))

	// Handlers
	contentHandler := NewContentHandler(services, cfg, log)
	donationHandler := NewDonationHandler(services, cfg, log)
	commentHandler := NewCommentHandler(services, log)
	statsHandler := NewStatsHandler(services, log)
	authHandler := NewAuthHandler(services, cfg.Auth, log)
	pageHandler := NewPageHandler(services, cfg, log)
	adminHandler := NewAdminHandler(services, cfg, authHandler, log)

	submissions := newRateLimiter(cfg.RateLimit.SubmissionsPerWindow, cfg.RateLimit.Window).middleware()
	admin := requireAdmin()

	// Health check
	router.GET("/health", statsHandler.Health)
	router.GET("/metrics", admin, statsHandler.Metrics)

	// Static files
	router.StaticFS("/static", http.FS(web.Static()))
	router.Static("/uploads", filepath.Join(cfg.Storage.PublicDir, cfg.Storage.UploadsDir))

	// JSON API
	apiGroup := router.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", admin, authHandler.Me)
		}

		content := apiGroup.Group("/content")
		{
			content.GET("", contentHandler.List)
			content.GET("/:id", contentHandler.Get)
			content.POST("", admin, limitBody(cfg.Storage.MaxImageSize), contentHandler.Create)
			content.PUT("/:id", admin, limitBody(cfg.Storage.MaxImageSize), contentHandler.Update)
			content.DELETE("/:id", admin, contentHandler.Delete)
		}

		donations := apiGroup.Group("/donations")
		{
			donations.POST("", submissions, limitBody(cfg.Storage.MaxProofSize), donationHandler.Create)
			donations.GET("", admin, donationHandler.List)
			donations.GET("/:id", admin, donationHandler.Get)
			donations.PUT("/:id", admin, donationHandler.UpdateStatus)
		}

		comments := apiGroup.Group("/comments")
		{
			comments.GET("", commentHandler.List)
			comments.POST("", submissions, commentHandler.Create)
			comments.GET("/admin", admin, commentHandler.AdminList)
			comments.POST("/admin", admin, commentHandler.AdminAction)
		}

		apiGroup.GET("/stats/storage", admin, statsHandler.Storage)
	}

	// Public site
	router.GET("/", pageHandler.Home)
	router.GET("/sejarah", pageHandler.Static("sejarah.html", "Sejarah", "sejarah"))
	router.GET("/visi-misi", pageHandler.Static("visi_misi.html", "Visi & Misi", "visi-misi"))
	router.GET("/jadwal", pageHandler.Static("jadwal.html", "Jadwal Kegiatan", "jadwal"))
	router.GET("/tim-pengelola", pageHandler.Static("tim_pengelola.html", "Tim Pengelola", "tim"))
	router.GET("/news", pageHandler.News)
	router.GET("/news/:id", pageHandler.NewsDetail)
	router.POST("/news/:id/komentar", submissions, pageHandler.SubmitComment)
	router.POST("/donasi", submissions, limitBody(cfg.Storage.MaxProofSize), pageHandler.SubmitDonation)

	// Admin panel
	router.GET("/admin/login", adminHandler.LoginPage)
	router.POST("/admin/login", adminHandler.Login)
	router.POST("/admin/logout", adminHandler.Logout)

	panel := router.Group("/admin", requireAdminPage())
	{
		panel.GET("", adminHandler.Dashboard)
		panel.GET("/content", adminHandler.Content)
		panel.GET("/content/new", adminHandler.NewContent)
		panel.POST("/content/new", limitBody(cfg.Storage.MaxImageSize), adminHandler.CreateContent)
		panel.GET("/content/:id/edit", adminHandler.EditContent)
		panel.POST("/content/:id/edit", limitBody(cfg.Storage.MaxImageSize), adminHandler.UpdateContent)
		panel.POST("/content/:id/publish", adminHandler.TogglePublish)
		panel.POST("/content/:id/delete", adminHandler.DeleteContent)
		panel.GET("/donations", adminHandler.Donations)
		panel.POST("/donations/:id/status", adminHandler.UpdateDonation)
		panel.GET("/comments", adminHandler.Comments)
		panel.POST("/comments/action", adminHandler.CommentAction)
	}

	router.NoRoute(pageHandler.NoRoute)

	return router, nil
}
