package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/storage"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned when the addressed record does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned when a donation is no longer pending
	ErrInvalidTransition = errors.New("donation status can only change from PENDING")
	// ErrFileTooLarge is returned for uploads over the configured cap
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotImage is returned when an upload is not an image
	ErrNotImage = errors.New("file must be an image")
	// ErrFileRequired is returned when a multipart request carries no file
	ErrFileRequired = errors.New("no file uploaded")
	// ErrInvalidCredentials is returned for a failed admin login
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUnauthorized is returned for a missing or invalid admin token
	ErrUnauthorized = errors.New("unauthorized")
)

// Upload is a file received from a multipart form
type Upload struct {
	Filename    string
	ContentType string // as declared by the client
	Data        []byte
}

// Size returns the upload size in bytes
func (u *Upload) Size() int64 {
	return int64(len(u.Data))
}

// ContentService manages articles and images
type ContentService interface {
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error)
	Get(ctx context.Context, id string, includeUnpublished bool) (*models.Content, error)
	CreateArticle(ctx context.Context, in *models.ArticleInput) (*models.Content, error)
	CreateImage(ctx context.Context, in *models.ImageInput, upload *Upload) (*models.Content, error)
	Update(ctx context.Context, id string, in *models.ArticleInput) (*models.Content, error)
	UpdateImage(ctx context.Context, id string, in *models.ImageInput, upload *Upload) (*models.Content, error)
	Delete(ctx context.Context, id string) error
}

// DonationService manages donor submissions and their verification
type DonationService interface {
	Create(ctx context.Context, in *models.DonationInput, proof *Upload) (*models.Donation, error)
	List(ctx context.Context, filter models.DonationFilter) (*models.DonationPage, error)
	Get(ctx context.Context, id string) (*models.Donation, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Donation, error)
}

// CommentService manages visitor comments and their moderation
type CommentService interface {
	Create(ctx context.Context, in *models.CommentInput) (*models.Comment, error)
	ListPublic(ctx context.Context, contentID string) ([]models.PublicComment, error)
	ListAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error)
	Moderate(ctx context.Context, req *models.CommentActionRequest) (string, error)
}

// StatsService reports storage usage and dashboard counters
type StatsService interface {
	StorageStats(ctx context.Context) (*models.StorageStats, error)
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// AuthService authenticates the site administrator
type AuthService interface {
	Login(username, password string) (*Session, error)
	Verify(token string) (string, error)
}

// HealthChecker reports whether a backing dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Content  ContentService
	Donation DonationService
	Comment  CommentService
	Stats    StatsService
	Auth     AuthService
	Health   HealthChecker
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, store storage.FileStore, cfg *config.Config, log zerolog.Logger) (*Services, error) {
	auth, err := newAuthService(cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize auth: %w", err)
	}

	return &Services{
		Content:  newContentService(repos.Content, store, cfg.Storage, log),
		Donation: newDonationService(repos.Donation, store, cfg.Storage, log),
		Comment:  newCommentService(repos.Comment, repos.Content, log),
		Stats:    newStatsService(repos, log),
		Auth:     auth,
	}, nil
}
