package repository

import (
	"context"
	"time"

	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/models"
)

// ContentRepository defines the interface for content data operations
type ContentRepository interface {
	Create(ctx context.Context, content *models.Content) error
	GetByID(ctx context.Context, id string) (*models.Content, error)
	List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error)
	Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error)
	Delete(ctx context.Context, id string) (bool, error)
	ImageStorageStats(ctx context.Context) (*models.StorageStats, error)
	CountStats(ctx context.Context) (*models.DashboardStats, error)
}

// DonationRepository defines the interface for donation data operations
type DonationRepository interface {
	Create(ctx context.Context, donation *models.Donation) error
	GetByID(ctx context.Context, id string) (*models.Donation, error)
	List(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, int, error)
	UpdateStatus(ctx context.Context, id string, from, to models.DonationStatus) (*models.Donation, error)
	CountByStatus(ctx context.Context, status models.DonationStatus) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListApproved(ctx context.Context, contentID string) ([]*models.Comment, error)
	ListForAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error)
	SetApproved(ctx context.Context, id string, approved bool) (bool, error)
	Reply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	CountPending(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Content  ContentRepository
	Donation DonationRepository
	Comment  CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Content:  NewContentRepo(db),
		Donation: NewDonationRepo(db),
		Comment:  NewCommentRepo(db),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
