package mocks

import (
	"context"
	"errors"
	"time"

	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/service"
)

// Verify interface compliance
var (
	_ service.ContentService  = (*MockContentService)(nil)
	_ service.DonationService = (*MockDonationService)(nil)
	_ service.CommentService  = (*MockCommentService)(nil)
	_ service.StatsService    = (*MockStatsService)(nil)
	_ service.AuthService     = (*MockAuthService)(nil)
	_ service.HealthChecker   = (*MockHealthChecker)(nil)
)

// MockContentService is a mock implementation of ContentService
type MockContentService struct {
	ListFunc          func(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error)
	GetFunc           func(ctx context.Context, id string, includeUnpublished bool) (*models.Content, error)
	CreateArticleFunc func(ctx context.Context, in *models.ArticleInput) (*models.Content, error)
	CreateImageFunc   func(ctx context.Context, in *models.ImageInput, upload *service.Upload) (*models.Content, error)
	UpdateFunc        func(ctx context.Context, id string, in *models.ArticleInput) (*models.Content, error)
	UpdateImageFunc   func(ctx context.Context, id string, in *models.ImageInput, upload *service.Upload) (*models.Content, error)
	DeleteFunc        func(ctx context.Context, id string) error

	LastFilter models.ContentFilter
}

func (m *MockContentService) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	m.LastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []*models.Content{}, nil
}

func (m *MockContentService) Get(ctx context.Context, id string, includeUnpublished bool) (*models.Content, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, includeUnpublished)
	}
	return nil, service.ErrNotFound
}

func (m *MockContentService) CreateArticle(ctx context.Context, in *models.ArticleInput) (*models.Content, error) {
	if m.CreateArticleFunc != nil {
		return m.CreateArticleFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *MockContentService) CreateImage(ctx context.Context, in *models.ImageInput, upload *service.Upload) (*models.Content, error) {
	if m.CreateImageFunc != nil {
		return m.CreateImageFunc(ctx, in, upload)
	}
	return nil, errors.New("not implemented")
}

func (m *MockContentService) Update(ctx context.Context, id string, in *models.ArticleInput) (*models.Content, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, in)
	}
	return nil, service.ErrNotFound
}

func (m *MockContentService) UpdateImage(ctx context.Context, id string, in *models.ImageInput, upload *service.Upload) (*models.Content, error) {
	if m.UpdateImageFunc != nil {
		return m.UpdateImageFunc(ctx, id, in, upload)
	}
	return nil, service.ErrNotFound
}

func (m *MockContentService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return service.ErrNotFound
}

// MockDonationService is a mock implementation of DonationService
type MockDonationService struct {
	CreateFunc       func(ctx context.Context, in *models.DonationInput, proof *service.Upload) (*models.Donation, error)
	ListFunc         func(ctx context.Context, filter models.DonationFilter) (*models.DonationPage, error)
	GetFunc          func(ctx context.Context, id string) (*models.Donation, error)
	UpdateStatusFunc func(ctx context.Context, id, status string) (*models.Donation, error)

	LastFilter models.DonationFilter
}

func (m *MockDonationService) Create(ctx context.Context, in *models.DonationInput, proof *service.Upload) (*models.Donation, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in, proof)
	}
	return nil, errors.New("not implemented")
}

func (m *MockDonationService) List(ctx context.Context, filter models.DonationFilter) (*models.DonationPage, error) {
	m.LastFilter = filter
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &models.DonationPage{Donations: []*models.Donation{}}, nil
}

func (m *MockDonationService) Get(ctx context.Context, id string) (*models.Donation, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, service.ErrNotFound
}

func (m *MockDonationService) UpdateStatus(ctx context.Context, id, status string) (*models.Donation, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return nil, service.ErrNotFound
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	CreateFunc     func(ctx context.Context, in *models.CommentInput) (*models.Comment, error)
	ListPublicFunc func(ctx context.Context, contentID string) ([]models.PublicComment, error)
	ListAdminFunc  func(ctx context.Context, contentID string) ([]*models.AdminComment, error)
	ModerateFunc   func(ctx context.Context, req *models.CommentActionRequest) (string, error)
}

func (m *MockCommentService) Create(ctx context.Context, in *models.CommentInput) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, in)
	}
	return nil, errors.New("not implemented")
}

func (m *MockCommentService) ListPublic(ctx context.Context, contentID string) ([]models.PublicComment, error) {
	if m.ListPublicFunc != nil {
		return m.ListPublicFunc(ctx, contentID)
	}
	return []models.PublicComment{}, nil
}

func (m *MockCommentService) ListAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error) {
	if m.ListAdminFunc != nil {
		return m.ListAdminFunc(ctx, contentID)
	}
	return []*models.AdminComment{}, nil
}

func (m *MockCommentService) Moderate(ctx context.Context, req *models.CommentActionRequest) (string, error) {
	if m.ModerateFunc != nil {
		return m.ModerateFunc(ctx, req)
	}
	return "", service.ErrNotFound
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	Storage  models.StorageStats
	Counts   models.DashboardStats
	StatsErr error
}

func (m *MockStatsService) StorageStats(ctx context.Context) (*models.StorageStats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	s := m.Storage
	return &s, nil
}

func (m *MockStatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	if m.StatsErr != nil {
		return nil, m.StatsErr
	}
	s := m.Counts
	return &s, nil
}

// MockAuthService accepts one username/password pair and one token
type MockAuthService struct {
	Username string
	Password string
	Token    string
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{
		Username: "admin",
		Password: "secret",
		Token:    "valid-token",
	}
}

func (m *MockAuthService) Login(username, password string) (*service.Session, error) {
	if username != m.Username || password != m.Password {
		return nil, service.ErrInvalidCredentials
	}
	return &service.Session{
		Token:     m.Token,
		Username:  m.Username,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

func (m *MockAuthService) Verify(token string) (string, error) {
	if token == "" || token != m.Token {
		return "", service.ErrUnauthorized
	}
	return m.Username, nil
}

// MockHealthChecker returns Err from every check
type MockHealthChecker struct {
	Err error
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Err
}
