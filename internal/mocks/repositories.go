package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
)

// Verify interface compliance
var (
	_ repository.ContentRepository  = (*MockContentRepository)(nil)
	_ repository.DonationRepository = (*MockDonationRepository)(nil)
	_ repository.CommentRepository  = (*MockCommentRepository)(nil)
)

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	Contents    map[string]*models.Content
	InsertError error
	UpdateError error
	DeleteError error
	DeletedIDs  []string
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{
		Contents: make(map[string]*models.Content),
	}
}

func (m *MockContentRepository) Create(ctx context.Context, content *models.Content) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Contents[content.ID] = content
	return nil
}

func (m *MockContentRepository) GetByID(ctx context.Context, id string) (*models.Content, error) {
	return m.Contents[id], nil
}

func (m *MockContentRepository) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	out := make([]*models.Content, 0, len(m.Contents))
	for _, c := range m.Contents {
		if filter.Type != "" && c.Type != filter.Type {
			continue
		}
		if filter.PublishedOnly && !c.Published {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockContentRepository) Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}
	c, ok := m.Contents[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Description != nil {
		c.Description = patch.Description
	}
	if patch.Body != nil {
		c.Body = patch.Body
	}
	if patch.Excerpt != nil {
		c.Excerpt = patch.Excerpt
	}
	if patch.Published != nil {
		c.Published = *patch.Published
	}
	if patch.File != nil {
		size := patch.File.Size
		c.Filename = &patch.File.Filename
		c.Path = &patch.File.Path
		c.Size = &size
		c.MimeType = &patch.File.MimeType
	}
	if patch.ThumbnailPath != nil {
		c.ThumbnailPath = patch.ThumbnailPath
	}
	c.UpdatedAt = time.Now()
	return c, nil
}

func (m *MockContentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if m.DeleteError != nil {
		return false, m.DeleteError
	}
	if _, ok := m.Contents[id]; !ok {
		return false, nil
	}
	delete(m.Contents, id)
	m.DeletedIDs = append(m.DeletedIDs, id)
	return true, nil
}

func (m *MockContentRepository) ImageStorageStats(ctx context.Context) (*models.StorageStats, error) {
	var stats models.StorageStats
	for _, c := range m.Contents {
		if c.Type != models.ContentTypeImage {
			continue
		}
		stats.TotalImages++
		if c.Size != nil {
			stats.TotalSizeBytes += *c.Size
		}
	}
	stats.TotalSizeMB = float64(stats.TotalSizeBytes) / (1024 * 1024)
	return &stats, nil
}

func (m *MockContentRepository) CountStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	for _, c := range m.Contents {
		switch c.Type {
		case models.ContentTypeArticle:
			stats.Articles++
		case models.ContentTypeImage:
			stats.Images++
		}
		if c.Published {
			stats.Published++
		}
	}
	return &stats, nil
}

// MockDonationRepository is a mock implementation of DonationRepository
type MockDonationRepository struct {
	Donations   map[string]*models.Donation
	InsertError error
	LastFilter  models.DonationFilter
}

func NewMockDonationRepository() *MockDonationRepository {
	return &MockDonationRepository{
		Donations: make(map[string]*models.Donation),
	}
}

func (m *MockDonationRepository) Create(ctx context.Context, donation *models.Donation) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Donations[donation.ID] = donation
	return nil
}

func (m *MockDonationRepository) GetByID(ctx context.Context, id string) (*models.Donation, error) {
	d, ok := m.Donations[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *MockDonationRepository) List(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, int, error) {
	m.LastFilter = filter
	all := make([]*models.Donation, 0, len(m.Donations))
	for _, d := range m.Donations {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	start := filter.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func (m *MockDonationRepository) UpdateStatus(ctx context.Context, id string, from, to models.DonationStatus) (*models.Donation, error) {
	d, ok := m.Donations[id]
	if !ok || d.Status != from {
		return nil, nil
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	cp := *d
	return &cp, nil
}

func (m *MockDonationRepository) CountByStatus(ctx context.Context, status models.DonationStatus) (int, error) {
	n := 0
	for _, d := range m.Donations {
		if d.Status == status {
			n++
		}
	}
	return n, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments    map[string]*models.Comment
	Contents    *MockContentRepository // used for the admin title join
	InsertError error
}

func NewMockCommentRepository(contents *MockContentRepository) *MockCommentRepository {
	return &MockCommentRepository{
		Comments: make(map[string]*models.Comment),
		Contents: contents,
	}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	return m.Comments[id], nil
}

func (m *MockCommentRepository) ListApproved(ctx context.Context, contentID string) ([]*models.Comment, error) {
	out := make([]*models.Comment, 0)
	for _, c := range m.Comments {
		if c.ContentID == contentID && c.IsApproved {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockCommentRepository) ListForAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error) {
	out := make([]*models.AdminComment, 0)
	for _, c := range m.Comments {
		if contentID != "" && !strings.EqualFold(c.ContentID, contentID) {
			continue
		}
		ref := models.ContentRef{ID: c.ContentID}
		if m.Contents != nil {
			if parent := m.Contents.Contents[c.ContentID]; parent != nil {
				ref.Title = parent.Title
			}
		}
		out = append(out, &models.AdminComment{Comment: *c, Content: ref})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockCommentRepository) SetApproved(ctx context.Context, id string, approved bool) (bool, error) {
	c, ok := m.Comments[id]
	if !ok {
		return false, nil
	}
	c.IsApproved = approved
	return true, nil
}

func (m *MockCommentRepository) Reply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error) {
	c, ok := m.Comments[id]
	if !ok {
		return false, nil
	}
	c.AdminReply = &reply
	c.RepliedAt = &repliedAt
	c.IsApproved = true
	return true, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := m.Comments[id]; !ok {
		return false, nil
	}
	delete(m.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) CountPending(ctx context.Context) (int, error) {
	n := 0
	for _, c := range m.Comments {
		if !c.IsApproved {
			n++
		}
	}
	return n, nil
}
