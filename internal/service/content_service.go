package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/markdown"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/storage"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

// contentService is the concrete implementation of ContentService
type contentService struct {
	repo  repository.ContentRepository
	store storage.FileStore
	cfg   config.StorageConfig
	log   zerolog.Logger
}

func newContentService(repo repository.ContentRepository, store storage.FileStore, cfg config.StorageConfig, log zerolog.Logger) *contentService {
	return &contentService{
		repo:  repo,
		store: store,
		cfg:   cfg,
		log:   log.With().Str("service", "content").Logger(),
	}
}

func (s *contentService) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	return s.repo.List(ctx, filter)
}

// Get returns a content row. Unpublished rows are hidden unless
// includeUnpublished is set.
func (s *contentService) Get(ctx context.Context, id string, includeUnpublished bool) (*models.Content, error) {
	if !validation.IsValidID(id) {
		return nil, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	if c == nil || (!c.Published && !includeUnpublished) {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *contentService) CreateArticle(ctx context.Context, in *models.ArticleInput) (*models.Content, error) {
	if err := validation.ValidateArticle(in); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &models.Content{
		ID:          uuid.New().String(),
		Title:       *in.Title,
		Type:        models.ContentTypeArticle,
		Description: nonEmpty(in.Description),
		Body:        nonEmpty(in.Content),
		Excerpt:     nonEmpty(in.Excerpt),
		Published:   in.Published != nil && *in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Excerpt == nil && c.Body != nil {
		c.Excerpt = nonEmpty(strPtr(markdown.Preview(*c.Body, markdown.PreviewLength)))
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	s.log.Info().Str("content_id", c.ID).Bool("published", c.Published).Msg("Article created")
	return c, nil
}

func (s *contentService) CreateImage(ctx context.Context, in *models.ImageInput, upload *Upload) (*models.Content, error) {
	title, err := validation.ValidateImageTitle(in.Title)
	if err != nil {
		return nil, err
	}
	mime, err := s.checkImage(upload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	file, thumb, err := s.saveImage(ctx, now, upload, mime)
	if err != nil {
		return nil, err
	}

	c := &models.Content{
		ID:            uuid.New().String(),
		Title:         title,
		Type:          models.ContentTypeImage,
		Description:   nonEmpty(in.Description),
		Filename:      &file.Filename,
		Path:          &file.Path,
		ThumbnailPath: thumb,
		Size:          &file.Size,
		MimeType:      &file.MimeType,
		Published:     in.Published == nil || *in.Published,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.removeFiles(ctx, file.Path, thumb)
		return nil, fmt.Errorf("create image: %w", err)
	}

	s.log.Info().
		Str("content_id", c.ID).
		Str("filename", file.Filename).
		Int64("size_bytes", file.Size).
		Msg("Image uploaded")
	return c, nil
}

// Update applies a JSON patch to any content row
func (s *contentService) Update(ctx context.Context, id string, in *models.ArticleInput) (*models.Content, error) {
	existing, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if err := validation.ValidateArticlePatch(in); err != nil {
		return nil, err
	}

	patch := models.ContentPatch{
		Title:       in.Title,
		Description: in.Description,
		Published:   in.Published,
	}
	// Empty body or excerpt leaves the stored value alone
	if in.Content != nil && *in.Content != "" {
		patch.Body = in.Content
	}
	if in.Excerpt != nil && strings.TrimSpace(*in.Excerpt) != "" {
		patch.Excerpt = in.Excerpt
	} else if patch.Body != nil && existing.Type == models.ContentTypeArticle {
		patch.Excerpt = strPtr(markdown.Preview(*patch.Body, markdown.PreviewLength))
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}

	s.log.Info().Str("content_id", id).Msg("Content updated")
	return updated, nil
}

// UpdateImage applies a multipart update, replacing the file when one is given
func (s *contentService) UpdateImage(ctx context.Context, id string, in *models.ImageInput, upload *Upload) (*models.Content, error) {
	existing, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}

	patch := models.ContentPatch{Published: in.Published}
	if strings.TrimSpace(in.Title) != "" {
		title, err := validation.ValidateImageTitle(in.Title)
		if err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	patch.Description = in.Description

	if upload == nil {
		return s.applyPatch(ctx, id, patch)
	}

	if existing.Type != models.ContentTypeImage {
		return nil, validation.New("file", "Only image content can carry a file")
	}
	mime, err := s.checkImage(upload)
	if err != nil {
		return nil, err
	}
	file, thumb, err := s.saveImage(ctx, time.Now().UTC(), upload, mime)
	if err != nil {
		return nil, err
	}
	patch.File = file
	patch.ThumbnailPath = thumb

	updated, err := s.applyPatch(ctx, id, patch)
	if err != nil {
		s.removeFiles(ctx, file.Path, thumb)
		return nil, err
	}

	// The new file is committed, so the old one can go
	if existing.Path != nil {
		s.removeFiles(ctx, *existing.Path, existing.ThumbnailPath)
	}
	return updated, nil
}

// Delete removes the row first, then its files. A file that cannot be
// removed is logged and left behind.
func (s *contentService) Delete(ctx context.Context, id string) error {
	existing, err := s.Get(ctx, id, true)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}

	if existing.HasFile() && existing.Path != nil {
		s.removeFiles(ctx, *existing.Path, existing.ThumbnailPath)
	}

	s.log.Info().Str("content_id", id).Str("type", string(existing.Type)).Msg("Content deleted")
	return nil
}

func (s *contentService) applyPatch(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	if updated == nil {
		return nil, ErrNotFound
	}
	s.log.Info().Str("content_id", id).Msg("Content updated")
	return updated, nil
}

// checkImage enforces the size cap and sniffs the media type
func (s *contentService) checkImage(upload *Upload) (string, error) {
	if upload == nil || len(upload.Data) == 0 {
		return "", ErrFileRequired
	}
	if upload.Size() > s.cfg.MaxImageSize {
		return "", fmt.Errorf("%w: max size is %s", ErrFileTooLarge, humanSize(s.cfg.MaxImageSize))
	}
	mime := storage.DetectMIME(upload.Data)
	if !storage.IsImage(mime) {
		return "", ErrNotImage
	}
	return mime, nil
}

func (s *contentService) saveImage(ctx context.Context, now time.Time, upload *Upload, mime string) (*models.StoredFile, *string, error) {
	key := storage.UploadKey(now, upload.Filename)
	publicPath, err := s.store.Write(ctx, key, upload.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("save upload: %w", err)
	}
	file := &models.StoredFile{
		Filename: key,
		Path:     publicPath,
		Size:     upload.Size(),
		MimeType: mime,
	}
	return file, s.saveThumbnail(ctx, key, upload.Data), nil
}

// saveThumbnail is best-effort; formats imaging cannot decode get none
func (s *contentService) saveThumbnail(ctx context.Context, key string, data []byte) *string {
	if !s.cfg.EnableThumbnails {
		return nil
	}
	thumb, err := storage.Thumbnail(data, key, s.cfg.ThumbnailWidth)
	if err != nil {
		s.log.Debug().Err(err).Str("filename", key).Msg("Thumbnail skipped")
		return nil
	}
	publicPath, err := s.store.Write(ctx, storage.ThumbnailKey(key), thumb)
	if err != nil {
		s.log.Warn().Err(err).Str("filename", key).Msg("Failed to save thumbnail")
		return nil
	}
	return &publicPath
}

func (s *contentService) removeFiles(ctx context.Context, publicPath string, thumbnail *string) {
	paths := []string{publicPath}
	if thumbnail != nil {
		paths = append(paths, *thumbnail)
	}
	for _, p := range paths {
		if err := s.store.Remove(ctx, p); err != nil {
			s.log.Warn().Err(err).Str("path", p).Msg("Could not delete file")
		}
	}
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func strPtr(s string) *string {
	return &s
}

func humanSize(n int64) string {
	if n >= 1024*1024 && n%(1024*1024) == 0 {
		return fmt.Sprintf("%dMB", n/(1024*1024))
	}
	return fmt.Sprintf("%dKB", n/1024)
}
