package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/models"
)

const contentColumns = `id, title, type, description, content, excerpt, filename, path, thumbnail_path,
	size, mime_type, published, created_at, updated_at`

// contentRepo is the concrete implementation of ContentRepository
type contentRepo struct {
	db *database.DB
}

// NewContentRepo creates a new content repository
func NewContentRepo(db *database.DB) ContentRepository {
	return &contentRepo{db: db}
}

func scanContent(row scanner) (*models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ID, &c.Title, &c.Type, &c.Description, &c.Body, &c.Excerpt,
		&c.Filename, &c.Path, &c.ThumbnailPath, &c.Size, &c.MimeType,
		&c.Published, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new content row
func (r *contentRepo) Create(ctx context.Context, c *models.Content) error {
	query := `
		INSERT INTO contents (id, title, type, description, content, excerpt, filename, path,
			thumbnail_path, size, mime_type, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Title, c.Type, c.Description, c.Body, c.Excerpt, c.Filename, c.Path,
		c.ThumbnailPath, c.Size, c.MimeType, c.Published, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// GetByID retrieves a content row by ID
func (r *contentRepo) GetByID(ctx context.Context, id string) (*models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	c, err := scanContent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// List returns content ordered newest first
func (r *contentRepo) List(ctx context.Context, filter models.ContentFilter) ([]*models.Content, error) {
	var where []string
	var args []interface{}
	if filter.Type != "" {
		args = append(args, filter.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.PublishedOnly {
		where = append(where, "published = TRUE")
	}

	query := `SELECT ` + contentColumns + ` FROM contents`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Content, 0)
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Update writes the non-nil fields of patch and returns the updated row,
// or nil when no row has the given ID
func (r *contentRepo) Update(ctx context.Context, id string, patch models.ContentPatch) (*models.Content, error) {
	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Body != nil {
		set("content", *patch.Body)
	}
	if patch.Excerpt != nil {
		set("excerpt", *patch.Excerpt)
	}
	if patch.Published != nil {
		set("published", *patch.Published)
	}
	if patch.File != nil {
		set("filename", patch.File.Filename)
		set("path", patch.File.Path)
		set("size", patch.File.Size)
		set("mime_type", patch.File.MimeType)
		set("thumbnail_path", patch.ThumbnailPath)
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE contents SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), contentColumns)

	c, err := scanContent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// Delete removes a content row; comments cascade
func (r *contentRepo) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM contents WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ImageStorageStats sums the recorded size of every image row
func (r *contentRepo) ImageStorageStats(ctx context.Context) (*models.StorageStats, error) {
	var stats models.StorageStats
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(size), 0) FROM contents WHERE type = $1",
		models.ContentTypeImage,
	).Scan(&stats.TotalImages, &stats.TotalSizeBytes)
	if err != nil {
		return nil, err
	}
	stats.TotalSizeMB = float64(stats.TotalSizeBytes) / (1024 * 1024)
	return &stats, nil
}

// CountStats counts articles, images and published rows in one pass
func (r *contentRepo) CountStats(ctx context.Context) (*models.DashboardStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE type = 'ARTICLE'),
			COUNT(*) FILTER (WHERE type = 'IMAGE'),
			COUNT(*) FILTER (WHERE published)
		FROM contents
	`
	var stats models.DashboardStats
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.Articles, &stats.Images, &stats.Published)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
