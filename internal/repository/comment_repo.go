package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/models"
)

// ErrContentMissing is returned when a comment references a content row
// that no longer exists
var ErrContentMissing = errors.New("referenced content does not exist")

// foreign_key_violation
const pqForeignKeyViolation = "23503"

const commentColumns = `id, content_id, name, email, message, is_approved, admin_reply, replied_at, created_at, updated_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

func scanComment(row scanner, extra ...interface{}) (*models.Comment, error) {
	var c models.Comment
	dest := []interface{}{
		&c.ID, &c.ContentID, &c.Name, &c.Email, &c.Message, &c.IsApproved,
		&c.AdminReply, &c.RepliedAt, &c.CreatedAt, &c.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	query := `
		INSERT INTO comments (id, content_id, name, email, message, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.ContentID, c.Name, c.Email, c.Message, c.IsApproved, c.CreatedAt, c.UpdatedAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return ErrContentMissing
	}
	return err
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	c, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

// ListApproved returns approved comments of an article, oldest first
func (r *commentRepo) ListApproved(ctx context.Context, contentID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments
		WHERE content_id = $1 AND is_approved = TRUE
		ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.Comment, 0)
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListForAdmin returns every comment, newest first, optionally restricted to
// one article, each joined with its article title
func (r *commentRepo) ListForAdmin(ctx context.Context, contentID string) ([]*models.AdminComment, error) {
	query := `SELECT c.id, c.content_id, c.name, c.email, c.message, c.is_approved, c.admin_reply,
			c.replied_at, c.created_at, c.updated_at, ct.title
		FROM comments c
		JOIN contents ct ON ct.id = c.content_id
		WHERE ($1 = '' OR c.content_id::text = $1)
		ORDER BY c.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.AdminComment, 0)
	for rows.Next() {
		var title string
		c, err := scanComment(rows, &title)
		if err != nil {
			return nil, err
		}
		items = append(items, &models.AdminComment{
			Comment: *c,
			Content: models.ContentRef{ID: c.ContentID, Title: title},
		})
	}
	return items, rows.Err()
}

// SetApproved flips the approval flag
func (r *commentRepo) SetApproved(ctx context.Context, id string, approved bool) (bool, error) {
	return r.exec(ctx, "UPDATE comments SET is_approved = $1, updated_at = NOW() WHERE id = $2", approved, id)
}

// Reply stores an admin reply and approves the comment
func (r *commentRepo) Reply(ctx context.Context, id, reply string, repliedAt time.Time) (bool, error) {
	query := `UPDATE comments
		SET admin_reply = $1, replied_at = $2, is_approved = TRUE, updated_at = NOW()
		WHERE id = $3`
	return r.exec(ctx, query, reply, repliedAt, id)
}

// Delete removes a comment
func (r *commentRepo) Delete(ctx context.Context, id string) (bool, error) {
	return r.exec(ctx, "DELETE FROM comments WHERE id = $1", id)
}

// CountPending counts comments awaiting moderation
func (r *commentRepo) CountPending(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments WHERE is_approved = FALSE").Scan(&count)
	return count, err
}

func (r *commentRepo) exec(ctx context.Context, query string, args ...interface{}) (bool, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
