package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rosa-mystica-tuntang/web/internal/database"
	"github.com/rosa-mystica-tuntang/web/internal/models"
)

const donationColumns = `id, name, city, amount, proof_image_path, status, created_at, updated_at`

// donationRepo is the concrete implementation of DonationRepository
type donationRepo struct {
	db *database.DB
}

// NewDonationRepo creates a new donation repository
func NewDonationRepo(db *database.DB) DonationRepository {
	return &donationRepo{db: db}
}

func scanDonation(row scanner) (*models.Donation, error) {
	var d models.Donation
	err := row.Scan(&d.ID, &d.Name, &d.City, &d.Amount, &d.ProofImagePath, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new donation
func (r *donationRepo) Create(ctx context.Context, d *models.Donation) error {
	query := `
		INSERT INTO donations (id, name, city, amount, proof_image_path, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.City, d.Amount, d.ProofImagePath, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	return err
}

// GetByID retrieves a donation by ID
func (r *donationRepo) GetByID(ctx context.Context, id string) (*models.Donation, error) {
	query := `SELECT ` + donationColumns + ` FROM donations WHERE id = $1`

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

// List returns one page of donations, newest first, plus the filtered total
func (r *donationRepo) List(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, int, error) {
	// An empty status matches every row
	var total int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM donations WHERE ($1 = '' OR status = $1)",
		string(filter.Status),
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + donationColumns + ` FROM donations
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, string(filter.Status), filter.Limit, filter.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]*models.Donation, 0, filter.Limit)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// UpdateStatus moves a donation from one status to another. It returns nil
// when no row with that ID is currently in the from status.
func (r *donationRepo) UpdateStatus(ctx context.Context, id string, from, to models.DonationStatus) (*models.Donation, error) {
	query := `UPDATE donations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + donationColumns

	d, err := scanDonation(r.db.QueryRowContext(ctx, query, to, id, from))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

// CountByStatus counts donations in the given status
func (r *donationRepo) CountByStatus(ctx context.Context, status models.DonationStatus) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM donations WHERE status = $1", status).Scan(&count)
	return count, err
}
