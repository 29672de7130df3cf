package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rosa-mystica-tuntang/web/internal/storage"
	"github.com/rosa-mystica-tuntang/web/internal/validation"
	"github.com/rs/zerolog"
)

const (
	defaultDonationPageSize = 10
	maxDonationPageSize     = 100
)

// donationService is the concrete implementation of DonationService
type donationService struct {
	repo  repository.DonationRepository
	store storage.FileStore
	cfg   config.StorageConfig
	log   zerolog.Logger
}

func newDonationService(repo repository.DonationRepository, store storage.FileStore, cfg config.StorageConfig, log zerolog.Logger) *donationService {
	return &donationService{
		repo:  repo,
		store: store,
		cfg:   cfg,
		log:   log.With().Str("service", "donation").Logger(),
	}
}

// Create stores the proof image and records a pending donation
func (s *donationService) Create(ctx context.Context, in *models.DonationInput, proof *Upload) (*models.Donation, error) {
	amount, err := validation.ValidateDonation(in)
	if err != nil {
		return nil, err
	}
	if proof == nil || len(proof.Data) == 0 {
		return nil, ErrFileRequired
	}
	// Both the declared and the sniffed type must be images
	if !storage.IsImage(strings.ToLower(proof.ContentType)) || !storage.IsImage(storage.DetectMIME(proof.Data)) {
		return nil, ErrNotImage
	}
	if proof.Size() > s.cfg.MaxProofSize {
		return nil, fmt.Errorf("%w: max size is %s", ErrFileTooLarge, humanSize(s.cfg.MaxProofSize))
	}

	now := time.Now().UTC()
	publicPath, err := s.store.Write(ctx, storage.DonationKey(now, proof.Filename), proof.Data)
	if err != nil {
		return nil, fmt.Errorf("save proof: %w", err)
	}

	d := &models.Donation{
		ID:             uuid.New().String(),
		Name:           in.Name,
		City:           in.City,
		Amount:         amount,
		ProofImagePath: publicPath,
		Status:         models.DonationStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Create(ctx, d); err != nil {
		if rmErr := s.store.Remove(ctx, publicPath); rmErr != nil {
			s.log.Warn().Err(rmErr).Str("path", publicPath).Msg("Could not delete orphaned proof")
		}
		return nil, fmt.Errorf("create donation: %w", err)
	}

	s.log.Info().
		Str("donation_id", d.ID).
		Int64("amount", d.Amount).
		Str("city", d.City).
		Msg("Donation submitted")
	return d, nil
}

// List returns one page of donations. Page and limit are clamped to sane values.
func (s *donationService) List(ctx context.Context, filter models.DonationFilter) (*models.DonationPage, error) {
	if filter.Status != "" && !models.ValidDonationStatuses[filter.Status] {
		return nil, &validation.ValidationError{Field: "status", Message: "Invalid status", Value: filter.Status}
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultDonationPageSize
	}
	if filter.Limit > maxDonationPageSize {
		filter.Limit = maxDonationPageSize
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}

	return &models.DonationPage{
		Donations: items,
		Pagination: models.Pagination{
			Page:       filter.Page,
			Limit:      filter.Limit,
			Total:      total,
			TotalPages: (total + filter.Limit - 1) / filter.Limit,
		},
	}, nil
}

func (s *donationService) Get(ctx context.Context, id string) (*models.Donation, error) {
	if !validation.IsValidID(id) {
		return nil, ErrNotFound
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get donation: %w", err)
	}
	if d == nil {
		return nil, ErrNotFound
	}
	return d, nil
}

// UpdateStatus verifies or rejects a pending donation
func (s *donationService) UpdateStatus(ctx context.Context, id, status string) (*models.Donation, error) {
	next, err := validation.ParseDonationStatus(status)
	if err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	// The WHERE clause re-checks PENDING, so a concurrent decision loses
	updated, err := s.repo.UpdateStatus(ctx, id, models.DonationStatusPending, next)
	if err != nil {
		return nil, fmt.Errorf("update donation status: %w", err)
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	s.log.Info().
		Str("donation_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("Donation status updated")
	return updated, nil
}
