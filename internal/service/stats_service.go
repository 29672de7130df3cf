package service

import (
	"context"
	"fmt"

	"github.com/rosa-mystica-tuntang/web/internal/models"
	"github.com/rosa-mystica-tuntang/web/internal/repository"
	"github.com/rs/zerolog"
)

// statsService is the concrete implementation of StatsService
type statsService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

func newStatsService(repos *repository.Repositories, log zerolog.Logger) *statsService {
	return &statsService{
		repos: repos,
		log:   log.With().Str("service", "stats").Logger(),
	}
}

func (s *statsService) StorageStats(ctx context.Context) (*models.StorageStats, error) {
	stats, err := s.repos.Content.ImageStorageStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage stats: %w", err)
	}
	return stats, nil
}

func (s *statsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	stats, err := s.repos.Content.CountStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("content counts: %w", err)
	}
	if stats.PendingDonations, err = s.repos.Donation.CountByStatus(ctx, models.DonationStatusPending); err != nil {
		return nil, fmt.Errorf("donation counts: %w", err)
	}
	if stats.PendingComments, err = s.repos.Comment.CountPending(ctx); err != nil {
		return nil, fmt.Errorf("comment counts: %w", err)
	}
	return stats, nil
}
