package service

import (
	"context"

	"cseshield/internal/domain"
)

type statsService struct {
	repo StatsRepository
}

func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error) {
	minutes := req.Minutes
	if minutes == 0 {
		minutes = 60
	}

	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.repo.CountRecent(ctx, minutes)
	if err != nil {
		return nil, err
	}

	return &domain.IncidentStats{
		ByStatus:    byStatus,
		ByCategory:  byCategory,
		RecentCount: recent,
		Minutes:     minutes,
	}, nil
}
