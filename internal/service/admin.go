package service

import (
	"context"
	"log/slog"

	"cseshield/internal/domain"
	"cseshield/pkg/e"
	"cseshield/pkg/validator"

	"github.com/google/uuid"
)

type adminService struct {
	repo   IncidentRepository
	cache  IncidentCacheService
	logger *slog.Logger
}

func NewAdminService(repo IncidentRepository, cache IncidentCacheService, logger *slog.Logger) AdminService {
	return &adminService{repo: repo, cache: cache, logger: logger}
}

func (s *adminService) UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return e.NewValidationError(validator.FieldErrors(err))
	}

	if err := s.repo.UpdateStatus(ctx, id, req.Status); err != nil {
		return err
	}

	// dismissing or restoring a report changes the zone picture
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("snapshot invalidate failed", slog.Any("error", err))
		}
	}

	s.logger.Info("incident status updated",
		slog.String("id", id.String()),
		slog.String("status", string(req.Status)),
	)
	return nil
}
