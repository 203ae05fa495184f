package service

import (
	"context"
	"log/slog"
	"time"

	"cseshield/internal/domain"
	"cseshield/pkg/e"
	"cseshield/pkg/validator"

	"github.com/google/uuid"
)

type reportService struct {
	repo   IncidentRepository
	cache  IncidentCacheService
	logger *slog.Logger
}

func NewReportService(
	repo IncidentRepository,
	cache IncidentCacheService,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Report validates and persists a submitted incident. Invalid fields
// are rejected with per-field detail before the store is touched;
// nothing is coerced or defaulted silently except the contribution
// weight, which documents its default.
func (s *reportService) Report(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
	if err := validator.ValidateStruct(req); err != nil {
		fields := validator.FieldErrors(err)
		s.logger.Warn("report rejected", slog.Int("invalid_fields", len(fields)))
		return nil, e.NewValidationError(fields)
	}

	contribution := domain.DefaultContribution
	if req.Contribution != nil {
		contribution = *req.Contribution
	}

	inc := &domain.Incident{
		ID:           uuid.New(),
		Category:     req.Category,
		Description:  req.Description,
		Lat:          *req.Location.Latitude,
		Lng:          *req.Location.Longitude,
		Status:       domain.IncidentReported,
		Contribution: contribution,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return nil, err
	}

	s.invalidateSnapshot(ctx)

	s.logger.Info("incident reported",
		slog.String("id", inc.ID.String()),
		slog.String("category", string(inc.Category)),
	)
	return inc, nil
}

func (s *reportService) List(ctx context.Context, page, limit int) (*domain.ListIncidentsResponse, error) {
	incidents, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	return &domain.ListIncidentsResponse{
		Incidents: incidents,
		Page:      page,
		Limit:     limit,
		Total:     total,
	}, nil
}

func (s *reportService) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return s.repo.Get(ctx, id)
}

// a stale snapshot only delays a new report's effect on zones by one
// TTL; dropping it keeps the map fresher without blocking the write
func (s *reportService) invalidateSnapshot(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("snapshot invalidate failed", slog.Any("error", err))
	}
}
