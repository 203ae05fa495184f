package service

import (
	"context"

	"cseshield/internal/domain"

	"github.com/google/uuid"
)

func (s *Service) Report(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error) {
	return s.ReportService.Report(ctx, req)
}

func (s *Service) List(ctx context.Context, page, limit int) (*domain.ListIncidentsResponse, error) {
	return s.ReportService.List(ctx, page, limit)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	return s.ReportService.Get(ctx, id)
}

func (s *Service) GetRedZones(ctx context.Context, req domain.RedZoneRequest) ([]domain.RedZone, error) {
	return s.RedZoneService.GetRedZones(ctx, req)
}

func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) error {
	return s.AdminService.UpdateStatus(ctx, id, req)
}

func (s *Service) GetStats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error) {
	return s.StatsService.GetStats(ctx, req)
}
