package service

import (
	"context"
	"time"

	"cseshield/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// ReportService is the public incident ingestion and read surface.
type ReportService interface {
	Report(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
	List(ctx context.Context, page, limit int) (*domain.ListIncidentsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
}

// RedZoneService computes danger zones from the current incident set.
type RedZoneService interface {
	GetRedZones(ctx context.Context, req domain.RedZoneRequest) ([]domain.RedZone, error)
}

// AdminService covers status transitions (dismiss, resolve, ...).
type AdminService interface {
	UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) error
}

type StatsService interface {
	GetStats(ctx context.Context, req domain.StatsRequest) (*domain.IncidentStats, error)
}

// IncidentRepository is the slice of the store the services depend on.
type IncidentRepository interface {
	Create(ctx context.Context, incident *domain.Incident) error
	List(ctx context.Context, page, limit int) ([]*domain.Incident, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IncidentStatus) error
	ListActive(ctx context.Context) ([]*domain.Incident, error)
	ListWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Incident, error)
}

type StatsRepository interface {
	CountByStatus(ctx context.Context) (map[domain.IncidentStatus]int64, error)
	CountByCategory(ctx context.Context) (map[domain.IncidentCategory]int64, error)
	CountRecent(ctx context.Context, minutes int) (int64, error)
}

// IncidentCacheService is the warm snapshot of active incidents.
type IncidentCacheService interface {
	GetActive(ctx context.Context) ([]*domain.Incident, error)
	SetActive(ctx context.Context, incidents []*domain.Incident, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type Service struct {
	ReportService  ReportService
	RedZoneService RedZoneService
	AdminService   AdminService
	StatsService   StatsService
}

func NewService(
	reportService ReportService,
	redZoneService RedZoneService,
	adminService AdminService,
	statsService StatsService,
) *Service {
	return &Service{
		ReportService:  reportService,
		RedZoneService: redZoneService,
		AdminService:   adminService,
		StatsService:   statsService,
	}
}
