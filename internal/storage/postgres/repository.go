package postgres

import (
	"context"

	"cseshield/internal/domain"

	"github.com/google/uuid"
)

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

func (p *Postgres) Incidents() IncidentRepository { return p.Incident }
func (p *Postgres) Stats() StatsRepository        { return p.Stat }
