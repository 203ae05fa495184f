package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cseshield/internal/domain"
	"cseshield/pkg/e"
	"cseshield/pkg/geo"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IncidentRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewIncidentRepo(pool *pgxpool.Pool, logger *slog.Logger) *IncidentRepo {
	return &IncidentRepo{pool: pool, logger: logger}
}

const incidentColumns = `id, category, description, lat, lng, status, contribution, created_at`

func (p *IncidentRepo) Create(ctx context.Context, incident *domain.Incident) error {
	const op = "postgres.Incident.Create"

	const query = `
		INSERT INTO incidents (id, category, description, lat, lng, status, contribution, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	if incident.ID == uuid.Nil {
		incident.ID = uuid.New()
	}
	if incident.CreatedAt.IsZero() {
		incident.CreatedAt = time.Now().UTC()
	}
	if incident.Status == "" {
		incident.Status = domain.IncidentReported
	}

	_, err := p.pool.Exec(ctx, query,
		incident.ID,
		incident.Category,
		incident.Description,
		incident.Lat,
		incident.Lng,
		incident.Status,
		incident.Contribution,
		incident.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *IncidentRepo) List(ctx context.Context, page, limit int) ([]*domain.Incident, int64, error) {
	const op = "postgres.Incident.List"

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	const countQuery = `SELECT COUNT(*) FROM incidents`

	var total int64
	if err := p.pool.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		p.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	const listQuery = `
		SELECT ` + incidentColumns + `
		FROM incidents
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := p.pool.Query(ctx, listQuery, limit, offset)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents, err := scanIncidents(rows)
	if err != nil {
		p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	return incidents, total, nil
}

func (p *IncidentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error) {
	const op = "postgres.Incident.Get"

	const query = `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE id = $1
	`

	var inc domain.Incident
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&inc.ID,
		&inc.Category,
		&inc.Description,
		&inc.Lat,
		&inc.Lng,
		&inc.Status,
		&inc.Contribution,
		&inc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return &inc, nil
}

func (p *IncidentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IncidentStatus) error {
	const op = "postgres.Incident.UpdateStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidStatus)
	}

	const query = `
		UPDATE incidents
		SET status = $2
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, id, status)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

// ListActive returns every non-dismissed incident ordered by creation
// time ascending with the id as tiebreaker, so the aggregator's greedy
// scan is deterministic across calls.
func (p *IncidentRepo) ListActive(ctx context.Context) ([]*domain.Incident, error) {
	const op = "postgres.Incident.ListActive"

	const query = `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE status <> 'dismissed'
		ORDER BY created_at ASC, id ASC
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	incidents, err := scanIncidents(rows)
	if err != nil {
		p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return incidents, nil
}

// ListWithinRadius narrows candidates with a conservative bounding box
// in SQL, then drops the corners with an exact haversine check. The
// box may over-include, never under-include.
func (p *IncidentRepo) ListWithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.Incident, error) {
	const op = "postgres.Incident.ListWithinRadius"

	if lat < -90 || lat > 90 || lng < -180 || lng > 180 || radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	latDelta, lngDelta := geo.BoundingBoxDelta(radiusKm, lat)
	// near the antimeridian the box wraps into two longitude ranges;
	// the second range matches nothing otherwise
	lngLo1, lngHi1, lngLo2, lngHi2 := geo.LngRanges(lng, lngDelta)

	const query = `
		SELECT ` + incidentColumns + `
		FROM incidents
		WHERE status <> 'dismissed'
		  AND lat BETWEEN $1 AND $2
		  AND (lng BETWEEN $3 AND $4 OR lng BETWEEN $5 AND $6)
		ORDER BY created_at ASC, id ASC
	`

	rows, err := p.pool.Query(ctx, query,
		lat-latDelta, lat+latDelta,
		lngLo1, lngHi1,
		lngLo2, lngHi2,
	)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	candidates, err := scanIncidents(rows)
	if err != nil {
		p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	radiusM := radiusKm * 1000
	incidents := make([]*domain.Incident, 0, len(candidates))
	for _, inc := range candidates {
		if geo.HaversineMeters(lat, lng, inc.Lat, inc.Lng) <= radiusM {
			incidents = append(incidents, inc)
		}
	}

	return incidents, nil
}

func scanIncidents(rows pgx.Rows) ([]*domain.Incident, error) {
	var incidents []*domain.Incident
	for rows.Next() {
		var inc domain.Incident
		if err := rows.Scan(
			&inc.ID,
			&inc.Category,
			&inc.Description,
			&inc.Lat,
			&inc.Lng,
			&inc.Status,
			&inc.Contribution,
			&inc.CreatedAt,
		); err != nil {
			return nil, err
		}
		incidents = append(incidents, &inc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return incidents, nil
}
