package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"cseshield/internal/domain"
	"cseshield/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) CountByStatus(ctx context.Context) (map[domain.IncidentStatus]int64, error) {
	const op = "postgres.Stats.CountByStatus"

	const query = `
		SELECT status, COUNT(*)
		FROM incidents
		GROUP BY status
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	counts := make(map[domain.IncidentStatus]int64)
	for rows.Next() {
		var status domain.IncidentStatus
		var cnt int64
		if err := rows.Scan(&status, &cnt); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		counts[status] = cnt
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return counts, nil
}

func (p *StatsRepo) CountByCategory(ctx context.Context) (map[domain.IncidentCategory]int64, error) {
	const op = "postgres.Stats.CountByCategory"

	const query = `
		SELECT category, COUNT(*)
		FROM incidents
		GROUP BY category
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	counts := make(map[domain.IncidentCategory]int64)
	for rows.Next() {
		var category domain.IncidentCategory
		var cnt int64
		if err := rows.Scan(&category, &cnt); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		counts[category] = cnt
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return counts, nil
}

func (p *StatsRepo) CountRecent(ctx context.Context, minutes int) (int64, error) {
	const op = "postgres.Stats.CountRecent"

	if minutes <= 0 || minutes > 1440 {
		return 0, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	// safe interval parameterization: number * interval '1 minute'
	const query = `
		SELECT COUNT(*)
		FROM incidents
		WHERE created_at >= NOW() - ($1 * INTERVAL '1 minute')
	`

	var cnt int64
	if err := p.pool.QueryRow(ctx, query, minutes).Scan(&cnt); err != nil {
		p.logger.Error("db queryrow scan failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.Int("minutes", minutes),
		)
		return 0, e.WrapError(ctx, op, err)
	}

	return cnt, nil
}
