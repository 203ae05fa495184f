package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"cseshield/internal/domain"
	"cseshield/pkg/geo"
)

type redZoneService struct {
	repo   IncidentRepository
	cache  IncidentCacheService
	logger *slog.Logger
	cfg    domain.ZoneConfig
	now    func() time.Time
}

func NewRedZoneService(
	repo IncidentRepository,
	cache IncidentCacheService,
	logger *slog.Logger,
	cfg domain.ZoneConfig,
) RedZoneService {
	if cfg.ClusterRadiusMeters <= 0 {
		cfg.ClusterRadiusMeters = domain.DefaultZoneConfig().ClusterRadiusMeters
	}
	if cfg.MinMembersForZone < 1 {
		cfg.MinMembersForZone = domain.DefaultZoneConfig().MinMembersForZone
	}
	if cfg.ScoringRadiusKm <= 0 {
		cfg.ScoringRadiusKm = domain.DefaultZoneConfig().ScoringRadiusKm
	}
	return &redZoneService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		cfg:    cfg,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *redZoneService) GetRedZones(ctx context.Context, req domain.RedZoneRequest) ([]domain.RedZone, error) {
	incidents, err := s.snapshot(ctx, req)
	if err != nil {
		s.logger.Error("incident snapshot failed", slog.Any("error", err))
		return nil, err
	}

	zones := ComputeRedZones(incidents, s.cfg, s.now())
	s.logger.Info("red zones computed",
		slog.Int("incidents", len(incidents)),
		slog.Int("zones", len(zones)),
	)
	return zones, nil
}

// snapshot picks the incident set to cluster: a scoped radius query
// when the request carries a center, otherwise the full active set via
// the warm cache with a Postgres fallback. Either way it is a
// read-committed snapshot; a concurrent insert may or may not appear.
func (s *redZoneService) snapshot(ctx context.Context, req domain.RedZoneRequest) ([]*domain.Incident, error) {
	if req.Lat != nil && req.Lng != nil {
		radiusKm := s.cfg.ScoringRadiusKm
		if req.RadiusKm != nil {
			radiusKm = *req.RadiusKm
		}
		return s.repo.ListWithinRadius(ctx, *req.Lat, *req.Lng, radiusKm)
	}

	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("incident cache read failed, falling back to store", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	return s.repo.ListActive(ctx)
}

// ComputeRedZones groups incidents into zones with a greedy
// seed-order scan: walk incidents in createdAt order; an incident
// already inside an emitted zone is skipped, otherwise it seeds a
// candidate zone whose membership is everything within the cluster
// radius of it (inclusive boundary, itself included). Candidates below
// the member threshold emit nothing.
//
// The scan deliberately does not merge overlapping neighborhoods and
// always uses the seed's own location as the center, so input order
// matters; the caller guarantees a deterministic order.
func ComputeRedZones(incidents []*domain.Incident, cfg domain.ZoneConfig, now time.Time) []domain.RedZone {
	active := make([]*domain.Incident, 0, len(incidents))
	for _, inc := range incidents {
		if inc == nil || inc.Status == domain.IncidentDismissed {
			continue
		}
		active = append(active, inc)
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].CreatedAt.Equal(active[j].CreatedAt) {
			return active[i].ID.String() < active[j].ID.String()
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	zones := make([]domain.RedZone, 0)

	for _, seed := range active {
		covered := false
		for _, zone := range zones {
			dist := geo.HaversineMeters(zone.Latitude, zone.Longitude, seed.Lat, seed.Lng)
			if dist <= cfg.ClusterRadiusMeters {
				covered = true
				break
			}
		}
		if covered {
			continue
		}

		count := 0
		for _, other := range active {
			dist := geo.HaversineMeters(seed.Lat, seed.Lng, other.Lat, other.Lng)
			if dist <= cfg.ClusterRadiusMeters {
				count++
			}
		}

		if count < cfg.MinMembersForZone {
			continue
		}

		zone := domain.RedZone{
			Latitude:    seed.Lat,
			Longitude:   seed.Lng,
			MemberCount: count,
		}
		if cfg.ScoringEnabled {
			zone.Score = zoneScore(active, seed.Lat, seed.Lng, cfg.ScoringRadiusKm, now)
		}
		zones = append(zones, zone)
	}

	return zones
}

// zoneScore sums weighted contributions of incidents within the
// scoring radius of the center. The scoring radius is independent of
// the clustering radius, so the scored set is not necessarily the
// zone's member set.
func zoneScore(incidents []*domain.Incident, lat, lng, radiusKm float64, now time.Time) float64 {
	radiusM := radiusKm * 1000

	var score float64
	for _, inc := range incidents {
		if geo.HaversineMeters(lat, lng, inc.Lat, inc.Lng) > radiusM {
			continue
		}
		ageDays := now.Sub(inc.CreatedAt).Hours() / 24
		score += inc.Contribution * timeWeight(ageDays) * typeWeight(inc.Category)
	}
	return score
}

func timeWeight(ageDays float64) float64 {
	switch {
	case ageDays <= 7:
		return 3
	case ageDays <= 30:
		return 2
	case ageDays <= 90:
		return 1
	default:
		return 0.5
	}
}

func typeWeight(category domain.IncidentCategory) float64 {
	switch category {
	case domain.CategoryHarassment:
		return 3
	case domain.CategorySuspiciousActivity:
		return 2.5
	case domain.CategoryUnsafeRoad:
		return 2
	case domain.CategoryLocation:
		return 1.5
	default:
		return 1
	}
}
