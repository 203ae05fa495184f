//go:build integration

package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"cseshield/internal/domain"
	"cseshield/pkg/e"
)

var (
	testPool *pgxpool.Pool
	tc       *tcpostgres.PostgresContainer
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	tc, err = tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("postgres"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		fmt.Println("cannot start container:", err)
		os.Exit(1)
	}

	dsn, err := tc.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Println("connection string:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Println("pgxpool.New:", err)
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := testPool.Ping(ctx); err != nil {
		fmt.Println("pool.Ping:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	if err := setupSchema(ctx, testPool); err != nil {
		fmt.Println("setupSchema:", err)
		testPool.Close()
		_ = tc.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = tc.Terminate(ctx)
	os.Exit(code)
}

func setupSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS incidents (
			id uuid PRIMARY KEY,
			category text NOT NULL,
			description text NOT NULL,
			lat double precision NOT NULL,
			lng double precision NOT NULL,
			status text NOT NULL,
			contribution double precision NOT NULL,
			created_at timestamptz NOT NULL
		);
	`)
	return err
}

func truncateIncidents(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE incidents`)
	if err != nil {
		t.Fatalf("truncate incidents: %v", err)
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func seedIncident(t *testing.T, repo *IncidentRepo, lat, lng float64, status domain.IncidentStatus, createdAt time.Time) *domain.Incident {
	t.Helper()
	inc := &domain.Incident{
		Category:    domain.CategoryOther,
		Description: "seed",
		Lat:         lat,
		Lng:         lng,
		Status:      status,
		CreatedAt:   createdAt,
	}
	if err := repo.Create(context.Background(), inc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return inc
}

func TestIncidentRepo_Create_SetsDefaults(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	inc := &domain.Incident{
		Category:     domain.CategoryHarassment,
		Description:  "followed near the gate",
		Lat:          23.8103,
		Lng:          90.4125,
		Contribution: 2.5,
	}

	err := repo.Create(context.Background(), inc)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if inc.ID == uuid.Nil {
		t.Fatalf("expected ID set")
	}
	if inc.CreatedAt.IsZero() {
		t.Fatalf("expected CreatedAt set")
	}
	if inc.Status != domain.IncidentReported {
		t.Fatalf("expected status=%s got=%s", domain.IncidentReported, inc.Status)
	}

	got, err := repo.Get(context.Background(), inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if got.Lat != inc.Lat || got.Lng != inc.Lng {
		t.Fatalf("lat/lng mismatch got=(%v,%v) want=(%v,%v)", got.Lat, got.Lng, inc.Lat, inc.Lng)
	}
	if got.Category != domain.CategoryHarassment {
		t.Fatalf("category mismatch got=%v", got.Category)
	}
	if got.Description != inc.Description {
		t.Fatalf("description mismatch got=%q", got.Description)
	}
	if got.Contribution != 2.5 {
		t.Fatalf("contribution mismatch got=%v", got.Contribution)
	}
}

func TestIncidentRepo_Create_KeepsExplicitZeroContribution(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	inc := &domain.Incident{
		Category:     domain.CategoryOther,
		Description:  "zero-weight report",
		Lat:          23.8103,
		Lng:          90.4125,
		Contribution: 0,
	}

	if err := repo.Create(context.Background(), inc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(context.Background(), inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Contribution != 0 {
		t.Fatalf("explicit zero contribution must be stored verbatim, got=%v", got.Contribution)
	}
}

func TestIncidentRepo_List_Pagination(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	for i := 0; i < 3; i++ {
		seedIncident(t, repo, 10+float64(i), 20+float64(i), domain.IncidentReported,
			time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC))
	}

	list1, total, err := repo.List(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total=3 got=%d", total)
	}
	if len(list1) != 2 {
		t.Fatalf("expected len=2 got=%d", len(list1))
	}

	if list1[0].CreatedAt.Before(list1[1].CreatedAt) {
		t.Fatalf("expected DESC order by created_at")
	}

	list2, total2, err := repo.List(context.Background(), 2, 2)
	if err != nil {
		t.Fatalf("List page2: %v", err)
	}
	if total2 != 3 {
		t.Fatalf("expected total=3 got=%d", total2)
	}
	if len(list2) != 1 {
		t.Fatalf("expected len=1 got=%d", len(list2))
	}
}

func TestIncidentRepo_UpdateStatus(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	inc := seedIncident(t, repo, 10, 20, domain.IncidentReported, time.Now().UTC())

	if err := repo.UpdateStatus(context.Background(), inc.ID, domain.IncidentResolved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}

	got, err := repo.Get(context.Background(), inc.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.IncidentResolved {
		t.Fatalf("expected status=resolved got=%s", got.Status)
	}
}

func TestIncidentRepo_UpdateStatus_NotFound(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.IncidentResolved)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestIncidentRepo_UpdateStatus_InvalidStatus(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	inc := seedIncident(t, repo, 10, 20, domain.IncidentReported, time.Now().UTC())

	err := repo.UpdateStatus(context.Background(), inc.ID, domain.IncidentStatus("archived"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, e.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestIncidentRepo_ListActive_ExcludesDismissed_Ordered(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	first := seedIncident(t, repo, 10, 20, domain.IncidentReported,
		time.Date(2025, 1, 1, 0, 0, 1, 0, time.UTC))
	second := seedIncident(t, repo, 11, 21, domain.IncidentInvestigating,
		time.Date(2025, 1, 1, 0, 0, 2, 0, time.UTC))
	seedIncident(t, repo, 12, 22, domain.IncidentDismissed,
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	active, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active, got %d", len(active))
	}
	if active[0].ID != first.ID || active[1].ID != second.ID {
		t.Fatalf("expected ASC creation order, got [%s, %s]", active[0].ID, active[1].ID)
	}
}

func TestIncidentRepo_ListWithinRadius(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	center := seedIncident(t, repo, 23.8103, 90.4125, domain.IncidentReported, time.Now().UTC())
	// ~150 m north of center, inside a 1 km circle
	near := seedIncident(t, repo, 23.81165, 90.4125, domain.IncidentReported, time.Now().UTC())
	// ~15 km away, outside
	seedIncident(t, repo, 23.95, 90.4125, domain.IncidentReported, time.Now().UTC())
	// inside the circle but dismissed
	seedIncident(t, repo, 23.8104, 90.4126, domain.IncidentDismissed, time.Now().UTC())

	within, err := repo.ListWithinRadius(context.Background(), 23.8103, 90.4125, 1)
	if err != nil {
		t.Fatalf("ListWithinRadius: %v", err)
	}
	if len(within) != 2 {
		t.Fatalf("expected 2 incidents within 1 km, got %d", len(within))
	}

	ids := map[uuid.UUID]bool{within[0].ID: true, within[1].ID: true}
	if !ids[center.ID] || !ids[near.ID] {
		t.Fatalf("expected center and near incidents, got %v", ids)
	}
}

func TestIncidentRepo_ListWithinRadius_CornerOutsideCircle(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	// sits in the bounding-box corner: inside the box for a 1 km
	// radius, but ~1.27 km from the center by great circle
	seedIncident(t, repo, 23.8103+0.0081, 90.4125+0.0088, domain.IncidentReported, time.Now().UTC())

	within, err := repo.ListWithinRadius(context.Background(), 23.8103, 90.4125, 1)
	if err != nil {
		t.Fatalf("ListWithinRadius: %v", err)
	}
	if len(within) != 0 {
		t.Fatalf("corner candidate must be filtered out, got %d", len(within))
	}
}

func TestIncidentRepo_ListWithinRadius_WrapsAtAntimeridian(t *testing.T) {

	truncateIncidents(t)

	repo := NewIncidentRepo(testPool, quietLogger())

	// ~22 km from the center, on the far side of the date line
	farSide := seedIncident(t, repo, 0, -179.9, domain.IncidentReported, time.Now().UTC())
	sameSide := seedIncident(t, repo, 0, 179.8, domain.IncidentReported, time.Now().UTC())
	// same longitude band as the center but ~100 km away
	seedIncident(t, repo, 0.9, 179.9, domain.IncidentReported, time.Now().UTC())

	within, err := repo.ListWithinRadius(context.Background(), 0, 179.9, 50)
	if err != nil {
		t.Fatalf("ListWithinRadius: %v", err)
	}
	if len(within) != 2 {
		t.Fatalf("expected 2 incidents within 50 km across the date line, got %d", len(within))
	}

	ids := map[uuid.UUID]bool{within[0].ID: true, within[1].ID: true}
	if !ids[farSide.ID] || !ids[sameSide.ID] {
		t.Fatalf("expected both sides of the antimeridian, got %v", ids)
	}
}

func TestIncidentRepo_ListWithinRadius_RejectsBadInput(t *testing.T) {

	repo := NewIncidentRepo(testPool, quietLogger())

	for _, tc := range []struct {
		lat, lng, radius float64
	}{
		{91, 0, 1},
		{0, 181, 1},
		{0, 0, 0},
		{0, 0, -2},
	} {
		_, err := repo.ListWithinRadius(context.Background(), tc.lat, tc.lng, tc.radius)
		if !errors.Is(err, e.ErrInvalidInput) {
			t.Fatalf("(%v,%v,%v): expected ErrInvalidInput, got %v", tc.lat, tc.lng, tc.radius, err)
		}
	}
}

func TestStatsRepo_Counts(t *testing.T) {

	truncateIncidents(t)

	incidents := NewIncidentRepo(testPool, quietLogger())
	stats := NewStats(testPool, quietLogger())

	now := time.Now().UTC()
	seedIncident(t, incidents, 10, 20, domain.IncidentReported, now.Add(-10*time.Minute))
	seedIncident(t, incidents, 11, 21, domain.IncidentReported, now.Add(-2*time.Hour))
	seedIncident(t, incidents, 12, 22, domain.IncidentDismissed, now.Add(-5*time.Minute))

	byStatus, err := stats.CountByStatus(context.Background())
	if err != nil {
		t.Fatalf("CountByStatus: %v", err)
	}
	if byStatus[domain.IncidentReported] != 2 || byStatus[domain.IncidentDismissed] != 1 {
		t.Fatalf("unexpected status counts: %v", byStatus)
	}

	byCategory, err := stats.CountByCategory(context.Background())
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if byCategory[domain.CategoryOther] != 3 {
		t.Fatalf("unexpected category counts: %v", byCategory)
	}

	recent, err := stats.CountRecent(context.Background(), 60)
	if err != nil {
		t.Fatalf("CountRecent: %v", err)
	}
	if recent != 2 {
		t.Fatalf("expected 2 recent incidents, got %d", recent)
	}
}
