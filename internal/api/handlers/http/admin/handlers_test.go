package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"cseshield/internal/api/handlers/http/admin"
	mock_admin "cseshield/internal/api/handlers/http/admin/mocks"
	"cseshield/internal/domain"
	"cseshield/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestUpdateIncidentStatus_NoContent(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	id := uuid.New()
	body := `{"status":"dismissed"}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/incidents/"+id.String()+"/status", bytes.NewBufferString(body))
	req = withURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	svc.EXPECT().
		UpdateStatus(gomock.Any(), id, domain.UpdateIncidentStatusRequest{Status: domain.IncidentDismissed}).
		Return(nil).
		Times(1)

	h.UpdateIncidentStatus(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected %d got %d body=%s", http.StatusNoContent, rr.Code, rr.Body.String())
	}
}

func TestUpdateIncidentStatus_BadID(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/incidents/not-a-uuid/status", bytes.NewBufferString(`{"status":"resolved"}`))
	req = withURLParam(req, "id", "not-a-uuid")
	rr := httptest.NewRecorder()

	h.UpdateIncidentStatus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestUpdateIncidentStatus_StrictJSON_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	id := uuid.New()
	for _, body := range []string{
		`{"status":"resolved","force":true}`, // unknown field
		`{"status":"resolved"}{"status":"dismissed"}`, // trailing garbage
		`{not json`,
	} {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/incidents/"+id.String()+"/status", bytes.NewBufferString(body))
		req = withURLParam(req, "id", id.String())
		rr := httptest.NewRecorder()

		h.UpdateIncidentStatus(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestUpdateIncidentStatus_InvalidStatus_400(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/incidents/"+id.String()+"/status", bytes.NewBufferString(`{"status":"archived"}`))
	req = withURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	svc.EXPECT().
		UpdateStatus(gomock.Any(), id, gomock.Any()).
		Return(e.Wrap("service.admin", e.ErrInvalidStatus)).
		Times(1)

	h.UpdateIncidentStatus(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestUpdateIncidentStatus_NotFound_404(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	id := uuid.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/incidents/"+id.String()+"/status", bytes.NewBufferString(`{"status":"resolved"}`))
	req = withURLParam(req, "id", id.String())
	rr := httptest.NewRecorder()

	svc.EXPECT().
		UpdateStatus(gomock.Any(), id, gomock.Any()).
		Return(e.Wrap("postgres.incident.UpdateStatus", e.ErrNotFound)).
		Times(1)

	h.UpdateIncidentStatus(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestAdminStats_OK(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes=120", nil)
	rr := httptest.NewRecorder()

	stats.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 120}).
		Return(&domain.IncidentStats{
			ByStatus:    map[domain.IncidentStatus]int64{domain.IncidentReported: 4},
			ByCategory:  map[domain.IncidentCategory]int64{domain.CategoryHarassment: 2, domain.CategoryOther: 2},
			RecentCount: 3,
			Minutes:     120,
		}, nil).
		Times(1)

	h.AdminStats(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var got domain.IncidentStats
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if got.RecentCount != 3 || got.Minutes != 120 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}

func TestAdminStats_DefaultsAndBounds(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := mock_admin.NewMockIncidentAdmin(ctrl)
	stats := mock_admin.NewMockStatsGetter(ctrl)
	h := admin.NewHandler(newTestLogger(), svc, stats)

	// no param defaults to 60
	stats.EXPECT().
		GetStats(gomock.Any(), domain.StatsRequest{Minutes: 60}).
		Return(&domain.IncidentStats{Minutes: 60}, nil).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats", nil)
	rr := httptest.NewRecorder()
	h.AdminStats(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for default, got %d", rr.Code)
	}

	for _, bad := range []string{"0", "-5", "1441", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/stats?minutes="+bad, nil)
		rr := httptest.NewRecorder()
		h.AdminStats(rr, req)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("minutes=%s: expected 400, got %d", bad, rr.Code)
		}
	}
}
