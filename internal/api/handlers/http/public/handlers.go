package public

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"cseshield/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type IncidentReporter interface {
	Report(ctx context.Context, req domain.CreateIncidentRequest) (*domain.Incident, error)
	List(ctx context.Context, page, limit int) (*domain.ListIncidentsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Incident, error)
}

type RedZoneGetter interface {
	GetRedZones(ctx context.Context, req domain.RedZoneRequest) ([]domain.RedZone, error)
}

type Handler struct {
	logger   *slog.Logger
	Reports  IncidentReporter
	RedZones RedZoneGetter
}

func NewHandler(logger *slog.Logger, reports IncidentReporter, redZones RedZoneGetter) *Handler {
	return &Handler{
		logger:   logger,
		Reports:  reports,
		RedZones: redZones,
	}
}

func (h *Handler) ReportIncident(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.CreateIncidentRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	// reject trailing garbage after the first JSON object
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	inc, err := h.Reports.Report(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("incident reported",
		slog.String("id", inc.ID.String()),
		slog.String("category", string(inc.Category)),
	)
	h.writeJSON(w, http.StatusCreated, inc)
}

func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	page := parseIntParam(r.URL.Query().Get("page"), 1)
	limit := parseIntParam(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}

	resp, err := h.Reports.List(r.Context(), page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// GetRedZones serves the map overlay. lat/lng/radius_km query params
// scope the computation to a search circle; with none the full active
// set is clustered. An empty zone list is a normal 200, never an
// error.
func (h *Handler) GetRedZones(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var req domain.RedZoneRequest

	q := r.URL.Query()
	if q.Get("lat") != "" || q.Get("lng") != "" {
		lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
		lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
		if errLat != nil || errLng != nil {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat and lng must both be valid numbers"})
			return
		}
		if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "lat/lng out of range"})
			return
		}
		req.Lat = &lat
		req.Lng = &lng
	}
	if v := q.Get("radius_km"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil || radius <= 0 {
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_km must be a positive number"})
			return
		}
		req.RadiusKm = &radius
	}

	zones, err := h.RedZones.GetRedZones(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if zones == nil {
		zones = []domain.RedZone{}
	}

	l.Info("red zones served", slog.Int("zones", len(zones)))
	h.writeJSON(w, http.StatusOK, domain.RedZoneResponse{RedZones: zones})
}
