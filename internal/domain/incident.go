package domain

import (
	"time"

	"github.com/google/uuid"
)

type IncidentStatus string

const (
	IncidentReported      IncidentStatus = "reported"
	IncidentInvestigating IncidentStatus = "investigating"
	IncidentResolved      IncidentStatus = "resolved"
	IncidentDismissed     IncidentStatus = "dismissed"
)

func (s IncidentStatus) Valid() bool {
	switch s {
	case IncidentReported, IncidentInvestigating, IncidentResolved, IncidentDismissed:
		return true
	}
	return false
}

type IncidentCategory string

const (
	CategoryHarassment         IncidentCategory = "harassment"
	CategoryUnsafeRoad         IncidentCategory = "unsafe_road"
	CategorySuspiciousActivity IncidentCategory = "suspicious_activity"
	CategoryLocation           IncidentCategory = "location"
	CategoryOther              IncidentCategory = "other"
)

// Incident is a single user-submitted report. CreatedAt is set once at
// insertion and drives the recency weighting; the only mutation after
// insert is a status transition.
type Incident struct {
	ID           uuid.UUID        `json:"id"`
	Category     IncidentCategory `json:"category"`
	Description  string           `json:"description"`
	Lat          float64          `json:"lat"` // -90..90
	Lng          float64          `json:"lng"` // -180..180
	Status       IncidentStatus   `json:"status"`
	Contribution float64          `json:"contribution"` // 0..10, default 1
	CreatedAt    time.Time        `json:"created_at"`
}

const DefaultContribution = 1.0
