package domain

// RedZone is an ephemeral cluster computed at query time. It carries
// no identity: two successive computations may draw different
// boundaries if reports arrived in between.
type RedZone struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	MemberCount int     `json:"member_count"`
	Score       float64 `json:"score,omitempty"`
}

// ZoneConfig tunes the aggregation. The clustering radius and the
// scoring radius are independent knobs and must not be assumed equal.
type ZoneConfig struct {
	ClusterRadiusMeters float64
	MinMembersForZone   int
	ScoringEnabled      bool
	ScoringRadiusKm     float64
}

func DefaultZoneConfig() ZoneConfig {
	return ZoneConfig{
		ClusterRadiusMeters: 200,
		MinMembersForZone:   2,
		ScoringEnabled:      true,
		ScoringRadiusKm:     0.5,
	}
}

// RedZoneRequest optionally scopes the computation to a search circle;
// with no center the full active incident set is used.
type RedZoneRequest struct {
	Lat      *float64 `json:"lat" validate:"omitempty,lat"`
	Lng      *float64 `json:"lng" validate:"omitempty,lng"`
	RadiusKm *float64 `json:"radius_km" validate:"omitempty,gt=0,max=100"`
}

type RedZoneResponse struct {
	RedZones []RedZone `json:"red_zones"`
}
