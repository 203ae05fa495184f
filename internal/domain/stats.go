package domain

type IncidentStats struct {
	ByStatus    map[IncidentStatus]int64   `json:"by_status"`
	ByCategory  map[IncidentCategory]int64 `json:"by_category"`
	RecentCount int64                      `json:"recent_count"`
	Minutes     int                        `json:"minutes"`
}

type StatsRequest struct {
	Minutes int `query:"minutes" validate:"min=1,max=1440"` // 1 day max
}
