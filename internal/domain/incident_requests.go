package domain

type ReportLocation struct {
	Latitude  *float64 `json:"latitude" validate:"required,lat"`
	Longitude *float64 `json:"longitude" validate:"required,lng"`
}

type CreateIncidentRequest struct {
	Category     IncidentCategory `json:"category" validate:"required,category"`
	Description  string           `json:"description" validate:"required,max=1000"`
	Location     ReportLocation   `json:"location"`
	Contribution *float64         `json:"contribution" validate:"omitempty,min=0,max=10"`
}

type UpdateIncidentStatusRequest struct {
	Status IncidentStatus `json:"status" validate:"required,oneof=reported investigating resolved dismissed"`
}

type ListIncidentsRequest struct {
	Page  int `query:"page" validate:"min=1"`
	Limit int `query:"limit" validate:"min=1,max=100"`
}

type ListIncidentsResponse struct {
	Incidents []*Incident `json:"incidents"`
	Page      int         `json:"page"`
	Limit     int         `json:"limit"`
	Total     int64       `json:"total"`
}
