package dto

type CreateVacancyRequest struct {
	EmployerID  int64   `json:"employer_id" validate:"required"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	City        string  `json:"city" validate:"required,min=1,max=100"`
	Latitude    float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" validate:"min=-180,max=180"`
	Salary      string  `json:"salary" validate:"required,max=100"`
	Description string  `json:"description" validate:"required,max=2000"`
	PhotoID     string  `json:"photo_id,omitempty"`
}

type VacancyResponse struct {
	ID             int64   `json:"id"`
	EmployerID     int64   `json:"employer_id"`
	Title          string  `json:"title"`
	City           string  `json:"city"`
	Salary         string  `json:"salary"`
	Description    string  `json:"description"`
	ViewsCount     int     `json:"views_count"`
	ResponsesCount int     `json:"responses_count"`
	IsBoosted      bool    `json:"is_boosted"`
	IsPinned       bool    `json:"is_pinned"`
	IsActive       bool    `json:"is_active"`
	DistanceKm     float64 `json:"distance_km,omitempty"`
}

type FeedNextResponse struct {
	Outcome        string           `json:"outcome"`
	Vacancy        *VacancyResponse `json:"vacancy,omitempty"`
	RemainingViews int              `json:"remaining_views"`
}
