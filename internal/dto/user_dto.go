package dto

// RegisterUserRequest создаёт или возвращает пользователя по telegram_id.
type RegisterUserRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Role       string `json:"role" validate:"required,is-user-role"`
}

type UpdateWorkerProfileRequest struct {
	Name      *string  `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Age       *int     `json:"age,omitempty" validate:"omitempty,min=14,max=80"`
	City      *string  `json:"city,omitempty" validate:"omitempty,min=1,max=100"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Resume    *string  `json:"resume,omitempty" validate:"omitempty,max=1000"`
	PhotoID   *string  `json:"photo_id,omitempty"`
}

type UserResponse struct {
	TelegramID        int64   `json:"telegram_id"`
	Role              string  `json:"role"`
	Name              string  `json:"name"`
	Age               *int    `json:"age,omitempty"`
	City              string  `json:"city"`
	Resume            string  `json:"resume,omitempty"`
	SubscriptionUntil *string `json:"subscription_until,omitempty"`
	DailyViews        int     `json:"daily_views"`
	FreeVacanciesLeft int     `json:"free_vacancies_left"`
	IsBlocked         bool    `json:"is_blocked"`
}
