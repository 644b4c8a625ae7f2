package dto

type CreatePaymentIntentRequest struct {
	TelegramID int64  `json:"telegram_id" validate:"required"`
	Type       string `json:"type" validate:"required,is-payment-type"`
	VacancyID  *int64 `json:"vacancy_id,omitempty"`
}

type PaymentIntentResponse struct {
	PaymentID  int64  `json:"payment_id"`
	YookassaID string `json:"yookassa_id"`
	ConfirmURL string `json:"confirm_url"`
	Amount     int    `json:"amount"`
}

type DirectPaymentRequest struct {
	TelegramID        int64  `json:"telegram_id" validate:"required"`
	Type              string `json:"type" validate:"required,is-payment-type"`
	VacancyID         *int64 `json:"vacancy_id,omitempty"`
	ProviderPaymentID string `json:"provider_payment_id" validate:"required"`
}

type BroadcastRequest struct {
	Text string `json:"text" validate:"required,min=1,max=4096"`
	Role string `json:"role,omitempty" validate:"omitempty,is-user-role"`
}

type GrantSubscriptionRequest struct {
	TelegramID int64 `json:"telegram_id" validate:"required"`
	Days       int   `json:"days" validate:"required,min=1,max=3650"`
}

type GrantVacanciesRequest struct {
	TelegramID int64 `json:"telegram_id" validate:"required"`
	Count      int   `json:"count" validate:"required,min=1,max=1000"`
}
