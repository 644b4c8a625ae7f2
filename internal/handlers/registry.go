package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	UserHandler    *UserHandler
	VacancyHandler *VacancyHandler
	FeedHandler    *FeedHandler
	PaymentHandler *PaymentHandler
	GeoHandler     *GeoHandler
	AdminHandler   *AdminHandler
}
