package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	UserService      *UserService
	LimitService     *LimitService
	VacancyService   *VacancyService
	FeedService      *FeedService
	PaymentService   *PaymentService
	StatsService     *StatsService
	BroadcastService *BroadcastService
	AdminService     *AdminService
}
