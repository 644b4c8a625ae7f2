package services

import (
	"context"
	"time"

	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
)

// BotStatistics - сводка для админ-панели
type BotStatistics struct {
	TotalUsers          int64 `json:"total_users"`
	Workers             int64 `json:"workers"`
	Employers           int64 `json:"employers"`
	ActiveVacancies     int64 `json:"active_vacancies"`
	TotalVacancies      int64 `json:"total_vacancies"`
	ActiveSubscriptions int64 `json:"active_subscriptions"`
	TodayPayments       int64 `json:"today_payments"`
	WeekPayments        int64 `json:"week_payments"`
	MonthPayments       int64 `json:"month_payments"`
	TodayResponses      int64 `json:"today_responses"`
}

type StatsService struct {
	users     repositories.UserRepository
	vacancies repositories.VacancyRepository
	payments  repositories.PaymentRepository
	now       func() time.Time
}

func NewStatsService(
	users repositories.UserRepository,
	vacancies repositories.VacancyRepository,
	payments repositories.PaymentRepository,
) *StatsService {
	return &StatsService{
		users:     users,
		vacancies: vacancies,
		payments:  payments,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Collect собирает полную статистику бота
func (s *StatsService) Collect(ctx context.Context) (*BotStatistics, error) {
	now := s.now()
	todayStart := dateOnly(now)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	stats := &BotStatistics{}
	var err error

	if stats.TotalUsers, err = s.users.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.Workers, err = s.users.CountByRole(ctx, models.UserRoleWorker); err != nil {
		return nil, err
	}
	if stats.Employers, err = s.users.CountByRole(ctx, models.UserRoleEmployer); err != nil {
		return nil, err
	}
	if stats.ActiveVacancies, err = s.vacancies.Count(ctx, true); err != nil {
		return nil, err
	}
	if stats.TotalVacancies, err = s.vacancies.Count(ctx, false); err != nil {
		return nil, err
	}
	if stats.ActiveSubscriptions, err = s.users.CountActiveSubscriptions(ctx, now); err != nil {
		return nil, err
	}
	if stats.TodayPayments, err = s.payments.SumSucceeded(ctx, &todayStart, nil); err != nil {
		return nil, err
	}
	if stats.WeekPayments, err = s.payments.SumSucceeded(ctx, &weekAgo, nil); err != nil {
		return nil, err
	}
	if stats.MonthPayments, err = s.payments.SumSucceeded(ctx, &monthAgo, nil); err != nil {
		return nil, err
	}
	if stats.TodayResponses, err = s.vacancies.SumResponsesCreatedSince(ctx, todayStart); err != nil {
		return nil, err
	}

	return stats, nil
}
