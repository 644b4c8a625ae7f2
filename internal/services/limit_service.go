package services

import (
	"context"
	"errors"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/repositories"
)

// UnlimitedViews - сигнальное значение remaining при активной подписке.
// Отличает "безлимит" от "осталось ноль".
const UnlimitedViews = -1

// ViewQuota - решение по дневному лимиту просмотров.
// Отказ - ожидаемый исход, а не ошибка.
type ViewQuota struct {
	Allowed   bool
	Remaining int
}

// VacancyQuota - решение по месячному лимиту бесплатных вакансий
type VacancyQuota struct {
	Allowed   bool
	Remaining int
}

// LimitService - квоты с ленивым сбросом по границе даты (UTC).
// Проверка и списание атомарны с точки зрения вызывающего:
// отдельной фазы "commit" нет.
type LimitService struct {
	users repositories.UserRepository
	cfg   *config.Config
	now   func() time.Time
}

func NewLimitService(users repositories.UserRepository, cfg *config.Config) *LimitService {
	return &LimitService{
		users: users,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ConsumeDailyView проверяет и списывает один просмотр вакансии.
// Подписка дает безлимит без мутаций. Счетчик сбрасывается до
// проверки лимита, если дата последнего сброса не сегодня.
func (s *LimitService) ConsumeDailyView(ctx context.Context, userID int64) (ViewQuota, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ViewQuota{}, nil
		}
		return ViewQuota{}, err
	}

	now := s.now()
	if user.HasActiveSubscription(now) {
		return ViewQuota{Allowed: true, Remaining: UnlimitedViews}, nil
	}

	today := dateOnly(now)
	if user.LastViewDate == nil || !user.LastViewDate.Equal(today) {
		user.DailyViews = 0
		user.LastViewDate = &today
	}

	limit := s.cfg.Limits.DailyVacancyViews
	if user.DailyViews >= limit {
		// Сброс, если был, все равно сохраняем
		if err := s.users.Update(ctx, user); err != nil {
			return ViewQuota{}, err
		}
		return ViewQuota{Allowed: false, Remaining: 0}, nil
	}

	user.DailyViews++
	if err := s.users.Update(ctx, user); err != nil {
		return ViewQuota{}, err
	}

	return ViewQuota{Allowed: true, Remaining: limit - user.DailyViews}, nil
}

// CheckVacancyQuota проверяет месячный лимит бесплатных вакансий.
// Сброс ленивый: выполняется при первой проверке после границы
// месяца, спящий работодатель получит его при следующем действии.
// Списания здесь нет - см. ConsumeFreeVacancy.
func (s *LimitService) CheckVacancyQuota(ctx context.Context, userID int64) (VacancyQuota, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return VacancyQuota{}, nil
		}
		return VacancyQuota{}, err
	}

	firstOfMonth := firstOfMonth(s.now())
	if user.VacanciesResetDate == nil || user.VacanciesResetDate.Before(firstOfMonth) {
		user.FreeVacanciesLeft = s.cfg.Limits.FreeVacanciesPerMonth
		user.VacanciesResetDate = &firstOfMonth
		if err := s.users.Update(ctx, user); err != nil {
			return VacancyQuota{}, err
		}
	}

	return VacancyQuota{
		Allowed:   user.FreeVacanciesLeft > 0,
		Remaining: user.FreeVacanciesLeft,
	}, nil
}

// ConsumeFreeVacancy списывает одну бесплатную вакансию.
// Вызывается ровно один раз, когда вакансия реально создана.
func (s *LimitService) ConsumeFreeVacancy(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.FreeVacanciesLeft > 0 {
		user.FreeVacanciesLeft--
		return s.users.Update(ctx, user)
	}
	return nil
}

// GrantFreeVacancies начисляет бесплатные вакансии (оплата публикации
// или действие администратора)
func (s *LimitService) GrantFreeVacancies(ctx context.Context, userID int64, count int) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.FreeVacanciesLeft += count
	return s.users.Update(ctx, user)
}

// GrantSubscription выдает или продлевает подписку. Продление
// аддитивно только пока подписка активна: после разрыва срок
// считается заново от текущего момента.
func (s *LimitService) GrantSubscription(ctx context.Context, userID int64, days int) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	now := s.now()
	var until time.Time
	if user.SubscriptionUntil != nil && user.SubscriptionUntil.After(now) {
		until = user.SubscriptionUntil.Add(time.Duration(days) * 24 * time.Hour)
	} else {
		until = now.Add(time.Duration(days) * 24 * time.Hour)
	}
	user.SubscriptionUntil = &until
	return s.users.Update(ctx, user)
}

// CancelSubscription сбрасывает подписку (админ-операция)
func (s *LimitService) CancelSubscription(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.SubscriptionUntil = nil
	return s.users.Update(ctx, user)
}

// dateOnly отбрасывает время, оставляя дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// firstOfMonth - первое число текущего месяца в UTC
func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
