package services

import (
	"context"
	"fmt"

	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
)

// AdminService - привилегированные операции. Каждая мутация
// записывается в append-only журнал действий администратора.
type AdminService struct {
	users     repositories.UserRepository
	logs      repositories.AdminLogRepository
	limits    *LimitService
	vacancies *VacancyService
}

func NewAdminService(
	users repositories.UserRepository,
	logs repositories.AdminLogRepository,
	limits *LimitService,
	vacancies *VacancyService,
) *AdminService {
	return &AdminService{
		users:     users,
		logs:      logs,
		limits:    limits,
		vacancies: vacancies,
	}
}

func (s *AdminService) BlockUser(ctx context.Context, adminID, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.IsBlocked = true
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "block_user", fmt.Sprintf("user_id=%d", userID))
}

func (s *AdminService) UnblockUser(ctx context.Context, adminID, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.IsBlocked = false
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "unblock_user", fmt.Sprintf("user_id=%d", userID))
}

func (s *AdminService) GrantSubscription(ctx context.Context, adminID, userID int64, days int) error {
	if err := s.limits.GrantSubscription(ctx, userID, days); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "grant_subscription", fmt.Sprintf("user_id=%d days=%d", userID, days))
}

func (s *AdminService) GrantFreeVacancies(ctx context.Context, adminID, userID int64, count int) error {
	if err := s.limits.GrantFreeVacancies(ctx, userID, count); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "grant_free_vacancies", fmt.Sprintf("user_id=%d count=%d", userID, count))
}

func (s *AdminService) DeactivateVacancy(ctx context.Context, adminID, vacancyID int64) error {
	if err := s.vacancies.Deactivate(ctx, vacancyID); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "deactivate_vacancy", fmt.Sprintf("vacancy_id=%d", vacancyID))
}

func (s *AdminService) ActivateVacancy(ctx context.Context, adminID, vacancyID int64) error {
	if err := s.vacancies.Activate(ctx, vacancyID); err != nil {
		return err
	}
	return s.logAction(ctx, adminID, "activate_vacancy", fmt.Sprintf("vacancy_id=%d", vacancyID))
}

func (s *AdminService) Logs(ctx context.Context, limit, offset int) ([]models.AdminLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.logs.List(ctx, limit, offset)
}

func (s *AdminService) logAction(ctx context.Context, adminID int64, action, details string) error {
	return s.logs.Create(ctx, &models.AdminLog{
		AdminID: adminID,
		Action:  action,
		Details: details,
	})
}
