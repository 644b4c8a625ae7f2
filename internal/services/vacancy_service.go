package services

import (
	"context"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
)

// VacancyInput - данные новой вакансии. Поля перечислены явно:
// других легальных мутаций при создании нет.
type VacancyInput struct {
	Title       string  `validate:"required,max=200"`
	City        string  `validate:"required,max=100"`
	Latitude    float64 `validate:"latitude"`
	Longitude   float64 `validate:"longitude"`
	Salary      string  `validate:"required,max=100"`
	Description string  `validate:"required"`
	PhotoID     string  `validate:"omitempty,max=200"`
}

// VacancyService - жизненный цикл вакансии: создание, деактивация,
// продвижение, периодические зачистки. Проверка квоты/оплаты перед
// созданием - ответственность вызывающего.
type VacancyService struct {
	vacancies repositories.VacancyRepository
	cfg       *config.Config
	now       func() time.Time
}

func NewVacancyService(vacancies repositories.VacancyRepository, cfg *config.Config) *VacancyService {
	return &VacancyService{
		vacancies: vacancies,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *VacancyService) Create(ctx context.Context, employerID int64, input VacancyInput) (*models.Vacancy, error) {
	vacancy := &models.Vacancy{
		EmployerID:  employerID,
		Title:       input.Title,
		City:        input.City,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Salary:      input.Salary,
		Description: input.Description,
		PhotoID:     input.PhotoID,
		IsActive:    true,
	}
	if err := s.vacancies.Create(ctx, vacancy); err != nil {
		return nil, err
	}
	return vacancy, nil
}

func (s *VacancyService) GetByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	return s.vacancies.FindByID(ctx, id)
}

func (s *VacancyService) ListByEmployer(ctx context.Context, employerID int64) ([]models.Vacancy, error) {
	return s.vacancies.FindByEmployer(ctx, employerID)
}

// Deactivate - мягкое удаление. Повторная деактивация - no-op успех.
func (s *VacancyService) Deactivate(ctx context.Context, id int64) error {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !vacancy.IsActive {
		return nil
	}
	vacancy.IsActive = false
	return s.vacancies.Update(ctx, vacancy)
}

// Activate возвращает вакансию в выдачу (админ-операция)
func (s *VacancyService) Activate(ctx context.Context, id int64) error {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if vacancy.IsActive {
		return nil
	}
	vacancy.IsActive = true
	return s.vacancies.Update(ctx, vacancy)
}

// Boost поднимает вакансию: флаг без срока, снимается одним показом в ленте
func (s *VacancyService) Boost(ctx context.Context, id int64) error {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	vacancy.IsBoosted = true
	return s.vacancies.Update(ctx, vacancy)
}

// Pin закрепляет вакансию на days дней. Срок всегда перезаписывается:
// повторное закрепление не суммируется с прежним.
func (s *VacancyService) Pin(ctx context.Context, id int64, days int) error {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	until := s.now().Add(time.Duration(days) * 24 * time.Hour)
	vacancy.IsPinned = true
	vacancy.PinnedUntil = &until
	return s.vacancies.Update(ctx, vacancy)
}

// RegisterResponse фиксирует отклик работника на вакансию
func (s *VacancyService) RegisterResponse(ctx context.Context, id int64) (*models.Vacancy, error) {
	vacancy, err := s.vacancies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.vacancies.IncrementResponses(ctx, id); err != nil {
		return nil, err
	}
	vacancy.ResponsesCount++
	return vacancy, nil
}

// DeactivateExpired снимает вакансии старше установленного срока жизни.
// Идемпотентно: трогает только строки под предикатом на момент вызова.
func (s *VacancyService) DeactivateExpired(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -s.cfg.Limits.VacancyLifetimeDays)
	return s.vacancies.DeactivateOlderThan(ctx, cutoff)
}

// ResetExpiredPins снимает закрепления с прошедшим сроком
func (s *VacancyService) ResetExpiredPins(ctx context.Context) (int64, error) {
	return s.vacancies.ClearExpiredPins(ctx, s.now())
}
