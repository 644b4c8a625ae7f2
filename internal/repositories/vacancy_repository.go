package repositories

import (
	"context"
	"errors"
	"time"

	"botrabota_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVacancyNotFound = errors.New("vacancy not found")

type VacancyRepository interface {
	Create(ctx context.Context, vacancy *models.Vacancy) error
	FindByID(ctx context.Context, id int64) (*models.Vacancy, error)
	Update(ctx context.Context, vacancy *models.Vacancy) error
	FindByEmployer(ctx context.Context, employerID int64) ([]models.Vacancy, error)
	FindActive(ctx context.Context) ([]models.Vacancy, error)
	Count(ctx context.Context, activeOnly bool) (int64, error)

	IncrementViews(ctx context.Context, id int64) error
	IncrementResponses(ctx context.Context, id int64) error
	ClearBoost(ctx context.Context, id int64) error

	// Sweeps: массовые обновления по предикату, возвращают число строк
	DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
	ClearExpiredPins(ctx context.Context, now time.Time) (int64, error)

	SumResponsesCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

type VacancyRepositoryImpl struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &VacancyRepositoryImpl{db: db}
}

func (r *VacancyRepositoryImpl) Create(ctx context.Context, vacancy *models.Vacancy) error {
	return r.db.WithContext(ctx).Create(vacancy).Error
}

func (r *VacancyRepositoryImpl) FindByID(ctx context.Context, id int64) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	err := r.db.WithContext(ctx).First(&vacancy, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVacancyNotFound
		}
		return nil, err
	}
	return &vacancy, nil
}

func (r *VacancyRepositoryImpl) Update(ctx context.Context, vacancy *models.Vacancy) error {
	return r.db.WithContext(ctx).Save(vacancy).Error
}

func (r *VacancyRepositoryImpl) FindByEmployer(ctx context.Context, employerID int64) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&vacancies).Error
	return vacancies, err
}

func (r *VacancyRepositoryImpl) FindActive(ctx context.Context) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&vacancies).Error
	return vacancies, err
}

func (r *VacancyRepositoryImpl) Count(ctx context.Context, activeOnly bool) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Vacancy{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *VacancyRepositoryImpl) IncrementViews(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error
}

func (r *VacancyRepositoryImpl) IncrementResponses(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ?", id).
		UpdateColumn("responses_count", gorm.Expr("responses_count + 1")).Error
}

func (r *VacancyRepositoryImpl) ClearBoost(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("id = ?", id).
		UpdateColumn("is_boosted", false).Error
}

func (r *VacancyRepositoryImpl) DeactivateOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("is_active = ? AND created_at < ?", true, cutoff).
		UpdateColumn("is_active", false)
	return result.RowsAffected, result.Error
}

func (r *VacancyRepositoryImpl) ClearExpiredPins(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("is_pinned = ? AND pinned_until < ?", true, now).
		UpdateColumns(map[string]interface{}{
			"is_pinned":    false,
			"pinned_until": nil,
		})
	return result.RowsAffected, result.Error
}

func (r *VacancyRepositoryImpl) SumResponsesCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).Model(&models.Vacancy{}).
		Where("created_at >= ?", since).
		Select("COALESCE(SUM(responses_count), 0)").
		Scan(&sum).Error
	return sum, err
}
