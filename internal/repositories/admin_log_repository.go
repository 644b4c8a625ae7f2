package repositories

import (
	"context"

	"botrabota_backend/internal/models"

	"gorm.io/gorm"
)

type AdminLogRepository interface {
	Create(ctx context.Context, entry *models.AdminLog) error
	List(ctx context.Context, limit, offset int) ([]models.AdminLog, error)
}

type AdminLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAdminLogRepository(db *gorm.DB) AdminLogRepository {
	return &AdminLogRepositoryImpl{db: db}
}

func (r *AdminLogRepositoryImpl) Create(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *AdminLogRepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.AdminLog, error) {
	var entries []models.AdminLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}
