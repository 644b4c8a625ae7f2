package services

import (
	"context"
	"errors"
	"time"

	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
)

// WorkerProfileUpdate - типизированное частичное обновление анкеты.
// nil-поле не трогается. Никаких произвольных kwargs: список
// легальных мутаций закрыт на этапе компиляции.
type WorkerProfileUpdate struct {
	Name      *string
	Age       *int
	City      *string
	Latitude  *float64
	Longitude *float64
	Resume    *string
	PhotoID   *string
}

// UserService - регистрация при первом контакте и анкета
type UserService struct {
	users repositories.UserRepository
	now   func() time.Time
}

func NewUserService(users repositories.UserRepository) *UserService {
	return &UserService{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GetOrCreate возвращает пользователя, создавая его при первом контакте.
// Второе значение - признак нового пользователя.
func (s *UserService) GetOrCreate(ctx context.Context, telegramID int64) (*models.User, bool, error) {
	user, err := s.users.FindByID(ctx, telegramID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, false, err
	}

	user = &models.User{TelegramID: telegramID}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) GetByID(ctx context.Context, telegramID int64) (*models.User, error) {
	return s.users.FindByID(ctx, telegramID)
}

// SetRole меняет роль и сбрасывает курсор ленты
func (s *UserService) SetRole(ctx context.Context, telegramID int64, role models.UserRole) error {
	user, err := s.users.FindByID(ctx, telegramID)
	if err != nil {
		return err
	}
	user.Role = role
	user.CurrentIndex = 0
	return s.users.Update(ctx, user)
}

// UpdateWorkerProfile применяет частичное обновление анкеты работника
func (s *UserService) UpdateWorkerProfile(ctx context.Context, telegramID int64, update WorkerProfileUpdate) (*models.User, error) {
	user, err := s.users.FindByID(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Age != nil {
		user.Age = update.Age
	}
	if update.City != nil {
		user.City = *update.City
	}
	if update.Latitude != nil {
		user.Latitude = update.Latitude
	}
	if update.Longitude != nil {
		user.Longitude = update.Longitude
	}
	if update.Resume != nil {
		user.Resume = *update.Resume
	}
	if update.PhotoID != nil {
		user.PhotoID = *update.PhotoID
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
