package services

import (
	"context"

	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/notifier"
	"botrabota_backend/internal/repositories"
)

// BroadcastResult - итог рассылки
type BroadcastResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}

// BroadcastService - рассылка сообщения многим пользователям.
// Каждая отправка независима: отказ одного получателя (заблокировал
// бота и т.п.) считается и не прерывает остальных.
type BroadcastService struct {
	users  repositories.UserRepository
	sender notifier.Sender
}

func NewBroadcastService(users repositories.UserRepository, sender notifier.Sender) *BroadcastService {
	return &BroadcastService{users: users, sender: sender}
}

// Broadcast отправляет текст всем пользователям, при role != "" -
// только указанной роли.
func (s *BroadcastService) Broadcast(ctx context.Context, text string, role models.UserRole) (BroadcastResult, error) {
	var (
		users []models.User
		err   error
	)
	if role != "" {
		users, err = s.users.FindByRole(ctx, role, 0, 0)
	} else {
		users, err = s.users.FindAll(ctx, 0, 0)
	}
	if err != nil {
		return BroadcastResult{}, err
	}

	var result BroadcastResult
	for _, user := range users {
		if user.IsBlocked {
			continue
		}
		if err := s.sender.Send(user.TelegramID, text); err != nil {
			result.Failed++
			logger.Debug("broadcast send failed", "telegram_id", user.TelegramID, "error", err.Error())
			continue
		}
		result.Sent++
	}

	logger.Info("broadcast finished", "sent", result.Sent, "failed", result.Failed, "role", string(role))
	return result, nil
}
