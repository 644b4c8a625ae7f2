package services

import (
	"context"
	"testing"

	"botrabota_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	s := NewUserService(users)

	user, isNew, err := s.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, int64(42), user.TelegramID)

	// Повторный контакт возвращает того же пользователя
	again, isNew, err := s.GetOrCreate(ctx, 42)
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, user.TelegramID, again.TelegramID)
}

func TestSetRole_ResetsCursor(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	require.NoError(t, users.Create(ctx, &models.User{TelegramID: 1, CurrentIndex: 9}))

	s := NewUserService(users)
	require.NoError(t, s.SetRole(ctx, 1, models.UserRoleEmployer))

	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleEmployer, stored.Role)
	assert.Equal(t, 0, stored.CurrentIndex)
}

func TestUpdateWorkerProfile_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	worker := completeWorker(1, moscowLat, moscowLon)
	require.NoError(t, users.Create(ctx, &worker))

	s := NewUserService(users)
	name := "Петр"
	updated, err := s.UpdateWorkerProfile(ctx, 1, WorkerProfileUpdate{Name: &name})
	require.NoError(t, err)

	// Остальные поля анкеты не затронуты
	assert.Equal(t, "Петр", updated.Name)
	assert.Equal(t, worker.City, updated.City)
	assert.Equal(t, *worker.Age, *updated.Age)
	assert.Equal(t, worker.Resume, updated.Resume)
	assert.True(t, updated.IsResumeComplete())
}
