package services

import (
	"context"
	"testing"
	"time"

	"botrabota_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitServiceForTest(users *fakeUserRepo, at time.Time) *LimitService {
	s := NewLimitService(users, testConfig())
	s.now = fixedClock(at)
	return s
}

func TestConsumeDailyView_CountsDownToZero(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	require.NoError(t, users.Create(ctx, &models.User{TelegramID: 1, Role: models.UserRoleWorker}))

	day := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	s := newLimitServiceForTest(users, day)

	for i := 1; i <= 25; i++ {
		quota, err := s.ConsumeDailyView(ctx, 1)
		require.NoError(t, err)
		assert.True(t, quota.Allowed, "view %d must be allowed", i)
		assert.Equal(t, 25-i, quota.Remaining)
	}

	// 26-й просмотр в тот же день
	quota, err := s.ConsumeDailyView(ctx, 1)
	require.NoError(t, err)
	assert.False(t, quota.Allowed)
	assert.Equal(t, 0, quota.Remaining)
}

func TestConsumeDailyView_ResetsOnDateChange(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	yesterday := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:   1,
		Role:         models.UserRoleWorker,
		DailyViews:   25,
		LastViewDate: ptrTime(yesterday),
	}))

	s := newLimitServiceForTest(users, time.Date(2026, 3, 10, 0, 30, 0, 0, time.UTC))

	quota, err := s.ConsumeDailyView(ctx, 1)
	require.NoError(t, err)
	assert.True(t, quota.Allowed)
	assert.Equal(t, 24, quota.Remaining)

	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.DailyViews)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), *stored.LastViewDate)
}

func TestConsumeDailyView_SubscriptionBypassesCounter(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:        1,
		Role:              models.UserRoleWorker,
		DailyViews:        25,
		LastViewDate:      ptrTime(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)),
		SubscriptionUntil: ptrTime(now.Add(time.Hour)),
	}))

	s := newLimitServiceForTest(users, now)

	quota, err := s.ConsumeDailyView(ctx, 1)
	require.NoError(t, err)
	assert.True(t, quota.Allowed)
	assert.Equal(t, UnlimitedViews, quota.Remaining)

	// Счетчик при подписке не трогается
	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.DailyViews)
}

func TestConsumeDailyView_ExpiredSubscriptionCounts(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:        1,
		SubscriptionUntil: ptrTime(now), // ровно сейчас - уже не активна
	}))

	s := newLimitServiceForTest(users, now)

	quota, err := s.ConsumeDailyView(ctx, 1)
	require.NoError(t, err)
	assert.True(t, quota.Allowed)
	assert.Equal(t, 24, quota.Remaining)
}

func TestCheckVacancyQuota_LazyMonthlyReset(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	february := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:         2,
		Role:               models.UserRoleEmployer,
		FreeVacanciesLeft:  0,
		VacanciesResetDate: ptrTime(february),
	}))

	// Первая проверка в марте: квота восстановлена
	s := newLimitServiceForTest(users, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC))

	quota, err := s.CheckVacancyQuota(ctx, 2)
	require.NoError(t, err)
	assert.True(t, quota.Allowed)
	assert.Equal(t, 2, quota.Remaining)

	stored, err := users.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *stored.VacanciesResetDate)

	// Повторная проверка в том же месяце сброса не дает
	require.NoError(t, s.ConsumeFreeVacancy(ctx, 2))
	require.NoError(t, s.ConsumeFreeVacancy(ctx, 2))

	quota, err = s.CheckVacancyQuota(ctx, 2)
	require.NoError(t, err)
	assert.False(t, quota.Allowed)
	assert.Equal(t, 0, quota.Remaining)
}

func TestConsumeFreeVacancy_NoUnderflow(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	require.NoError(t, users.Create(ctx, &models.User{TelegramID: 2, FreeVacanciesLeft: 0}))

	s := newLimitServiceForTest(users, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, s.ConsumeFreeVacancy(ctx, 2))

	stored, err := users.FindByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.FreeVacanciesLeft)
}

func TestGrantSubscription_ExtendsWhileActive(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	active := now.Add(10 * 24 * time.Hour)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:        1,
		SubscriptionUntil: ptrTime(active),
	}))

	s := newLimitServiceForTest(users, now)
	require.NoError(t, s.GrantSubscription(ctx, 1, 30))

	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, active.Add(30*24*time.Hour), *stored.SubscriptionUntil)
}

func TestGrantSubscription_RestartsAfterExpiry(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:        1,
		SubscriptionUntil: ptrTime(now.Add(-24 * time.Hour)),
	}))

	s := newLimitServiceForTest(users, now)
	require.NoError(t, s.GrantSubscription(ctx, 1, 30))

	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, now.Add(30*24*time.Hour), *stored.SubscriptionUntil)
}

func TestCancelSubscription(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	require.NoError(t, users.Create(ctx, &models.User{
		TelegramID:        1,
		SubscriptionUntil: ptrTime(now.Add(time.Hour)),
	}))

	s := newLimitServiceForTest(users, now)
	require.NoError(t, s.CancelSubscription(ctx, 1))

	stored, err := users.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, stored.SubscriptionUntil)
}
