package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/gateway"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
)

// Фейковые репозитории в памяти. Хранят копии, как это делает база:
// мутация объекта после Create/Update не видна следующему FindByID.

type fakeUserRepo struct {
	users map[int64]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]models.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, telegramID int64) (*models.User, error) {
	u, ok := r.users[telegramID]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := u
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.TelegramID]; ok {
		return repositories.ErrUserAlreadyExists
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	r.users[user.TelegramID] = *user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.TelegramID]; !ok {
		return repositories.ErrUserNotFound
	}
	r.users[user.TelegramID] = *user
	return nil
}

func (r *fakeUserRepo) FindByRole(_ context.Context, role models.UserRole, limit, offset int) ([]models.User, error) {
	var out []models.User
	for _, u := range r.sorted() {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return sliceWindow(out, limit, offset), nil
}

func (r *fakeUserRepo) FindAll(_ context.Context, limit, offset int) ([]models.User, error) {
	return sliceWindow(r.sorted(), limit, offset), nil
}

func (r *fakeUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role models.UserRole) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) CountActiveSubscriptions(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.SubscriptionUntil != nil && u.SubscriptionUntil.After(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) sorted() []models.User {
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TelegramID < out[j].TelegramID })
	return out
}

type fakeVacancyRepo struct {
	vacancies map[int64]models.Vacancy
	nextID    int64
}

func newFakeVacancyRepo() *fakeVacancyRepo {
	return &fakeVacancyRepo{vacancies: make(map[int64]models.Vacancy), nextID: 1}
}

func (r *fakeVacancyRepo) Create(_ context.Context, vacancy *models.Vacancy) error {
	if vacancy.ID == 0 {
		vacancy.ID = r.nextID
		r.nextID++
	} else if vacancy.ID >= r.nextID {
		r.nextID = vacancy.ID + 1
	}
	if vacancy.CreatedAt.IsZero() {
		vacancy.CreatedAt = time.Now().UTC()
	}
	r.vacancies[vacancy.ID] = *vacancy
	return nil
}

func (r *fakeVacancyRepo) FindByID(_ context.Context, id int64) (*models.Vacancy, error) {
	v, ok := r.vacancies[id]
	if !ok {
		return nil, repositories.ErrVacancyNotFound
	}
	copied := v
	return &copied, nil
}

func (r *fakeVacancyRepo) Update(_ context.Context, vacancy *models.Vacancy) error {
	if _, ok := r.vacancies[vacancy.ID]; !ok {
		return repositories.ErrVacancyNotFound
	}
	r.vacancies[vacancy.ID] = *vacancy
	return nil
}

func (r *fakeVacancyRepo) FindByEmployer(_ context.Context, employerID int64) ([]models.Vacancy, error) {
	var out []models.Vacancy
	for _, v := range r.sorted() {
		if v.EmployerID == employerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVacancyRepo) FindActive(_ context.Context) ([]models.Vacancy, error) {
	var out []models.Vacancy
	for _, v := range r.sorted() {
		if v.IsActive {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVacancyRepo) Count(_ context.Context, activeOnly bool) (int64, error) {
	var n int64
	for _, v := range r.vacancies {
		if !activeOnly || v.IsActive {
			n++
		}
	}
	return n, nil
}

func (r *fakeVacancyRepo) IncrementViews(_ context.Context, id int64) error {
	v, ok := r.vacancies[id]
	if !ok {
		return repositories.ErrVacancyNotFound
	}
	v.ViewsCount++
	r.vacancies[id] = v
	return nil
}

func (r *fakeVacancyRepo) IncrementResponses(_ context.Context, id int64) error {
	v, ok := r.vacancies[id]
	if !ok {
		return repositories.ErrVacancyNotFound
	}
	v.ResponsesCount++
	r.vacancies[id] = v
	return nil
}

func (r *fakeVacancyRepo) ClearBoost(_ context.Context, id int64) error {
	v, ok := r.vacancies[id]
	if !ok {
		return repositories.ErrVacancyNotFound
	}
	v.IsBoosted = false
	r.vacancies[id] = v
	return nil
}

func (r *fakeVacancyRepo) DeactivateOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, v := range r.vacancies {
		if v.IsActive && v.CreatedAt.Before(cutoff) {
			v.IsActive = false
			r.vacancies[id] = v
			n++
		}
	}
	return n, nil
}

func (r *fakeVacancyRepo) ClearExpiredPins(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, v := range r.vacancies {
		if v.IsPinned && v.PinnedUntil != nil && !v.PinnedUntil.After(now) {
			v.IsPinned = false
			v.PinnedUntil = nil
			r.vacancies[id] = v
			n++
		}
	}
	return n, nil
}

func (r *fakeVacancyRepo) SumResponsesCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var n int64
	for _, v := range r.vacancies {
		if !v.CreatedAt.Before(since) {
			n += int64(v.ResponsesCount)
		}
	}
	return n, nil
}

func (r *fakeVacancyRepo) sorted() []models.Vacancy {
	out := make([]models.Vacancy, 0, len(r.vacancies))
	for _, v := range r.vacancies {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakePaymentRepo struct {
	payments map[int64]models.Payment
	nextID   int64
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[int64]models.Payment), nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if payment.ID == 0 {
		payment.ID = r.nextID
		r.nextID++
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id int64) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	copied := p
	return &copied, nil
}

func (r *fakePaymentRepo) FindByYookassaID(_ context.Context, yookassaID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.YookassaID != nil && *p.YookassaID == yookassaID {
			copied := p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) FindByProviderPaymentID(_ context.Context, providerPaymentID string) (*models.Payment, error) {
	for _, p := range r.payments {
		if p.ProviderPaymentID != nil && *p.ProviderPaymentID == providerPaymentID {
			copied := p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return repositories.ErrPaymentNotFound
	}
	r.payments[payment.ID] = *payment
	return nil
}

func (r *fakePaymentRepo) FindByUser(_ context.Context, userID int64) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.sorted() {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePaymentRepo) List(_ context.Context, limit, offset int) ([]models.Payment, error) {
	return sliceWindow(r.sorted(), limit, offset), nil
}

func (r *fakePaymentRepo) SumSucceeded(_ context.Context, from, to *time.Time) (int64, error) {
	var sum int64
	for _, p := range r.payments {
		if p.Status != models.PaymentStatusSucceeded {
			continue
		}
		if from != nil && p.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && p.CreatedAt.After(*to) {
			continue
		}
		sum += int64(p.Amount)
	}
	return sum, nil
}

func (r *fakePaymentRepo) sorted() []models.Payment {
	out := make([]models.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeAdminLogRepo struct {
	entries []models.AdminLog
}

func (r *fakeAdminLogRepo) Create(_ context.Context, entry *models.AdminLog) error {
	entry.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAdminLogRepo) List(_ context.Context, limit, offset int) ([]models.AdminLog, error) {
	return sliceWindow(r.entries, limit, offset), nil
}

// fakeGateway выдает последовательные внешние id и запоминает вызовы
type fakeGateway struct {
	calls   int
	failing bool
}

func (g *fakeGateway) CreatePayment(_ context.Context, amount int, description string, meta gateway.Metadata) (*gateway.CreatedPayment, error) {
	if g.failing {
		return nil, fmt.Errorf("gateway: connection refused")
	}
	g.calls++
	return &gateway.CreatedPayment{
		ID:              fmt.Sprintf("yk-%d", g.calls),
		ConfirmationURL: fmt.Sprintf("https://yookassa.test/confirm/%d", g.calls),
	}, nil
}

// fakeSender копит отправленные сообщения
type fakeSender struct {
	messages []string
}

func (s *fakeSender) Send(chatID int64, text string) error {
	s.messages = append(s.messages, text)
	return nil
}

func sliceWindow[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Prices.WorkerSubscription = 300
	cfg.Prices.VacancyPublication = 100
	cfg.Prices.VacancyBoost = 200
	cfg.Prices.VacancyPin1d = 100
	cfg.Prices.VacancyPin3d = 250
	cfg.Prices.VacancyPin7d = 500
	cfg.Limits.DailyVacancyViews = 25
	cfg.Limits.FreeVacanciesPerMonth = 2
	cfg.Limits.SubscriptionDays = 30
	cfg.Limits.VacancyLifetimeDays = 30
	cfg.Limits.MaxResumeLength = 1000
	cfg.Limits.MaxDescriptionLength = 2000
	cfg.Limits.GeoFilterRadiusKm = 50
	return cfg
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptrInt(v int) *int             { return &v }
func ptrFloat(v float64) *float64   { return &v }
func ptrTime(v time.Time) *time.Time { return &v }

func completeWorker(id int64, lat, lon float64) models.User {
	return models.User{
		TelegramID: id,
		Role:       models.UserRoleWorker,
		Name:       "Иван",
		Age:        ptrInt(25),
		City:       "Москва",
		Latitude:   ptrFloat(lat),
		Longitude:  ptrFloat(lon),
		Resume:     "Опыт работы 3 года",
		PhotoID:    "photo-1",
	}
}
