package services

import (
	"context"
	"sort"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/repositories"
	"botrabota_backend/internal/services/geo"
	"botrabota_backend/pkg/apperrors"
)

// FeedOutcome различает ожидаемые исходы запроса ленты.
// Пустая лента, исчерпанная квота и незаполненная анкета - три
// разных ответа, а не одна ошибка.
type FeedOutcome string

const (
	FeedOK                FeedOutcome = "ok"
	FeedProfileIncomplete FeedOutcome = "profile_incomplete"
	FeedQuotaExhausted    FeedOutcome = "quota_exhausted"
	FeedEmpty             FeedOutcome = "empty"
)

// RankedVacancy - вакансия с заранее посчитанным расстоянием
type RankedVacancy struct {
	Vacancy    models.Vacancy
	DistanceKm float64
}

// FeedItem - результат шага по ленте
type FeedItem struct {
	Outcome        FeedOutcome
	Vacancy        *models.Vacancy
	DistanceKm     float64
	RemainingViews int
}

// FeedService строит ленту вакансий вокруг работника и ведет
// по ней персональный курсор. Лента пересобирается на каждый
// запрос: состав мог измениться, кэша между вызовами нет.
type FeedService struct {
	users     repositories.UserRepository
	vacancies repositories.VacancyRepository
	limits    *LimitService
	cfg       *config.Config
	now       func() time.Time
}

func NewFeedService(
	users repositories.UserRepository,
	vacancies repositories.VacancyRepository,
	limits *LimitService,
	cfg *config.Config,
) *FeedService {
	return &FeedService{
		users:     users,
		vacancies: vacancies,
		limits:    limits,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Rank возвращает активные вакансии в радиусе radiusKm от точки,
// отсортированные по приоритету: закрепленные сейчас, затем поднятые,
// затем новые. Сортировка стабильная: на одном снимке данных порядок
// повторяется от вызова к вызову. Результат материализован, потому что
// вызывающий индексируется в него сохраненным курсором.
func (s *FeedService) Rank(ctx context.Context, lat, lon, radiusKm float64) ([]RankedVacancy, error) {
	if radiusKm <= 0 {
		radiusKm = s.cfg.Limits.GeoFilterRadiusKm
	}

	active, err := s.vacancies.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	nearby := make([]RankedVacancy, 0, len(active))
	for _, v := range active {
		distance := geo.Distance(lat, lon, v.Latitude, v.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, RankedVacancy{Vacancy: v, DistanceKm: distance})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		a, b := &nearby[i].Vacancy, &nearby[j].Vacancy

		aPinned, bPinned := a.IsPinnedNow(now), b.IsPinnedNow(now)
		if aPinned != bPinned {
			return aPinned
		}
		if a.IsBoosted != b.IsBoosted {
			return a.IsBoosted
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	return nearby, nil
}

// Next выдает следующую вакансию ленты для работника.
// Порядок проверок: анкета, затем квота просмотров, затем ранжирование.
// Курсор при выходе за край заворачивается на 0. Показ списывает
/// просмотр, увеличивает счетчик вакансии и гасит boost: поднятие
// расходуется ровно одним появлением в ленте.
func (s *FeedService) Next(ctx context.Context, userID int64) (FeedItem, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return FeedItem{}, err
	}
	if user.IsBlocked {
		return FeedItem{}, apperrors.ErrUserBlocked
	}

	if !user.IsResumeComplete() {
		return FeedItem{Outcome: FeedProfileIncomplete}, nil
	}

	quota, err := s.limits.ConsumeDailyView(ctx, userID)
	if err != nil {
		return FeedItem{}, err
	}
	if !quota.Allowed {
		return FeedItem{Outcome: FeedQuotaExhausted}, nil
	}

	ranked, err := s.Rank(ctx, *user.Latitude, *user.Longitude, 0)
	if err != nil {
		return FeedItem{}, err
	}
	if len(ranked) == 0 {
		return FeedItem{Outcome: FeedEmpty, RemainingViews: quota.Remaining}, nil
	}

	// ConsumeDailyView сохранил пользователя, перечитываем перед курсором
	user, err = s.users.FindByID(ctx, userID)
	if err != nil {
		return FeedItem{}, err
	}

	index := user.CurrentIndex
	if index >= len(ranked) {
		index = 0
	}
	item := ranked[index]

	user.CurrentIndex = index + 1
	if err := s.users.Update(ctx, user); err != nil {
		return FeedItem{}, err
	}

	if err := s.vacancies.IncrementViews(ctx, item.Vacancy.ID); err != nil {
		return FeedItem{}, err
	}
	if item.Vacancy.IsBoosted {
		if err := s.vacancies.ClearBoost(ctx, item.Vacancy.ID); err != nil {
			return FeedItem{}, err
		}
	}

	vacancy := item.Vacancy
	return FeedItem{
		Outcome:        FeedOK,
		Vacancy:        &vacancy,
		DistanceKm:     item.DistanceKm,
		RemainingViews: quota.Remaining,
	}, nil
}

// ResetCursor запускает ленту сначала (смена фильтров, новый поиск)
func (s *FeedService) ResetCursor(ctx context.Context, userID int64) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.CurrentIndex = 0
	return s.users.Update(ctx, user)
}
