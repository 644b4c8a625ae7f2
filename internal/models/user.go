package models

import "time"

// User - пользователь бота. Первичный ключ - telegram id,
// он приходит извне и никогда не меняется.
type User struct {
	TelegramID int64    `gorm:"primaryKey;autoIncrement:false"`
	Role       UserRole `gorm:"type:varchar(20)"`

	// Анкета работника
	Name      string `gorm:"type:varchar(100)"`
	Age       *int
	City      string `gorm:"type:varchar(100)"`
	Latitude  *float64
	Longitude *float64
	Resume    string `gorm:"type:text"`
	PhotoID   string `gorm:"type:varchar(200)"`

	// Подписка
	SubscriptionUntil *time.Time

	// Лимит просмотров работника
	DailyViews   int `gorm:"default:0"`
	LastViewDate *time.Time `gorm:"type:date"`
	CurrentIndex int `gorm:"default:0"`

	// Лимит бесплатных вакансий работодателя
	FreeVacanciesLeft  int `gorm:"default:0"`
	VacanciesResetDate *time.Time `gorm:"type:date"`

	IsBlocked bool `gorm:"default:false"`

	CreatedAt time.Time
}

// HasActiveSubscription - подписка активна, если срок задан и строго в будущем
func (u *User) HasActiveSubscription(now time.Time) bool {
	if u.SubscriptionUntil == nil {
		return false
	}
	return u.SubscriptionUntil.After(now)
}

// IsResumeComplete - анкета работника заполнена целиком.
// Без координат лента не строится вовсе.
func (u *User) IsResumeComplete() bool {
	return u.Name != "" &&
		u.Age != nil &&
		u.City != "" &&
		u.Latitude != nil &&
		u.Longitude != nil &&
		u.Resume != "" &&
		u.PhotoID != ""
}
