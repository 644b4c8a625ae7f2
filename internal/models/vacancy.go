package models

import "time"

// Vacancy - вакансия работодателя
type Vacancy struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	EmployerID int64 `gorm:"not null;index"`

	Title       string  `gorm:"type:varchar(200);not null"`
	City        string  `gorm:"type:varchar(100);not null"`
	Latitude    float64 `gorm:"not null"`
	Longitude   float64 `gorm:"not null"`
	Salary      string  `gorm:"type:varchar(100)"`
	Description string  `gorm:"type:text"`
	PhotoID     string  `gorm:"type:varchar(200)"`

	// Статистика
	ViewsCount     int `gorm:"default:0"`
	ResponsesCount int `gorm:"default:0"`

	// Продвижение. Boost без срока: сбрасывается после одного показа в ленте.
	IsBoosted   bool `gorm:"default:false"`
	IsPinned    bool `gorm:"default:false"`
	PinnedUntil *time.Time

	IsActive bool `gorm:"default:true;index"`

	CreatedAt time.Time
}

// IsPinnedNow - закрепление активно. "Закреплено сейчас" вычисляется,
// а не хранится: флаг с прошедшим сроком не считается.
func (v *Vacancy) IsPinnedNow(now time.Time) bool {
	if !v.IsPinned || v.PinnedUntil == nil {
		return false
	}
	return v.PinnedUntil.After(now)
}
