package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment - запись о платеже. Внешние идентификаторы уникальны:
// YookassaID - id платежа в шлюзе, ProviderPaymentID - charge id
// из Telegram Payments. Переход pending -> succeeded|canceled
// происходит не более одного раза на внешний id.
type Payment struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	VacancyID *int64 `gorm:"index"`

	Type   PaymentType   `gorm:"type:varchar(50);not null"`
	Amount int           `gorm:"not null"` // в рублях
	Status PaymentStatus `gorm:"type:varchar(20);default:'pending'"`

	YookassaID        *string `gorm:"type:varchar(100);uniqueIndex"`
	ProviderPaymentID *string `gorm:"type:varchar(100)"`

	// Сырые метаданные уведомления шлюза, как пришли
	Metadata datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
}

// AdminLog - журнал действий администратора. Только запись, без изменений.
type AdminLog struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	AdminID   int64  `gorm:"not null"`
	Action    string `gorm:"type:varchar(100);not null"`
	Details   string `gorm:"type:text"`
	CreatedAt time.Time
}
