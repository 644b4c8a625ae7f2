package models

type UserRole string
type PaymentStatus string
type PaymentType string

const (
	UserRoleWorker   UserRole = "worker"
	UserRoleEmployer UserRole = "employer"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusSucceeded PaymentStatus = "succeeded"
	PaymentStatusCanceled  PaymentStatus = "canceled"

	PaymentTypeWorkerSubscription PaymentType = "worker_subscription"
	PaymentTypeVacancyPublication PaymentType = "vacancy_publication"
	PaymentTypeVacancyBoost       PaymentType = "vacancy_boost"
	PaymentTypeVacancyPin1d       PaymentType = "vacancy_pin_1d"
	PaymentTypeVacancyPin3d       PaymentType = "vacancy_pin_3d"
	PaymentTypeVacancyPin7d       PaymentType = "vacancy_pin_7d"
)

// IsTerminal сообщает, что статус платежа больше не изменится
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusCanceled
}

// PinDays возвращает число дней закрепления для pin-типов, иначе 0
func (t PaymentType) PinDays() int {
	switch t {
	case PaymentTypeVacancyPin1d:
		return 1
	case PaymentTypeVacancyPin3d:
		return 3
	case PaymentTypeVacancyPin7d:
		return 7
	}
	return 0
}

// Valid проверяет, что тип платежа входит в фиксированный набор услуг
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeWorkerSubscription,
		PaymentTypeVacancyPublication,
		PaymentTypeVacancyBoost,
		PaymentTypeVacancyPin1d,
		PaymentTypeVacancyPin3d,
		PaymentTypeVacancyPin7d:
		return true
	}
	return false
}
