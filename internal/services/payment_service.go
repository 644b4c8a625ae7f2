package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"botrabota_backend/internal/config"
	"botrabota_backend/internal/gateway"
	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/notifier"
	"botrabota_backend/internal/repositories"
	"botrabota_backend/pkg/apperrors"
)

// PaymentGateway - то, что платежному сервису нужно от шлюза
type PaymentGateway interface {
	CreatePayment(ctx context.Context, amount int, description string, meta gateway.Metadata) (*gateway.CreatedPayment, error)
}

// PaymentService - журнал платежей и сверка. Машина состояний записи:
// pending -> succeeded | canceled, оба терминальны. Повторная доставка
// уведомления по тому же внешнему id - no-op. Побочный эффект
// (подписка, квота, boost, pin) применяется не более одного раза
// на запись.
type PaymentService struct {
	payments  repositories.PaymentRepository
	limits    *LimitService
	vacancies *VacancyService
	gateway   PaymentGateway
	sender    notifier.Sender // nil допустим: уведомления опциональны
	cfg       *config.Config
	now       func() time.Time
}

func NewPaymentService(
	payments repositories.PaymentRepository,
	limits *LimitService,
	vacancies *VacancyService,
	gw PaymentGateway,
	sender notifier.Sender,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		payments:  payments,
		limits:    limits,
		vacancies: vacancies,
		gateway:   gw,
		sender:    sender,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// PriceFor возвращает цену услуги из таблицы цен конфига.
// Сумма фиксируется при создании намерения, а не берется
// из внешней системы при подтверждении.
func (s *PaymentService) PriceFor(t models.PaymentType) int {
	switch t {
	case models.PaymentTypeWorkerSubscription:
		return s.cfg.Prices.WorkerSubscription
	case models.PaymentTypeVacancyPublication:
		return s.cfg.Prices.VacancyPublication
	case models.PaymentTypeVacancyBoost:
		return s.cfg.Prices.VacancyBoost
	case models.PaymentTypeVacancyPin1d:
		return s.cfg.Prices.VacancyPin1d
	case models.PaymentTypeVacancyPin3d:
		return s.cfg.Prices.VacancyPin3d
	case models.PaymentTypeVacancyPin7d:
		return s.cfg.Prices.VacancyPin7d
	}
	return 0
}

// Description возвращает текст назначения платежа
func (s *PaymentService) Description(t models.PaymentType) string {
	switch t {
	case models.PaymentTypeWorkerSubscription:
		return fmt.Sprintf("Подписка работника на %d дней", s.cfg.Limits.SubscriptionDays)
	case models.PaymentTypeVacancyPublication:
		return "Публикация вакансии"
	case models.PaymentTypeVacancyBoost:
		return "Поднятие вакансии"
	case models.PaymentTypeVacancyPin1d:
		return "Закрепление вакансии на 1 день"
	case models.PaymentTypeVacancyPin3d:
		return "Закрепление вакансии на 3 дня"
	case models.PaymentTypeVacancyPin7d:
		return "Закрепление вакансии на 7 дней"
	}
	return "Оплата услуги"
}

// CreateIntent создает платеж в шлюзе и запись о нем в статусе pending.
// Порядок важен: при отказе шлюза запись не создается вовсе,
// полузаполненных состояний не остается.
func (s *PaymentService) CreateIntent(ctx context.Context, userID int64, t models.PaymentType, vacancyID *int64) (*models.Payment, string, error) {
	if !t.Valid() {
		return nil, "", apperrors.ErrInvalidOperation("payments", "unknown payment type")
	}

	amount := s.PriceFor(t)
	created, err := s.gateway.CreatePayment(ctx, amount, s.Description(t), gateway.Metadata{
		TelegramID:  userID,
		PaymentType: string(t),
		VacancyID:   vacancyID,
	})
	if err != nil {
		return nil, "", apperrors.ErrExternalService(err, "payments", "payment gateway is unavailable")
	}

	payment := &models.Payment{
		UserID:     userID,
		VacancyID:  vacancyID,
		Type:       t,
		Amount:     amount,
		Status:     models.PaymentStatusPending,
		YookassaID: &created.ID,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, "", err
	}

	return payment, created.ConfirmationURL, nil
}

// ConfirmDirect - прямой путь подтверждения: вызывающий уже знает id
// записи (интерактивная оплата в чате). Терминальная запись не трогается.
func (s *PaymentService) ConfirmDirect(ctx context.Context, paymentID int64, providerPaymentID string) error {
	payment, err := s.payments.FindByID(ctx, paymentID)
	if err != nil {
		return err
	}
	if payment.Status.IsTerminal() {
		logger.Info("payment already reconciled", "payment_id", payment.ID, "status", payment.Status)
		return nil
	}

	payment.Status = models.PaymentStatusSucceeded
	if providerPaymentID != "" {
		payment.ProviderPaymentID = &providerPaymentID
	}
	if err := s.payments.Update(ctx, payment); err != nil {
		return err
	}
	return s.applyEntitlement(ctx, payment)
}

// ProcessDirectPayment - оплата через Telegram Payments: платформа
// уже подтвердила списание, запись создается сразу и сверяется.
func (s *PaymentService) ProcessDirectPayment(ctx context.Context, userID int64, t models.PaymentType, vacancyID *int64, providerPaymentID string) (*models.Payment, error) {
	if !t.Valid() {
		return nil, apperrors.ErrInvalidOperation("payments", "unknown payment type")
	}

	// Telegram может доставить successful_payment повторно: один charge id -
	// одна запись и одно применение эффекта
	if providerPaymentID != "" {
		existing, err := s.payments.FindByProviderPaymentID(ctx, providerPaymentID)
		if err == nil {
			logger.Info("duplicate direct payment delivery", "payment_id", existing.ID, "provider_payment_id", providerPaymentID)
			return existing, nil
		}
		if !errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, err
		}
	}

	payment := &models.Payment{
		UserID:    userID,
		VacancyID: vacancyID,
		Type:      t,
		Amount:    s.PriceFor(t),
		Status:    models.PaymentStatusPending,
	}
	if providerPaymentID != "" {
		payment.ProviderPaymentID = &providerPaymentID
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}

	payment.Status = models.PaymentStatusSucceeded
	if err := s.payments.Update(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.applyEntitlement(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// HandleWebhook обрабатывает асинхронное уведомление шлюза.
// Критичное свойство - идемпотентность: дубль уведомления по уже
// терминальной записи ничего не меняет.
func (s *PaymentService) HandleWebhook(ctx context.Context, event gateway.WebhookEvent) error {
	switch event.Event {
	case gateway.EventPaymentSucceeded:
		return s.handleSucceeded(ctx, event.Object)
	case gateway.EventPaymentCanceled:
		return s.handleCanceled(ctx, event.Object)
	default:
		logger.Warn("unknown webhook event", "event", event.Event, "yookassa_id", event.Object.ID)
		return nil
	}
}

func (s *PaymentService) handleSucceeded(ctx context.Context, obj gateway.PaymentObject) error {
	meta := obj.ParsedMetadata()
	if meta.TelegramID == 0 {
		// Битые метаданные: доступность бота важнее строгого отказа
		logger.Error("webhook without telegram_id in metadata", "yookassa_id", obj.ID)
		return nil
	}

	payment, err := s.payments.FindByYookassaID(ctx, obj.ID)
	if errors.Is(err, repositories.ErrPaymentNotFound) {
		// Уведомление пришло раньше записи: создаем из метаданных
		payment, err = s.createFromWebhook(ctx, obj, meta)
	}
	if err != nil {
		return err
	}

	if payment.Status.IsTerminal() {
		logger.Info("duplicate webhook delivery", "yookassa_id", obj.ID, "status", payment.Status)
		return nil
	}

	payment.Status = models.PaymentStatusSucceeded
	if err := s.payments.Update(ctx, payment); err != nil {
		return err
	}

	logger.Info("payment succeeded", "payment_id", payment.ID, "yookassa_id", obj.ID, "type", payment.Type)
	return s.applyEntitlement(ctx, payment)
}

func (s *PaymentService) handleCanceled(ctx context.Context, obj gateway.PaymentObject) error {
	payment, err := s.payments.FindByYookassaID(ctx, obj.ID)
	if errors.Is(err, repositories.ErrPaymentNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if payment.Status.IsTerminal() {
		return nil
	}

	// Отмена меняет только статус, прав она не дает
	payment.Status = models.PaymentStatusCanceled
	if err := s.payments.Update(ctx, payment); err != nil {
		return err
	}
	logger.Info("payment canceled", "payment_id", payment.ID, "yookassa_id", obj.ID)
	return nil
}

func (s *PaymentService) createFromWebhook(ctx context.Context, obj gateway.PaymentObject, meta gateway.Metadata) (*models.Payment, error) {
	t := models.PaymentType(meta.PaymentType)
	amount := obj.AmountRubles()
	if t.Valid() && amount == 0 {
		amount = s.PriceFor(t)
	}

	raw, _ := json.Marshal(obj.Metadata)
	payment := &models.Payment{
		UserID:     meta.TelegramID,
		VacancyID:  meta.VacancyID,
		Type:       t,
		Amount:     amount,
		Status:     models.PaymentStatusPending,
		YookassaID: &obj.ID,
		Metadata:   raw,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// applyEntitlement применяет побочный эффект подтвержденного платежа.
// Вакансия могла исчезнуть к моменту сверки: это логируется и
// проглатывается, падение здесь хуже потерянного буста.
func (s *PaymentService) applyEntitlement(ctx context.Context, payment *models.Payment) error {
	switch payment.Type {
	case models.PaymentTypeWorkerSubscription:
		days := s.cfg.Limits.SubscriptionDays
		if err := s.limits.GrantSubscription(ctx, payment.UserID, days); err != nil {
			return err
		}
		s.notify(payment.UserID, fmt.Sprintf("Подписка активирована на %d дней. Просмотр вакансий без ограничений.", days))

	case models.PaymentTypeVacancyPublication:
		if err := s.limits.GrantFreeVacancies(ctx, payment.UserID, 1); err != nil {
			return err
		}
		s.notify(payment.UserID, "Оплата прошла успешно. Теперь вы можете создать вакансию.")

	case models.PaymentTypeVacancyBoost:
		if payment.VacancyID == nil {
			logger.Warn("boost payment without vacancy id", "payment_id", payment.ID)
			return nil
		}
		if err := s.vacancies.Boost(ctx, *payment.VacancyID); err != nil {
			if errors.Is(err, repositories.ErrVacancyNotFound) {
				logger.Warn("boost payment for missing vacancy", "payment_id", payment.ID, "vacancy_id", *payment.VacancyID)
				return nil
			}
			return err
		}
		s.notify(payment.UserID, "Вакансия поднята в начало списка.")

	case models.PaymentTypeVacancyPin1d, models.PaymentTypeVacancyPin3d, models.PaymentTypeVacancyPin7d:
		if payment.VacancyID == nil {
			logger.Warn("pin payment without vacancy id", "payment_id", payment.ID)
			return nil
		}
		days := payment.Type.PinDays()
		if err := s.vacancies.Pin(ctx, *payment.VacancyID, days); err != nil {
			if errors.Is(err, repositories.ErrVacancyNotFound) {
				logger.Warn("pin payment for missing vacancy", "payment_id", payment.ID, "vacancy_id", *payment.VacancyID)
				return nil
			}
			return err
		}
		s.notify(payment.UserID, fmt.Sprintf("Вакансия закреплена на %d дн.", days))

	default:
		logger.Warn("payment with unknown type reconciled", "payment_id", payment.ID, "type", payment.Type)
	}
	return nil
}

func (s *PaymentService) notify(chatID int64, text string) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(chatID, text); err != nil {
		logger.Warn("payment notification failed", "chat_id", chatID, "error", err.Error())
	}
}

// ListByUser возвращает историю платежей пользователя
func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	return s.payments.FindByUser(ctx, userID)
}
