// Package gateway - клиент платежного шлюза ЮKassa.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"botrabota_backend/internal/config"

	"github.com/google/uuid"
)

const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)

// Client создает платежи в ЮKassa. Креды берутся из конфига,
// как у Robokassa: shop id + секретный ключ через Basic Auth.
type Client struct {
	ShopID    string
	SecretKey string
	BaseURL   string
	ReturnURL string
	client    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		ShopID:    cfg.Payment.ShopID,
		SecretKey: cfg.Payment.SecretKey,
		BaseURL:   "https://api.yookassa.ru/v3",
		ReturnURL: cfg.Payment.ReturnURL,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Metadata - сквозные метаданные платежа. ЮKassa вернет их
// в webhook-уведомлении, по ним восстанавливается запись.
type Metadata struct {
	TelegramID  int64
	PaymentType string
	VacancyID   *int64
}

func (m Metadata) toMap() map[string]string {
	out := map[string]string{
		"telegram_id":  strconv.FormatInt(m.TelegramID, 10),
		"payment_type": m.PaymentType,
	}
	if m.VacancyID != nil {
		out["vacancy_id"] = strconv.FormatInt(*m.VacancyID, 10)
	}
	return out
}

// CreatedPayment - результат создания платежа
type CreatedPayment struct {
	ID              string
	ConfirmationURL string
}

type createRequest struct {
	Amount struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	Confirmation struct {
		Type      string `json:"type"`
		ReturnURL string `json:"return_url"`
	} `json:"confirmation"`
	Capture     bool              `json:"capture"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

type createResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

// CreatePayment создает платеж и возвращает внешний id и ссылку на оплату.
// Ошибка шлюза возвращается как есть: запись о платеже создается
// только после успешного ответа.
func (c *Client) CreatePayment(ctx context.Context, amount int, description string, meta Metadata) (*CreatedPayment, error) {
	var reqBody createRequest
	reqBody.Amount.Value = fmt.Sprintf("%d.00", amount)
	reqBody.Amount.Currency = "RUB"
	reqBody.Confirmation.Type = "redirect"
	reqBody.Confirmation.ReturnURL = c.ReturnURL
	reqBody.Capture = true
	reqBody.Description = description
	reqBody.Metadata = meta.toMap()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.SetBasicAuth(c.ShopID, c.SecretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yookassa: create payment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yookassa: create payment: unexpected status %d", resp.StatusCode)
	}

	var body createResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("yookassa: decode response: %w", err)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("yookassa: empty payment id in response")
	}

	return &CreatedPayment{
		ID:              body.ID,
		ConfirmationURL: body.Confirmation.ConfirmationURL,
	}, nil
}

// WebhookEvent - асинхронное уведомление шлюза.
// Поля совпадают с реальным форматом ЮKassa.
type WebhookEvent struct {
	Event  string        `json:"event"`
	Object PaymentObject `json:"object"`
}

type PaymentObject struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Amount struct {
		Value    string `json:"value"`
		Currency string `json:"currency"`
	} `json:"amount"`
	Metadata map[string]string `json:"metadata"`
}

// ParsedMetadata разбирает метаданные уведомления
func (o PaymentObject) ParsedMetadata() Metadata {
	meta := Metadata{PaymentType: o.Metadata["payment_type"]}
	meta.TelegramID, _ = strconv.ParseInt(o.Metadata["telegram_id"], 10, 64)
	if raw, ok := o.Metadata["vacancy_id"]; ok && raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			meta.VacancyID = &id
		}
	}
	return meta
}

// AmountRubles возвращает сумму уведомления в целых рублях
func (o PaymentObject) AmountRubles() int {
	value, _ := strconv.ParseFloat(o.Amount.Value, 64)
	return int(value)
}
