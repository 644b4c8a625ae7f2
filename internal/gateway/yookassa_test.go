package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"botrabota_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePayment(t *testing.T) {
	var captured createRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("Idempotence-Key"))
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "shop-1", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "2d6f1234-000f-5000-8000-1b68e7b15f3f",
			"status": "pending",
			"confirmation": {"confirmation_url": "https://yoomoney.ru/checkout/payments/v2?orderId=abc"}
		}`))
	}))
	defer server.Close()

	cfg := &config.Config{}
	cfg.Payment.ShopID = "shop-1"
	cfg.Payment.SecretKey = "secret"
	cfg.Payment.ReturnURL = "https://t.me/botrabota_bot"
	client := NewClient(cfg)
	client.BaseURL = server.URL

	vacancyID := int64(7)
	created, err := client.CreatePayment(context.Background(), 300, "Подписка работника на 30 дней", Metadata{
		TelegramID:  123456,
		PaymentType: "worker_subscription",
		VacancyID:   &vacancyID,
	})
	require.NoError(t, err)
	assert.Equal(t, "2d6f1234-000f-5000-8000-1b68e7b15f3f", created.ID)
	assert.Contains(t, created.ConfirmationURL, "yoomoney.ru")

	assert.Equal(t, "300.00", captured.Amount.Value)
	assert.Equal(t, "RUB", captured.Amount.Currency)
	assert.True(t, captured.Capture)
	assert.Equal(t, "redirect", captured.Confirmation.Type)
	assert.Equal(t, map[string]string{
		"telegram_id":  "123456",
		"payment_type": "worker_subscription",
		"vacancy_id":   "7",
	}, captured.Metadata)
}

func TestCreatePayment_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(&config.Config{})
	client.BaseURL = server.URL

	_, err := client.CreatePayment(context.Background(), 100, "Публикация вакансии", Metadata{TelegramID: 1})
	require.Error(t, err)
}

func TestWebhookEventParsing(t *testing.T) {
	raw := `{
		"type": "notification",
		"event": "payment.succeeded",
		"object": {
			"id": "2d6f1234-000f-5000-8000-1b68e7b15f3f",
			"status": "succeeded",
			"amount": {"value": "300.00", "currency": "RUB"},
			"metadata": {"telegram_id": "123456", "payment_type": "worker_subscription", "vacancy_id": "9"}
		}
	}`

	var event WebhookEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	assert.Equal(t, EventPaymentSucceeded, event.Event)
	assert.Equal(t, 300, event.Object.AmountRubles())

	meta := event.Object.ParsedMetadata()
	assert.Equal(t, int64(123456), meta.TelegramID)
	assert.Equal(t, "worker_subscription", meta.PaymentType)
	require.NotNil(t, meta.VacancyID)
	assert.Equal(t, int64(9), *meta.VacancyID)
}

func TestParsedMetadata_MissingFields(t *testing.T) {
	obj := PaymentObject{Metadata: map[string]string{"payment_type": "vacancy_boost"}}
	meta := obj.ParsedMetadata()
	assert.Zero(t, meta.TelegramID)
	assert.Nil(t, meta.VacancyID)
}
