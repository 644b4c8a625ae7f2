package handlers

import (
	"net/http"

	"botrabota_backend/internal/dto"
	"botrabota_backend/internal/gateway"
	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/services"
	"botrabota_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	payments *services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{BaseHandler: base, payments: payments}
}

func (h *PaymentHandler) RegisterRoutes(api *gin.RouterGroup) {
	payments := api.Group("/payments")
	{
		payments.POST("", h.CreateIntent)
		payments.POST("/direct", h.ProcessDirect)
	}
	api.GET("/users/:id/payments", h.ListByUser)
}

// RegisterWebhookRoutes вешает приём уведомлений вне /api/v1:
// путь совпадает с настроенным в личном кабинете ЮKassa.
func (h *PaymentHandler) RegisterWebhookRoutes(router *gin.Engine, path string) {
	if path == "" {
		path = "/yookassa/webhook"
	}
	router.POST(path, h.Webhook)
	router.GET("/yookassa/return", h.Return)
}

// Return - страница, на которую ЮKassa отправляет пользователя после
// оплаты. Статус придет вебхуком, здесь только подтверждение.
func (h *PaymentHandler) Return(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Оплата обрабатывается. Вернитесь в бота, уведомление придет в чат.",
	})
}

// CreateIntent создаёт платёж в шлюзе и возвращает ссылку на оплату.
// Запись в базе появляется только после успешного ответа шлюза.
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	payment, confirmURL, err := h.payments.CreateIntent(
		c.Request.Context(),
		req.TelegramID,
		models.PaymentType(req.Type),
		req.VacancyID,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp := dto.PaymentIntentResponse{
		PaymentID:  payment.ID,
		ConfirmURL: confirmURL,
		Amount:     payment.Amount,
	}
	if payment.YookassaID != nil {
		resp.YookassaID = *payment.YookassaID
	}
	c.JSON(http.StatusCreated, resp)
}

// ProcessDirect проводит платёж, подтверждённый напрямую
// (Telegram Payments): запись сразу в терминальном статусе.
func (h *PaymentHandler) ProcessDirect(c *gin.Context) {
	var req dto.DirectPaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	payment, err := h.payments.ProcessDirectPayment(
		c.Request.Context(),
		req.TelegramID,
		models.PaymentType(req.Type),
		req.VacancyID,
		req.ProviderPaymentID,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"payment_id": payment.ID,
		"status":     string(payment.Status),
		"amount":     payment.Amount,
	})
}

func (h *PaymentHandler) ListByUser(c *gin.Context) {
	userID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	list, err := h.payments.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": list, "total": len(list)})
}

// Webhook принимает уведомления ЮKassa. Шлюз повторяет доставку,
// пока не получит 200, поэтому любой разобранный запрос, включая
// дубликат, подтверждается успешным ответом.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var event gateway.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Warn("Malformed webhook payload", "error", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid webhook payload"))
		return
	}

	if err := h.payments.HandleWebhook(c.Request.Context(), event); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
