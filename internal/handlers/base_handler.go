package handlers

import (
	"strconv"

	"botrabota_backend/internal/logger"
	"botrabota_backend/internal/repositories"
	"botrabota_backend/internal/validator"
	"botrabota_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{validator: v}
}

func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("Failed to bind JSON body", "error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.Warn("Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Errors))
		} else {
			logger.Error("Internal validator error", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// HandleServiceError переводит ошибку сервиса в HTTP-ответ.
// "Не найдено" - ожидаемый исход запроса по id, а не сбой: сентинелы
// репозиториев отдаются как 404, а не прячутся за 500.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	switch {
	case apperrors.Is(err, repositories.ErrUserNotFound),
		apperrors.Is(err, repositories.ErrVacancyNotFound),
		apperrors.Is(err, repositories.ErrPaymentNotFound):
		logger.Info("Resource not found", "error", err.Error(), "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.ErrNotFound(err))
		return
	case apperrors.Is(err, repositories.ErrUserAlreadyExists):
		apperrors.HandleError(c, apperrors.ErrAlreadyExists(err))
		return
	}

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.Warn("Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.Error("Internal server error", "error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ParseInt64Param извлекает числовой параметр пути.
func (h *BaseHandler) ParseInt64Param(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid parameter '"+name+"': must be an integer"))
		return 0, false
	}
	return id, true
}
