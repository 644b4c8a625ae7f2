package middleware

import (
	"strconv"

	"botrabota_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminOnly пропускает только запросы с заголовком X-Admin-Id,
// совпадающим с идентификатором администратора из конфигурации.
func AdminOnly(adminID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-Admin-Id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id != adminID {
			apperrors.HandleError(c, apperrors.ErrNotAdmin)
			c.Abort()
			return
		}
		c.Set("admin_id", id)
		c.Next()
	}
}
