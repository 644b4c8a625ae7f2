package handlers

import (
	"net/http"
	"strconv"

	"botrabota_backend/internal/dto"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	admin     *services.AdminService
	stats     *services.StatsService
	broadcast *services.BroadcastService
}

func NewAdminHandler(
	base *BaseHandler,
	admin *services.AdminService,
	stats *services.StatsService,
	broadcast *services.BroadcastService,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		admin:       admin,
		stats:       stats,
		broadcast:   broadcast,
	}
}

func (h *AdminHandler) RegisterRoutes(admin *gin.RouterGroup) {
	admin.GET("/stats", h.Stats)
	admin.POST("/broadcast", h.Broadcast)
	admin.POST("/users/:id/block", h.BlockUser)
	admin.POST("/users/:id/unblock", h.UnblockUser)
	admin.POST("/grants/subscription", h.GrantSubscription)
	admin.POST("/grants/vacancies", h.GrantVacancies)
	admin.POST("/vacancies/:id/deactivate", h.DeactivateVacancy)
	admin.POST("/vacancies/:id/activate", h.ActivateVacancy)
	admin.GET("/logs", h.Logs)
}

func (h *AdminHandler) adminID(c *gin.Context) int64 {
	return c.GetInt64("admin_id")
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Collect(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req dto.BroadcastRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.broadcast.Broadcast(c.Request.Context(), req.Text, models.UserRole(req.Role))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": result.Sent, "failed": result.Failed})
}

func (h *AdminHandler) BlockUser(c *gin.Context) {
	userID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.admin.BlockUser(c.Request.Context(), h.adminID(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) UnblockUser(c *gin.Context) {
	userID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.admin.UnblockUser(c.Request.Context(), h.adminID(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) GrantSubscription(c *gin.Context) {
	var req dto.GrantSubscriptionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.admin.GrantSubscription(c.Request.Context(), h.adminID(c), req.TelegramID, req.Days); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) GrantVacancies(c *gin.Context) {
	var req dto.GrantVacanciesRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.admin.GrantFreeVacancies(c.Request.Context(), h.adminID(c), req.TelegramID, req.Count); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) DeactivateVacancy(c *gin.Context) {
	vacancyID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeactivateVacancy(c.Request.Context(), h.adminID(c), vacancyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) ActivateVacancy(c *gin.Context) {
	vacancyID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.admin.ActivateVacancy(c.Request.Context(), h.adminID(c), vacancyID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AdminHandler) Logs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	logs, err := h.admin.Logs(c.Request.Context(), limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs, "total": len(logs)})
}
