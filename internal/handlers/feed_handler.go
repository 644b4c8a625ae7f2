package handlers

import (
	"net/http"

	"botrabota_backend/internal/dto"
	"botrabota_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	*BaseHandler
	feed *services.FeedService
}

func NewFeedHandler(base *BaseHandler, feed *services.FeedService) *FeedHandler {
	return &FeedHandler{BaseHandler: base, feed: feed}
}

func (h *FeedHandler) RegisterRoutes(api *gin.RouterGroup) {
	feed := api.Group("/feed")
	{
		feed.POST("/:id/next", h.Next)
		feed.POST("/:id/reset", h.ResetCursor)
	}
}

// Next выдаёт работнику следующую вакансию ленты и сдвигает курсор.
// Исход всегда 200: исчерпанная квота и пустая лента - ожидаемые
// ответы, различаемые полем outcome.
func (h *FeedHandler) Next(c *gin.Context) {
	userID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	item, err := h.feed.Next(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp := dto.FeedNextResponse{
		Outcome:        string(item.Outcome),
		RemainingViews: item.RemainingViews,
	}
	if item.Vacancy != nil {
		v := toVacancyResponse(item.Vacancy, item.DistanceKm)
		resp.Vacancy = &v
	}
	c.JSON(http.StatusOK, resp)
}

// ResetCursor начинает просмотр ленты с начала
func (h *FeedHandler) ResetCursor(c *gin.Context) {
	userID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.feed.ResetCursor(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
