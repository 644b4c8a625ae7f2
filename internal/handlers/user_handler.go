package handlers

import (
	"net/http"
	"time"

	"botrabota_backend/internal/dto"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	users *services.UserService
}

func NewUserHandler(base *BaseHandler, users *services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

// Register создаёт пользователя при первом контакте или возвращает
// существующего. Роль выставляется только при создании.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, isNew, err := h.users.GetOrCreate(c.Request.Context(), req.TelegramID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if isNew {
		if err := h.users.SetRole(c.Request.Context(), req.TelegramID, models.UserRole(req.Role)); err != nil {
			h.HandleServiceError(c, err)
			return
		}
		user.Role = models.UserRole(req.Role)
	}

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	c.JSON(status, toUserResponse(user))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) SetRole(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	var req struct {
		Role string `json:"role" validate:"required,is-user-role"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.users.SetRole(c.Request.Context(), id, models.UserRole(req.Role)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateWorkerProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.users.UpdateWorkerProfile(c.Request.Context(), id, services.WorkerProfileUpdate{
		Name:      req.Name,
		Age:       req.Age,
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Resume:    req.Resume,
		PhotoID:   req.PhotoID,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *UserHandler) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("/:id", h.Get)
		users.PUT("/:id/role", h.SetRole)
		users.PATCH("/:id/profile", h.UpdateProfile)
	}
}

func toUserResponse(u *models.User) dto.UserResponse {
	resp := dto.UserResponse{
		TelegramID:        u.TelegramID,
		Role:              string(u.Role),
		Name:              u.Name,
		Age:               u.Age,
		City:              u.City,
		Resume:            u.Resume,
		DailyViews:        u.DailyViews,
		FreeVacanciesLeft: u.FreeVacanciesLeft,
		IsBlocked:         u.IsBlocked,
	}
	if u.SubscriptionUntil != nil {
		formatted := u.SubscriptionUntil.Format(time.RFC3339)
		resp.SubscriptionUntil = &formatted
	}
	return resp
}
