package handlers

import (
	"net/http"

	"botrabota_backend/internal/dto"
	"botrabota_backend/internal/models"
	"botrabota_backend/internal/services"
	"botrabota_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type VacancyHandler struct {
	*BaseHandler
	vacancies *services.VacancyService
	limits    *services.LimitService
	users     *services.UserService
}

func NewVacancyHandler(
	base *BaseHandler,
	vacancies *services.VacancyService,
	limits *services.LimitService,
	users *services.UserService,
) *VacancyHandler {
	return &VacancyHandler{
		BaseHandler: base,
		vacancies:   vacancies,
		limits:      limits,
		users:       users,
	}
}

// Create публикует вакансию за счёт месячной квоты работодателя.
// Публикация сверх квоты идёт через платёж, а не через этот маршрут.
func (h *VacancyHandler) Create(c *gin.Context) {
	var req dto.CreateVacancyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	ctx := c.Request.Context()

	employer, err := h.users.GetByID(ctx, req.EmployerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if employer.IsBlocked {
		apperrors.HandleError(c, apperrors.ErrUserBlocked)
		return
	}
	if employer.Role != models.UserRoleEmployer {
		apperrors.HandleError(c, apperrors.ErrInvalidUserRole)
		return
	}

	quota, err := h.limits.CheckVacancyQuota(ctx, req.EmployerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !quota.Allowed {
		apperrors.HandleError(c, apperrors.ErrLimitExceeded("vacancy", "Лимит бесплатных вакансий исчерпан"))
		return
	}

	vacancy, err := h.vacancies.Create(ctx, req.EmployerID, services.VacancyInput{
		Title:       req.Title,
		City:        req.City,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Salary:      req.Salary,
		Description: req.Description,
		PhotoID:     req.PhotoID,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.limits.ConsumeFreeVacancy(ctx, req.EmployerID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toVacancyResponse(vacancy, 0))
}

func (h *VacancyHandler) Get(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	vacancy, err := h.vacancies.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toVacancyResponse(vacancy, 0))
}

func (h *VacancyHandler) ListByEmployer(c *gin.Context) {
	employerID, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	list, err := h.vacancies.ListByEmployer(c.Request.Context(), employerID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	resp := make([]dto.VacancyResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toVacancyResponse(&list[i], 0))
	}
	c.JSON(http.StatusOK, gin.H{"vacancies": resp, "total": len(resp)})
}

func (h *VacancyHandler) Deactivate(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	if err := h.vacancies.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Respond фиксирует отклик работника: инкремент счётчика откликов
func (h *VacancyHandler) Respond(c *gin.Context) {
	id, ok := h.ParseInt64Param(c, "id")
	if !ok {
		return
	}
	vacancy, err := h.vacancies.RegisterResponse(c.Request.Context(), id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"employer_id":     vacancy.EmployerID,
		"responses_count": vacancy.ResponsesCount,
	})
}

func (h *VacancyHandler) RegisterRoutes(api *gin.RouterGroup) {
	vacancies := api.Group("/vacancies")
	{
		vacancies.POST("", h.Create)
		vacancies.GET("/:id", h.Get)
		vacancies.DELETE("/:id", h.Deactivate)
		vacancies.POST("/:id/respond", h.Respond)
	}
	api.GET("/employers/:id/vacancies", h.ListByEmployer)
}

func toVacancyResponse(v *models.Vacancy, distanceKm float64) dto.VacancyResponse {
	return dto.VacancyResponse{
		ID:             v.ID,
		EmployerID:     v.EmployerID,
		Title:          v.Title,
		City:           v.City,
		Salary:         v.Salary,
		Description:    v.Description,
		ViewsCount:     v.ViewsCount,
		ResponsesCount: v.ResponsesCount,
		IsBoosted:      v.IsBoosted,
		IsPinned:       v.IsPinned,
		IsActive:       v.IsActive,
		DistanceKm:     distanceKm,
	}
}
