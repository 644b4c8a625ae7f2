package handlers

import (
	"errors"
	"net/http"

	"botrabota_backend/internal/services/geo"
	"botrabota_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type GeoHandler struct {
	*BaseHandler
	geocoder *geo.Geocoder
}

func NewGeoHandler(base *BaseHandler, geocoder *geo.Geocoder) *GeoHandler {
	return &GeoHandler{BaseHandler: base, geocoder: geocoder}
}

func (h *GeoHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/geo/geocode", h.Geocode)
}

// Geocode превращает текстовый адрес в координаты через Яндекс Геокодер
func (h *GeoHandler) Geocode(c *gin.Context) {
	var req struct {
		Address string `json:"address" validate:"required,min=2,max=300"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	lat, lon, err := h.geocoder.Geocode(c.Request.Context(), req.Address)
	if err != nil {
		if errors.Is(err, geo.ErrAddressNotFound) {
			apperrors.HandleError(c, apperrors.NewBadRequestError("Адрес не найден, уточните формулировку"))
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"latitude": lat, "longitude": lon})
}
