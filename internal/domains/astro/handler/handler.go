package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/astro/service"
	"shopping-backend/internal/shared/problem"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetAstronauts handles GET /api/v1/astro
func (h *Handler) GetAstronauts(c *gin.Context) {
	res, err := h.service.GetAstronauts(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch astronauts")
		problem.Internal(c)
		return
	}

	c.JSON(http.StatusOK, res)
}
