package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/joke/service"
	"shopping-backend/internal/shared/problem"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetJoke handles GET /api/v1/joke?first=&last=
func (h *Handler) GetJoke(c *gin.Context) {
	first := c.DefaultQuery("first", "Chuck")
	last := c.DefaultQuery("last", "Norris")

	joke, err := h.service.GetJoke(c.Request.Context(), first, last)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch joke")
		problem.Internal(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"joke": joke})
}
