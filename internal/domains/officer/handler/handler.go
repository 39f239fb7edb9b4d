package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog/log"

	"shopping-backend/internal/domains/officer/model"
	"shopping-backend/internal/domains/officer/service"
	"shopping-backend/internal/shared/params"
	"shopping-backend/internal/shared/problem"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListOfficers handles GET /api/v1/officers
func (h *Handler) ListOfficers(c *gin.Context) {
	res, err := h.service.ListOfficers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// GetOfficer handles GET /api/v1/officers/:id
func (h *Handler) GetOfficer(c *gin.Context) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	res, err := h.service.GetOfficer(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreateOfficer handles POST /api/v1/officers
func (h *Handler) CreateOfficer(c *gin.Context) {
	var req model.OfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			problem.TypeMismatch(c, typeErr.Field, typeErr.Value, typeErr.Type.String())
			return
		}
		problem.MalformedRequest(c)
		return
	}

	if err := req.Validate(); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			problem.ValidationFailed(c, problem.ViolationsFromOzzo(errs, req.RejectedValues()))
			return
		}
		problem.DomainValidation(c, "", nil, err.Error())
		return
	}

	res, err := h.service.CreateOfficer(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", c.Request.URL.Path, res.ID))
	c.JSON(http.StatusCreated, res)
}

// DeleteOfficer handles DELETE /api/v1/officers/:id
func (h *Handler) DeleteOfficer(c *gin.Context) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteOfficer(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	if model.IsNotFoundError(err) {
		problem.Write(c, problem.New("officer-not-found", "Officer Not Found",
			http.StatusNotFound, err.Error()))
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled officer error")
	problem.Internal(c)
}
