package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"shopping-backend/internal/domains/product/model"
	"shopping-backend/internal/domains/product/service"
	"shopping-backend/internal/shared/params"
	"shopping-backend/internal/shared/problem"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	defaultThreshold = 10
)

var defaultExpensiveMin = decimal.RequireFromString("100.00")

type Handler struct {
	service service.ServiceInterface
}

// NewHandler creates the product HTTP handler.
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// GetProduct handles GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	res, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// ListProducts handles GET /api/v1/products?page=&size=&sort=field,direction
func (h *Handler) ListProducts(c *gin.Context) {
	page, ok := params.IntQuery(c, "page", 0)
	if !ok {
		return
	}
	size, ok := params.IntQuery(c, "size", defaultPageSize)
	if !ok {
		return
	}

	if page < 0 {
		page = 0
	}
	if size < 1 || size > maxPageSize {
		size = defaultPageSize
	}

	sortCol, sortDesc, ok := parseSort(c)
	if !ok {
		return
	}

	res, err := h.service.ListProducts(c.Request.Context(), model.PageRequest{
		Page:     page,
		Size:     size,
		SortCol:  sortCol,
		SortDesc: sortDesc,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// parseSort reads ?sort=field or ?sort=field,desc against the whitelist.
func parseSort(c *gin.Context) (col string, desc bool, ok bool) {
	raw, present := c.GetQuery("sort")
	if !present || raw == "" {
		return model.SortFields["name"], false, true
	}

	parts := strings.SplitN(raw, ",", 2)
	col, known := model.SortFields[parts[0]]
	if !known {
		problem.TypeMismatch(c, "sort", parts[0], "sortable field")
		return "", false, false
	}

	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "desc":
			desc = true
		case "asc", "":
		default:
			problem.TypeMismatch(c, "sort", parts[1], "asc|desc")
			return "", false, false
		}
	}

	return col, desc, true
}

// SearchProducts handles GET /api/v1/products/search?name=
func (h *Handler) SearchProducts(c *gin.Context) {
	name, ok := params.RequiredStringQuery(c, "name")
	if !ok {
		return
	}

	res, err := h.service.SearchByName(c.Request.Context(), name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// PriceRange handles GET /api/v1/products/price-range?minPrice=&maxPrice=
// Both bounds are required; a missing one is a 400 missing-parameter.
func (h *Handler) PriceRange(c *gin.Context) {
	min, ok := params.RequiredDecimalQuery(c, "minPrice")
	if !ok {
		return
	}
	max, ok := params.RequiredDecimalQuery(c, "maxPrice")
	if !ok {
		return
	}

	res, err := h.service.GetByPriceRange(c.Request.Context(), min, max)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// LowStock handles GET /api/v1/products/low-stock?threshold=
func (h *Handler) LowStock(c *gin.Context) {
	threshold, ok := params.IntQuery(c, "threshold", defaultThreshold)
	if !ok {
		return
	}

	res, err := h.service.GetLowStock(c.Request.Context(), threshold)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// Expensive handles GET /api/v1/products/expensive?minPrice=
func (h *Handler) Expensive(c *gin.Context) {
	minPrice, ok := params.DecimalQuery(c, "minPrice", defaultExpensiveMin)
	if !ok {
		return
	}

	res, err := h.service.GetExpensive(c.Request.Context(), minPrice)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// CreateProduct handles POST /api/v1/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var req model.ProductRequest
	if !bindAndValidate(c, &req, func() error { return req.Validate() }, func() map[string]interface{} { return req.RejectedValues() }) {
		return
	}

	res, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	location := fmt.Sprintf("%s/%d", c.Request.URL.Path, res.ID)
	c.Header("Location", location)
	c.JSON(http.StatusCreated, res)
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	var req model.ProductRequest
	if !bindAndValidate(c, &req, func() error { return req.Validate() }, func() map[string]interface{} { return req.RejectedValues() }) {
		return
	}

	res, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// SetStock handles PUT /api/v1/products/:id/stock (absolute set).
func (h *Handler) SetStock(c *gin.Context) {
	h.stockMutation(c, h.service.SetStock)
}

// ReserveStock handles POST /api/v1/products/:id/reserve-stock.
func (h *Handler) ReserveStock(c *gin.Context) {
	h.stockMutation(c, h.service.ReserveStock)
}

// AddStock handles POST /api/v1/products/:id/add-stock.
func (h *Handler) AddStock(c *gin.Context) {
	h.stockMutation(c, h.service.AddStock)
}

func (h *Handler) stockMutation(
	c *gin.Context,
	op func(ctx context.Context, id int64, quantity int) (*model.ProductResponse, error),
) {
	id, ok := params.Int64Path(c, "id")
	if !ok {
		return
	}

	var req model.StockUpdateRequest
	if !bindAndValidate(c, &req, func() error { return req.Validate() }, func() map[string]interface{} { return req.RejectedValues() }) {
		return
	}

	res, err := op(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

// bindAndValidate decodes the JSON body and runs the request's validation,
// writing the matching problem on failure. validate/rejected are closures
// so they see the request after binding.
func bindAndValidate(c *gin.Context, req interface{}, validate func() error, rejected func() map[string]interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			problem.TypeMismatch(c, typeErr.Field, typeErr.Value, typeErr.Type.String())
			return false
		}
		problem.MalformedRequest(c)
		return false
	}

	if err := validate(); err != nil {
		var errs validation.Errors
		if errors.As(err, &errs) {
			problem.ValidationFailed(c, problem.ViolationsFromOzzo(errs, rejected()))
			return false
		}
		problem.DomainValidation(c, "", nil, err.Error())
		return false
	}

	return true
}

// writeError maps a domain error to its problem body. Every failure mode
// reachable from the service lands here exactly once.
func (h *Handler) writeError(c *gin.Context, err error) {
	var insufficient *model.InsufficientStockError
	var domainErr *model.DomainValidationError
	var pgErr *pgconn.PgError

	switch {
	case model.IsNotFoundError(err):
		p := problem.New("product-not-found", "Product Not Found", http.StatusNotFound, err.Error())
		if id, perr := strconv.ParseInt(c.Param("id"), 10, 64); perr == nil {
			p.With("productId", id)
		}
		problem.Write(c, p)

	case errors.As(err, &insufficient):
		p := problem.New("insufficient-stock", "Insufficient Stock", http.StatusBadRequest, err.Error()).
			With("productId", insufficient.ProductID).
			With("requestedQuantity", insufficient.Requested).
			With("availableQuantity", insufficient.Available)
		problem.Write(c, p)

	case errors.As(err, &domainErr):
		problem.DomainValidation(c, domainErr.Field, domainErr.Value, domainErr.Message)

	case model.IsDuplicateSKUError(err):
		p := problem.New("duplicate-key", "Duplicate Business Key", http.StatusConflict, err.Error())
		problem.Write(c, p)

	case errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23"):
		// Integrity-class codes the repository did not translate to a
		// domain error (FK, check constraints) still map to 409.
		log.Warn().Err(err).Str("code", pgErr.Code).Msg("Data integrity violation")
		problem.DataIntegrity(c)

	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled product error")
		problem.Internal(c)
	}
}
