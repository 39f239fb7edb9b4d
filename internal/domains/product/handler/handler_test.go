package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopping-backend/internal/domains/product/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeService returns scripted results so handler tests exercise only the
// HTTP mapping: parameter parsing, validation problems and error bodies.
type fakeService struct {
	getProduct    func(id int64) (*model.ProductResponse, error)
	listProducts  func(page model.PageRequest) (*model.Page, error)
	searchByName  func(name string) ([]model.ProductResponse, error)
	byPriceRange  func(min, max decimal.Decimal) ([]model.ProductResponse, error)
	lowStock      func(threshold int) ([]model.ProductResponse, error)
	expensive     func(minPrice decimal.Decimal) ([]model.ProductResponse, error)
	createProduct func(req model.ProductRequest) (*model.ProductResponse, error)
	updateProduct func(id int64, req model.ProductRequest) (*model.ProductResponse, error)
	deleteProduct func(id int64) error
	setStock      func(id int64, quantity int) (*model.ProductResponse, error)
	addStock      func(id int64, amount int) (*model.ProductResponse, error)
	reserveStock  func(id int64, amount int) (*model.ProductResponse, error)
}

func (f *fakeService) GetProduct(_ context.Context, id int64) (*model.ProductResponse, error) {
	return f.getProduct(id)
}
func (f *fakeService) ListProducts(_ context.Context, page model.PageRequest) (*model.Page, error) {
	return f.listProducts(page)
}
func (f *fakeService) SearchByName(_ context.Context, name string) ([]model.ProductResponse, error) {
	return f.searchByName(name)
}
func (f *fakeService) GetByPriceRange(_ context.Context, min, max decimal.Decimal) ([]model.ProductResponse, error) {
	return f.byPriceRange(min, max)
}
func (f *fakeService) GetLowStock(_ context.Context, threshold int) ([]model.ProductResponse, error) {
	return f.lowStock(threshold)
}
func (f *fakeService) GetExpensive(_ context.Context, minPrice decimal.Decimal) ([]model.ProductResponse, error) {
	return f.expensive(minPrice)
}
func (f *fakeService) CreateProduct(_ context.Context, req model.ProductRequest) (*model.ProductResponse, error) {
	return f.createProduct(req)
}
func (f *fakeService) UpdateProduct(_ context.Context, id int64, req model.ProductRequest) (*model.ProductResponse, error) {
	return f.updateProduct(id, req)
}
func (f *fakeService) DeleteProduct(_ context.Context, id int64) error {
	return f.deleteProduct(id)
}
func (f *fakeService) SetStock(_ context.Context, id int64, quantity int) (*model.ProductResponse, error) {
	return f.setStock(id, quantity)
}
func (f *fakeService) AddStock(_ context.Context, id int64, amount int) (*model.ProductResponse, error) {
	return f.addStock(id, amount)
}
func (f *fakeService) ReserveStock(_ context.Context, id int64, amount int) (*model.ProductResponse, error) {
	return f.reserveStock(id, amount)
}

func sampleResponse(id int64) *model.ProductResponse {
	return &model.ProductResponse{
		ID:        id,
		Name:      "Widget",
		Price:     decimal.RequireFromString("19.99"),
		Quantity:  5,
		SKU:       "ABC-123456",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func setupRouter(svc *fakeService) *gin.Engine {
	h := NewHandler(svc)
	r := gin.New()
	products := r.Group("/api/v1/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/search", h.SearchProducts)
		products.GET("/price-range", h.PriceRange)
		products.GET("/low-stock", h.LowStock)
		products.GET("/expensive", h.Expensive)
		products.GET("/:id", h.GetProduct)
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
		products.PUT("/:id/stock", h.SetStock)
		products.POST("/:id/add-stock", h.AddStock)
		products.POST("/:id/reserve-stock", h.ReserveStock)
	}
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

const validBody = `{"name":"Widget","price":"19.99","quantity":5,"sku":"ABC-123456"}`

func TestGetProduct(t *testing.T) {
	r := setupRouter(&fakeService{
		getProduct: func(id int64) (*model.ProductResponse, error) { return sampleResponse(id), nil },
	})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/7", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "ABC-123456", body["sku"])
}

func TestGetProductNotFound(t *testing.T) {
	r := setupRouter(&fakeService{
		getProduct: func(id int64) (*model.ProductResponse, error) {
			return nil, model.NewProductNotFoundError(id)
		},
	})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/99", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "product-not-found")
	assert.Equal(t, float64(99), body["productId"])
}

func TestGetProductNonNumericID(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "type-mismatch")
	assert.Equal(t, "abc", body["rejectedValue"])
}

func TestListProductsEnvelope(t *testing.T) {
	var got model.PageRequest
	r := setupRouter(&fakeService{
		listProducts: func(page model.PageRequest) (*model.Page, error) {
			got = page
			return &model.Page{
				Content:       []model.ProductResponse{*sampleResponse(1)},
				TotalElements: 1,
				TotalPages:    1,
				Size:          page.Size,
				Number:        page.Page,
			}, nil
		},
	})

	rec := doRequest(r, http.MethodGet, "/api/v1/products?page=2&size=10&sort=price,desc", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.Size)
	assert.Equal(t, "price", got.SortCol)
	assert.True(t, got.SortDesc)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(1), body["totalElements"])
	assert.Contains(t, body, "content")
	assert.Contains(t, body, "totalPages")
	assert.Contains(t, body, "number")
}

func TestListProductsUnknownSortField(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodGet, "/api/v1/products?sort=password", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "type-mismatch")
}

func TestListProductsClampsSize(t *testing.T) {
	var got model.PageRequest
	r := setupRouter(&fakeService{
		listProducts: func(page model.PageRequest) (*model.Page, error) {
			got = page
			return &model.Page{Content: []model.ProductResponse{}}, nil
		},
	})

	doRequest(r, http.MethodGet, "/api/v1/products?size=5000", "")
	assert.Equal(t, defaultPageSize, got.Size)
}

func TestSearchRequiresName(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/search", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "missing-parameter")
	assert.Equal(t, "name", body["parameter"])
}

func TestPriceRangeMissingMaxPrice(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/price-range?minPrice=10", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "missing-parameter")
	assert.Equal(t, "maxPrice", body["parameter"])
}

func TestPriceRangeInverted(t *testing.T) {
	r := setupRouter(&fakeService{
		byPriceRange: func(min, max decimal.Decimal) ([]model.ProductResponse, error) {
			return nil, &model.DomainValidationError{
				Field: "minPrice", Value: min, Message: "min price cannot be greater than max price",
			}
		},
	})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/price-range?minPrice=50&maxPrice=10", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "validation-error")
	assert.Equal(t, "minPrice", body["field"])
}

func TestLowStockDefaultThreshold(t *testing.T) {
	var got int
	r := setupRouter(&fakeService{
		lowStock: func(threshold int) ([]model.ProductResponse, error) {
			got = threshold
			return []model.ProductResponse{}, nil
		},
	})

	doRequest(r, http.MethodGet, "/api/v1/products/low-stock", "")
	assert.Equal(t, defaultThreshold, got)
}

func TestCreateProduct(t *testing.T) {
	r := setupRouter(&fakeService{
		createProduct: func(req model.ProductRequest) (*model.ProductResponse, error) {
			res := sampleResponse(12)
			res.Name = req.Name
			return res, nil
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/v1/products", validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/api/v1/products/12", rec.Header().Get("Location"))
	body := decodeBody(t, rec)
	assert.Equal(t, float64(12), body["id"])
}

func TestCreateProductValidationFailed(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodPost, "/api/v1/products",
		`{"name":"ab","price":"19.99","quantity":5,"sku":"bad"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "validation-failed")

	errs, ok := body["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 2)

	// Sorted by field: name before sku.
	first := errs[0].(map[string]interface{})
	second := errs[1].(map[string]interface{})
	assert.Equal(t, "name", first["field"])
	assert.Equal(t, "ab", first["rejectedValue"])
	assert.Equal(t, "sku", second["field"])
	assert.Equal(t, "bad", second["rejectedValue"])
}

func TestCreateProductMalformedJSON(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodPost, "/api/v1/products", `{"name": "Widget",`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "malformed-request")
}

func TestCreateProductWrongFieldType(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodPost, "/api/v1/products",
		`{"name":"Widget","price":"19.99","quantity":"five","sku":"ABC-123456"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "type-mismatch")
	assert.Equal(t, "quantity", body["parameter"])
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	r := setupRouter(&fakeService{
		createProduct: func(req model.ProductRequest) (*model.ProductResponse, error) {
			return nil, model.NewDuplicateSKUError(req.SKU)
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/v1/products", validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "duplicate-key")
}

func TestUpdateProduct(t *testing.T) {
	r := setupRouter(&fakeService{
		updateProduct: func(id int64, req model.ProductRequest) (*model.ProductResponse, error) {
			res := sampleResponse(id)
			res.Name = req.Name
			return res, nil
		},
	})

	rec := doRequest(r, http.MethodPut, "/api/v1/products/3", validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, "Widget", body["name"])
}

func TestDeleteProduct(t *testing.T) {
	r := setupRouter(&fakeService{
		deleteProduct: func(id int64) error { return nil },
	})

	rec := doRequest(r, http.MethodDelete, "/api/v1/products/3", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestDeleteProductNotFound(t *testing.T) {
	r := setupRouter(&fakeService{
		deleteProduct: func(id int64) error { return model.NewProductNotFoundError(id) },
	})

	rec := doRequest(r, http.MethodDelete, "/api/v1/products/3", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetStock(t *testing.T) {
	r := setupRouter(&fakeService{
		setStock: func(id int64, quantity int) (*model.ProductResponse, error) {
			res := sampleResponse(id)
			res.Quantity = quantity
			return res, nil
		},
	})

	rec := doRequest(r, http.MethodPut, "/api/v1/products/1/stock", `{"quantity":50}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, float64(50), body["quantity"])
}

func TestSetStockMissingQuantity(t *testing.T) {
	r := setupRouter(&fakeService{})

	rec := doRequest(r, http.MethodPut, "/api/v1/products/1/stock", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "validation-failed")
}

func TestReserveStockInsufficient(t *testing.T) {
	r := setupRouter(&fakeService{
		reserveStock: func(id int64, amount int) (*model.ProductResponse, error) {
			return nil, &model.InsufficientStockError{ProductID: id, Requested: amount, Available: 5}
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/v1/products/1/reserve-stock", `{"quantity":10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "insufficient-stock")
	assert.Equal(t, float64(1), body["productId"])
	assert.Equal(t, float64(10), body["requestedQuantity"])
	assert.Equal(t, float64(5), body["availableQuantity"])
}

func TestAddStock(t *testing.T) {
	var gotAmount int
	r := setupRouter(&fakeService{
		addStock: func(id int64, amount int) (*model.ProductResponse, error) {
			gotAmount = amount
			res := sampleResponse(id)
			res.Quantity = 5 + amount
			return res, nil
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/v1/products/1/add-stock", `{"quantity":3}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, gotAmount)
}

func TestConstraintViolationIsDataIntegrity(t *testing.T) {
	r := setupRouter(&fakeService{
		createProduct: func(req model.ProductRequest) (*model.ProductResponse, error) {
			return nil, &pgconn.PgError{Code: "23514", Message: "quantity check violated"}
		},
	})

	rec := doRequest(r, http.MethodPost, "/api/v1/products", validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "data-integrity")
	// The driver message stays out of the response.
	assert.NotContains(t, rec.Body.String(), "quantity check violated")
}

func TestUnhandledErrorIsInternal(t *testing.T) {
	r := setupRouter(&fakeService{
		getProduct: func(id int64) (*model.ProductResponse, error) {
			return nil, assert.AnError
		},
	})

	rec := doRequest(r, http.MethodGet, "/api/v1/products/1", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body["type"], "internal-error")
	// The cause stays server side.
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
