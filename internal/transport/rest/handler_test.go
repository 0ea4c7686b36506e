package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abgdnv/inventory/internal/database"
	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// mockService implements the read operations used by the handler; the rest are never called.
type mockService struct {
	service.ProductService
	products []service.ProductDto
	product  *service.ProductDto
	error    error
}

func (m *mockService) FindAll(_ context.Context) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockService) FindByID(_ context.Context, _ string) (*service.ProductDto, error) {
	return m.product, m.error
}

type mockReadiness struct {
	state database.State
}

func (m mockReadiness) State() database.State {
	return m.state
}

var widget = service.ProductDto{
	ID:            "64b7f0c2a1b2c3d4e5f60718",
	Name:          "Widget",
	Price:         2.5,
	Manufacturer:  service.ManufacturerDto{Name: "Acme", Contact: "acme@example.com"},
	AmountInStock: 4,
}

func TestHandler_FindAll(t *testing.T) {
	testCases := []struct {
		name           string
		svc            *mockService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - products found",
			svc:            &mockService{products: []service.ProductDto{widget}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"id":"64b7f0c2a1b2c3d4e5f60718","name":"Widget","sku":"","description":"","price":2.5,"category":"","manufacturer":{"name":"Acme","contact":"acme@example.com"},"amountInStock":4}]`,
		},
		{
			name:           "Success - no products",
			svc:            &mockService{products: []service.ProductDto{}},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name:           "Error - service error",
			svc:            &mockService{error: perrors.Wrap(perrors.OpFindAll, errors.New("db down"))},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := NewHandler(tc.svc, mockReadiness{}, nil)
			rec := httptest.NewRecorder()
			// when
			h.FindAll(rec, httptest.NewRequest(http.MethodGet, "/products", nil))
			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_FindByID(t *testing.T) {
	testCases := []struct {
		name           string
		svc            *mockService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - product found",
			svc:            &mockService{product: &widget},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Error - not found",
			svc:            &mockService{},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"Product not found"}`,
		},
		{
			name:           "Error - invalid id",
			svc:            &mockService{error: perrors.Wrap(perrors.OpFindByID, perrors.ErrInvalidID)},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"Invalid product ID"}`,
		},
		{
			name:           "Error - service error",
			svc:            &mockService{error: perrors.Wrap(perrors.OpFindByID, errors.New("db down"))},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := NewHandler(tc.svc, mockReadiness{}, nil)
			r := chi.NewRouter()
			r.Get("/products/{id}", h.FindByID)
			rec := httptest.NewRecorder()
			// when
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/"+widget.ID, nil))
			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody != "" {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			} else {
				assert.Contains(t, rec.Body.String(), `"id":"`+widget.ID+`"`)
				assert.NotContains(t, rec.Body.String(), `"_id"`)
			}
		})
	}
}

func TestHandler_HealthChecks(t *testing.T) {
	testCases := []struct {
		name           string
		state          database.State
		expectedStatus int
		expectedBody   string
	}{
		{name: "connected", state: database.Connected, expectedStatus: http.StatusOK, expectedBody: `{"database":"connected"}`},
		{name: "connecting", state: database.Connecting, expectedStatus: http.StatusServiceUnavailable, expectedBody: `{"database":"connecting"}`},
		{name: "disconnected", state: database.Disconnected, expectedStatus: http.StatusServiceUnavailable, expectedBody: `{"database":"disconnected"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&mockService{}, mockReadiness{state: tc.state}, nil)

			live := httptest.NewRecorder()
			h.HealthCheck(live, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			ready := httptest.NewRecorder()
			h.ReadinessCheck(ready, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, http.StatusOK, live.Code)
			assert.Equal(t, tc.expectedStatus, ready.Code)
			assert.JSONEq(t, tc.expectedBody, ready.Body.String())
		})
	}
}
