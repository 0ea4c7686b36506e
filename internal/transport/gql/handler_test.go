package gql

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abgdnv/inventory/internal/resolver"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	service.ProductService
	manufacturers []string
}

func (m *mockService) Manufacturers(_ context.Context) ([]string, error) {
	return m.manufacturers, nil
}

func newTestHandler(t *testing.T, maxBody int64) *Handler {
	t.Helper()
	schema, err := resolver.NewSchema(&mockService{manufacturers: []string{"X", "Y"}}, nil, 10)
	require.NoError(t, err)
	return NewHandler(schema, maxBody, nil)
}

func TestHandler_ServeHTTP(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		maxBody        int64
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Success - query",
			body:           `{"query":"{ manufacturers }"}`,
			maxBody:        1 << 20,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"data":{"manufacturers":["X","Y"]}}`,
		},
		{
			name:           "Success - named operation with variables",
			body:           `{"query":"query A { manufacturers } query B { totalStockValue }","operationName":"A","variables":{}}`,
			maxBody:        1 << 20,
			expectedStatus: http.StatusOK,
			expectedBody:   `{"data":{"manufacturers":["X","Y"]}}`,
		},
		{
			name:           "Error - unparseable body",
			body:           `{"query": `,
			maxBody:        1 << 20,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
		{
			name:           "Error - body too large",
			body:           `{"query":"{ manufacturers }"}`,
			maxBody:        8,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newTestHandler(t, tc.maxBody)
			req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			// when
			h.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func TestHandler_QueryErrorIsOK(t *testing.T) {
	h := newTestHandler(t, 1<<20)
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(`{"query":"{ unknownField }"}`))
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"errors"`)
}
