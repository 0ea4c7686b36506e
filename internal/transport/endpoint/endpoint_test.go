package endpoint

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

type mockConnector struct {
	error error
	calls int
}

func (m *mockConnector) Database(_ context.Context) (*mongo.Database, error) {
	m.calls++
	return nil, m.error
}

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`[]`))
}

func panicHandler(http.ResponseWriter, *http.Request) {
	panic("boom")
}

func TestEndpoint(t *testing.T) {
	ErrConnect := errors.New("connection refused")
	testCases := []struct {
		name           string
		method         string
		headers        map[string]string
		connector      *mockConnector
		handler        http.HandlerFunc
		expectedStatus int
		expectedBody   string
		expectedCalls  int
	}{
		{
			name:           "OPTIONS with store down",
			method:         http.MethodOptions,
			connector:      &mockConnector{error: ErrConnect},
			handler:        okHandler,
			expectedStatus: http.StatusOK,
			expectedBody:   "",
			expectedCalls:  0,
		},
		{
			name:   "preflight with store down",
			method: http.MethodOptions,
			headers: map[string]string{
				"Origin":                        "https://app.example.com",
				"Access-Control-Request-Method": http.MethodGet,
			},
			connector:      &mockConnector{error: ErrConnect},
			handler:        okHandler,
			expectedStatus: http.StatusOK,
			expectedBody:   "",
			expectedCalls:  0,
		},
		{
			name:           "method not allowed",
			method:         http.MethodDelete,
			connector:      &mockConnector{},
			handler:        okHandler,
			expectedStatus: http.StatusMethodNotAllowed,
			expectedBody:   `{"error":"Method Not Allowed"}`,
			expectedCalls:  0,
		},
		{
			name:           "connection failure",
			method:         http.MethodGet,
			connector:      &mockConnector{error: ErrConnect},
			handler:        okHandler,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
			expectedCalls:  1,
		},
		{
			name:           "handler panic",
			method:         http.MethodGet,
			connector:      &mockConnector{},
			handler:        panicHandler,
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error"}`,
			expectedCalls:  1,
		},
		{
			name:           "success",
			method:         http.MethodGet,
			connector:      &mockConnector{},
			handler:        okHandler,
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
			expectedCalls:  1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := New(Options{Method: http.MethodGet, AllowedOrigins: []string{"https://app.example.com"}}, tc.connector, nil, tc.handler)
			req := httptest.NewRequest(tc.method, "/products", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			// when
			h.ServeHTTP(rec, req)
			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody == "" {
				assert.Empty(t, rec.Body.String())
			} else {
				assert.JSONEq(t, tc.expectedBody, rec.Body.String())
			}
			assert.Equal(t, tc.expectedCalls, tc.connector.calls)
		})
	}
}

func TestEndpoint_CORSHeaders(t *testing.T) {
	testCases := []struct {
		name           string
		origins        []string
		origin         string
		expectedOrigin string
	}{
		{name: "allowed origin", origins: []string{"https://app.example.com"}, origin: "https://app.example.com", expectedOrigin: "https://app.example.com"},
		{name: "foreign origin", origins: []string{"https://app.example.com"}, origin: "https://evil.example.com", expectedOrigin: ""},
		{name: "wildcard", origins: []string{"*"}, origin: "https://any.example.com", expectedOrigin: "*"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := New(Options{Method: http.MethodPost, AllowedOrigins: tc.origins}, &mockConnector{}, nil, http.HandlerFunc(okHandler))
			req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
			req.Header.Set("Origin", tc.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type")
			rec := httptest.NewRecorder()
			// when
			h.ServeHTTP(rec, req)
			// then
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.expectedOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tc.expectedOrigin != "" {
				assert.Equal(t, http.MethodPost, rec.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
			}
		})
	}
}
