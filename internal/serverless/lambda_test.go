package serverless

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIGatewayV2Handler_RoundTrip(t *testing.T) {
	// given
	var got *http.Request
	var gotBody string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Access-Control-Request-Method")
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc"})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	req := events.APIGatewayV2HTTPRequest{
		RawPath:         "/graphql",
		RawQueryString:  "debug=1",
		Headers:         map[string]string{"content-type": "application/json", "origin": "https://app.example.com"},
		Cookies:         []string{"a=1", "b=2"},
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"query":"{ manufacturers }"}`)),
		IsBase64Encoded: true,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodPost, Path: "/graphql"},
		},
	}

	// when
	resp, err := NewAPIGatewayV2Handler(h)(context.Background(), req)

	// then
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/graphql", got.URL.Path)
	assert.Equal(t, "1", got.URL.Query().Get("debug"))
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.Equal(t, "https://app.example.com", got.Header.Get("Origin"))
	cookie, err := got.Cookie("b")
	require.NoError(t, err)
	assert.Equal(t, "2", cookie.Value)
	assert.Equal(t, `{"query":"{ manufacturers }"}`, gotBody)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "Origin,Access-Control-Request-Method", resp.Headers["Vary"])
	assert.Equal(t, []string{"session=abc"}, resp.Cookies)
	assert.NotContains(t, resp.Headers, "Set-Cookie")
	assert.Equal(t, `{"ok":true}`, resp.Body)
	assert.False(t, resp.IsBase64Encoded)
}

func TestNewAPIGatewayV2Handler_BinaryBody(t *testing.T) {
	// given
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte{0xff, 0xfe})
	})
	req := events.APIGatewayV2HTTPRequest{
		RawPath: "/products",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodGet, Path: "/products"},
		},
	}

	// when
	resp, err := NewAPIGatewayV2Handler(h)(context.Background(), req)

	// then
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, resp.IsBase64Encoded)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte{0xff, 0xfe}), resp.Body)
}

func TestNewAPIGatewayV2Handler_EmptyPreflight(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	req := events.APIGatewayV2HTTPRequest{
		RawPath: "/products",
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodOptions, Path: "/products"},
		},
	}

	resp, err := NewAPIGatewayV2Handler(h)(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
}

func TestNewAPIGatewayV2Handler_InvalidBase64(t *testing.T) {
	req := events.APIGatewayV2HTTPRequest{
		RawPath:         "/graphql",
		Body:            "%%%",
		IsBase64Encoded: true,
		RequestContext: events.APIGatewayV2HTTPRequestContext{
			HTTP: events.APIGatewayV2HTTPRequestContextHTTPDescription{Method: http.MethodPost, Path: "/graphql"},
		},
	}

	_, err := NewAPIGatewayV2Handler(http.NotFoundHandler())(context.Background(), req)

	assert.Error(t, err)
}
