package serverless

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
)

// APIGatewayV2Handler is the signature expected by lambda.Start for HTTP API (payload v2) events.
type APIGatewayV2Handler func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// NewAPIGatewayV2Handler serves API Gateway HTTP API events with h.
func NewAPIGatewayV2Handler(h http.Handler) APIGatewayV2Handler {
	return httpadapter.NewV2(h).ProxyWithContext
}
