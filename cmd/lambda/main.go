// Package main runs the inventory endpoints behind AWS API Gateway (HTTP API).
package main

import (
	"log"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/serverless"
	"github.com/aws/aws-lambda-go/lambda"
)

func main() {
	fns, err := app.LoadFunctions()
	if err != nil {
		log.Fatalf("failed to initialise function: %v", err)
	}
	lambda.Start(serverless.NewAPIGatewayV2Handler(fns.Router))
}
