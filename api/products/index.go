// Package handler is the product list function for platforms that route /api/<name> to a Go Handler.
package handler

import (
	"net/http"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/serverless"
)

func Handler(w http.ResponseWriter, r *http.Request) {
	serverless.Serve(w, r, app.LoadFunctions, func(f *app.Functions) http.Handler { return f.Products })
}
