// Package serverless adapts the inventory handlers to function platforms.
package serverless

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/pkg/web"
)

// Loader returns the process-scoped handlers.
type Loader func() (*app.Functions, error)

// Serve dispatches the request to the handler picked from the loaded Functions.
// If the functions cannot be initialised the client gets the generic 500 body,
// except for OPTIONS which is always answered with an empty 200.
func Serve(w http.ResponseWriter, r *http.Request, load Loader, pick func(*app.Functions) http.Handler) {
	fns, err := load()
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to initialise function", "error", err)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		web.RespondInternalError(w, slog.Default())
		return
	}
	pick(fns).ServeHTTP(w, r)
}
