// Package endpoint wraps a handler with the negotiation every public entry point performs:
// CORS, method filtering, and making sure the store is reachable before the handler runs.
package endpoint

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/abgdnv/inventory/pkg/web"
	"github.com/go-chi/cors"
	"go.mongodb.org/mongo-driver/mongo"
)

// Connector ensures a live database handle.
type Connector interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

type Options struct {
	// Method is the only method served besides OPTIONS.
	Method         string
	AllowedOrigins []string
}

type endpoint struct {
	method string
	conn   Connector
	next   http.Handler
	logger *slog.Logger
}

// New returns next wrapped for the given method. OPTIONS always answers 200 without touching the store.
func New(opts Options, conn Connector, log *slog.Logger, next http.Handler) http.Handler {
	l := logger.Component(log, "endpoint").With("method", opts.Method)
	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{opts.Method, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(&endpoint{
		method: opts.Method,
		conn:   conn,
		next:   web.Recoverer(l)(next),
		logger: l,
	})
}

func (e *endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != e.method {
		web.RespondMethodNotAllowed(w, e.logger)
		return
	}
	if _, err := e.conn.Database(r.Context()); err != nil {
		e.logger.ErrorContext(r.Context(), "Store unavailable", "path", r.URL.Path, "error", err)
		web.RespondInternalError(w, e.logger)
		return
	}
	e.next.ServeHTTP(w, r)
}
