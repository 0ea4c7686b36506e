// Package resolver exposes the product service as a GraphQL schema.
package resolver

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/abgdnv/inventory/internal/service"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the product schema and binds it to the service.
// maxDepth bounds the nesting of incoming queries; zero disables the check.
func NewSchema(svc service.ProductService, log *slog.Logger, maxDepth int) (*graphql.Schema, error) {
	opts := []graphql.SchemaOpt{
		graphql.Logger(&panicLogger{logger: logger.Component(log, "graphql")}),
	}
	if maxDepth > 0 {
		opts = append(opts, graphql.MaxDepth(maxDepth))
	}
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(svc), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GraphQL schema: %w", err)
	}
	return schema, nil
}

// panicLogger reports recovered resolver panics through slog.
type panicLogger struct {
	logger *slog.Logger
}

func (l *panicLogger) LogPanic(ctx context.Context, value interface{}) {
	l.logger.ErrorContext(ctx, "GraphQL resolver panicked", "panic", fmt.Sprint(value))
}
