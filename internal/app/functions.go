package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/pkg/bootstrap"
	"github.com/abgdnv/inventory/pkg/telemetry"
)

// Functions holds the handlers served by serverless deployments.
// A single instance lives for the whole process so the database handle is reused across invocations.
type Functions struct {
	Products http.Handler
	GraphQL  http.Handler
	Router   http.Handler
	Logger   *slog.Logger
}

var (
	functionsOnce sync.Once
	functions     *Functions
	functionsErr  error
)

// LoadFunctions initialises the process-scoped Functions on first use.
// Initialisation errors are sticky: a misconfigured function stays broken until the process is replaced.
func LoadFunctions() (*Functions, error) {
	functionsOnce.Do(func() {
		functions, functionsErr = newFunctions(context.Background())
	})
	return functions, functionsErr
}

func newFunctions(ctx context.Context) (*Functions, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := bootstrap.NewLogger(cfg.Log)
	if _, err := telemetry.Setup(ctx, config.ServiceName, cfg.Telemetry); err != nil {
		logger.Warn("Tracing disabled", "error", err)
	}
	deps, err := SetupDependencies(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up dependencies: %w", err)
	}
	return NewFunctions(deps), nil
}

// NewFunctions builds the serverless handlers from already wired dependencies.
func NewFunctions(deps *Dependencies) *Functions {
	return &Functions{
		Products: deps.ProductsEndpoint(),
		GraphQL:  deps.GraphQLEndpoint(),
		Router:   SetupHttpHandler(deps),
		Logger:   deps.Logger,
	}
}
