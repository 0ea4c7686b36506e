// Package app wires the inventory service together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/database"
	"github.com/abgdnv/inventory/internal/resolver"
	"github.com/abgdnv/inventory/internal/service"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/transport/endpoint"
	"github.com/abgdnv/inventory/internal/transport/gql"
	grpcImpl "github.com/abgdnv/inventory/internal/transport/grpc"
	"github.com/abgdnv/inventory/internal/transport/rest"
	pkgconfig "github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/messaging"
	"github.com/abgdnv/inventory/pkg/nats"
	"github.com/abgdnv/inventory/pkg/server"
	"github.com/abgdnv/inventory/pkg/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/graph-gophers/graphql-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/grpc"
)

const healthInterval = 5 * time.Second

type Dependencies struct {
	Config         *config.Config
	Logger         *slog.Logger
	DB             *database.Manager
	ProductService service.ProductService
	Schema         *graphql.Schema

	closers []func(ctx context.Context) error
}

// Option customises the dependencies before they are wired.
type Option func(*setupOptions)

type setupOptions struct {
	dbOpts    []database.Option
	publisher messaging.Publisher
}

// WithDatabaseOptions forwards options to the connection manager.
func WithDatabaseOptions(opts ...database.Option) Option {
	return func(o *setupOptions) {
		o.dbOpts = append(o.dbOpts, opts...)
	}
}

// WithPublisher uses the given publisher instead of the configured broker.
func WithPublisher(p messaging.Publisher) Option {
	return func(o *setupOptions) {
		o.publisher = p
	}
}

// SetupDependencies builds the object graph. Nothing connects to MongoDB until the first request needs it.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*Dependencies, error) {
	var o setupOptions
	for _, opt := range opts {
		opt(&o)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
		DB:     database.NewManager(cfg.Database, cfg.CircuitBreaker, logger, o.dbOpts...),
	}
	deps.closers = append(deps.closers, deps.DB.Close)

	publisher := o.publisher
	if publisher == nil {
		p, closeFn, err := setupPublisher(ctx, cfg.NATS, logger)
		if err != nil {
			return nil, err
		}
		publisher = p
		deps.closers = append(deps.closers, closeFn)
	}

	deps.ProductService = service.NewService(store.NewMongoStore(deps.DB), publisher, logger)
	schema, err := resolver.NewSchema(deps.ProductService, logger, cfg.GraphQL.MaxDepth)
	if err != nil {
		return nil, err
	}
	deps.Schema = schema
	return deps, nil
}

// setupPublisher connects to NATS JetStream when enabled, otherwise events are dropped.
func setupPublisher(ctx context.Context, cfg pkgconfig.NATSConfig, logger *slog.Logger) (messaging.Publisher, func(context.Context) error, error) {
	if !cfg.Enabled {
		return messaging.NoopPublisher{}, func(context.Context) error { return nil }, nil
	}
	nc, err := nats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := nats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := nats.EnsureStream(ctx, js, cfg.Stream, messaging.ProductsSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Publishing product events", "url", cfg.Url, "stream", cfg.Stream)
	return nats.NewNatsPublisher(js), func(context.Context) error { return nc.Drain() }, nil
}

// Close releases the broker connection and the database client.
func (d *Dependencies) Close(ctx context.Context) error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("failed to release resources: %w", errors.Join(errs...))
	}
	return nil
}

func (d *Dependencies) endpointOptions(method string) endpoint.Options {
	return endpoint.Options{Method: method, AllowedOrigins: d.Config.CORS.AllowedOrigins}
}

// ProductsEndpoint serves GET requests with the full product list.
func (d *Dependencies) ProductsEndpoint() http.Handler {
	h := rest.NewHandler(d.ProductService, d.DB, d.Logger)
	return endpoint.New(d.endpointOptions(http.MethodGet), d.DB, d.Logger, http.HandlerFunc(h.FindAll))
}

// ProductEndpoint serves GET requests for a single product; the id comes from the {id} route parameter.
func (d *Dependencies) ProductEndpoint() http.Handler {
	h := rest.NewHandler(d.ProductService, d.DB, d.Logger)
	return endpoint.New(d.endpointOptions(http.MethodGet), d.DB, d.Logger, http.HandlerFunc(h.FindByID))
}

// GraphQLEndpoint serves POST requests carrying a GraphQL query.
func (d *Dependencies) GraphQLEndpoint() http.Handler {
	h := gql.NewHandler(d.Schema, d.Config.GraphQL.MaxBodyBytes, d.Logger)
	return endpoint.New(d.endpointOptions(http.MethodPost), d.DB, d.Logger, h)
}

// SetupHttpHandler builds the router shared by the server and the Lambda binary.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return otelhttp.NewHandler(mux, "inventory")
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	health := rest.NewHandler(deps.ProductService, deps.DB, deps.Logger)
	mux.Handle("/products", deps.ProductsEndpoint())
	mux.Handle("/products/{id}", deps.ProductEndpoint())
	mux.Handle("/graphql", deps.GraphQLEndpoint())
	mux.Get("/healthz", health.HealthCheck)
	mux.Get("/readyz", health.ReadinessCheck)
	if m := deps.Config.Telemetry.Metrics; m.Enabled {
		mux.Handle(m.Path, telemetry.MetricsHandler())
	}
}

// SetupHttpServer creates the HTTP server for the inventory service.
func SetupHttpServer(deps *Dependencies) *http.Server {
	return server.NewHTTPServer(deps.Config.HTTPServer, SetupHttpHandler(deps))
}

// SetupGrpcServer creates the gRPC server exposing the health service.
func SetupGrpcServer(deps *Dependencies) (*grpc.Server, *grpcImpl.HealthReporter) {
	reporter := grpcImpl.NewHealthReporter(deps.DB.State, healthInterval, deps.Logger)
	return server.NewGRPCServer(deps.Config.GRPC.ReflectionEnabled, reporter.Register), reporter
}
