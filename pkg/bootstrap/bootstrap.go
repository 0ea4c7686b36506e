package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewLogger creates a new slog.Logger writing to stdout with the configured level and format.
// Records are enriched with request and trace identifiers taken from the context.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	return newLogger(os.Stdout, cfg)
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	logLevel := toLevel(cfg.Level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	var logHandler slog.Handler
	if cfg.Format == "text" {
		logHandler = slog.NewTextHandler(w, loggerOpts)
	} else {
		logHandler = slog.NewJSONHandler(w, loggerOpts)
	}
	return slog.New(logger.NewContextHandler(logHandler))
}

// NewMongoClient connects to MongoDB with the provided options and pings the primary,
// failing early if the server cannot be reached within connectTimeout.
func NewMongoClient(ctx context.Context, opts *options.ClientOptions, connectTimeout time.Duration) (*mongo.Client, error) {
	// Create context with timeout for database connection
	connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create MongoDB client: %w", err)
	}
	// Ping the database to ensure the connection is established (fail early if not)
	if err := client.Ping(connCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
