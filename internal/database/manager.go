// Package database manages the process-wide MongoDB connection.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/abgdnv/inventory/pkg/bootstrap"
	"github.com/abgdnv/inventory/pkg/config"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/abgdnv/inventory/pkg/resilience"
	"github.com/sony/gobreaker/v2"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/description"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/singleflight"
)

const (
	connectKey        = "connect"
	disconnectTimeout = 10 * time.Second
)

// DialFunc opens a client and verifies it can reach the server within timeout.
type DialFunc func(ctx context.Context, opts *options.ClientOptions, timeout time.Duration) (*mongo.Client, error)

// Provider hands out a live database handle, connecting if needed.
type Provider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// handle is a connected client together with its readiness state.
type handle struct {
	client *mongo.Client
	state  atomic.Int32
}

func (h *handle) State() State {
	return State(h.state.Load())
}

func (h *handle) setState(s State) {
	h.state.Store(int32(s))
}

// onTopologyChanged marks the handle connected while at least one server is known to be reachable.
func (h *handle) onTopologyChanged(e *event.TopologyDescriptionChangedEvent) {
	for _, srv := range e.NewDescription.Servers {
		if srv.Kind != description.Unknown {
			h.setState(Connected)
			return
		}
	}
	h.setState(Disconnected)
}

// Manager memoizes a single client for the whole process.
// A cached handle is reused while it is connected; otherwise the next caller triggers a new connect.
type Manager struct {
	cfg     config.DatabaseConfig
	dial    DialFunc
	breaker *gobreaker.CircuitBreaker[*handle]
	group   singleflight.Group
	logger  *slog.Logger

	mu      sync.RWMutex
	current *handle
}

type Option func(*Manager)

// WithDialFunc replaces the function used to open clients.
func WithDialFunc(dial DialFunc) Option {
	return func(m *Manager) {
		m.dial = dial
	}
}

func NewManager(cfg config.DatabaseConfig, cbCfg config.CircuitBreakerConfig, log *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		cfg:     cfg,
		dial:    bootstrap.NewMongoClient,
		breaker: resilience.NewCircuitBreaker[*handle]("mongodb-connect", cbCfg),
		logger:  logger.Component(log, "database"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Database returns the configured database on a connected client.
// Concurrent callers share a single connect attempt, which is not cancelled when a caller gives up.
func (m *Manager) Database(ctx context.Context) (*mongo.Database, error) {
	if h := m.connected(); h != nil {
		return h.client.Database(m.cfg.DatabaseName()), nil
	}

	ch := m.group.DoChan(connectKey, func() (any, error) {
		return m.connect(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*handle).client.Database(m.cfg.DatabaseName()), nil
	}
}

// State reports the readiness of the cached handle, Disconnected if there is none.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Disconnected
	}
	return m.current.State()
}

// Close disconnects the cached client, if any.
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	h := m.current
	m.current = nil
	m.mu.Unlock()
	if h == nil {
		return nil
	}
	return m.disconnect(ctx, h)
}

func (m *Manager) connected() *handle {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current != nil && m.current.State() == Connected {
		return m.current
	}
	return nil
}

func (m *Manager) connect(ctx context.Context) (*handle, error) {
	// a connect that finished just before this one started already did the work
	if h := m.connected(); h != nil {
		return h, nil
	}

	h, err := m.breaker.Execute(func() (*handle, error) {
		return m.open(ctx)
	})
	if err != nil {
		if resilience.IsOpen(err) {
			m.logger.WarnContext(ctx, "MongoDB connect rejected by circuit breaker", "breaker", m.breaker.State().String())
		} else {
			m.logger.ErrorContext(ctx, "Failed to connect to MongoDB", "error", err, "breaker", m.breaker.State().String())
		}
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	m.mu.Lock()
	stale := m.current
	m.current = h
	m.mu.Unlock()
	m.logger.InfoContext(ctx, "Connected to MongoDB", "database", m.cfg.DatabaseName())

	if stale != nil {
		go func() {
			dctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
			defer cancel()
			if err := m.disconnect(dctx, stale); err != nil {
				m.logger.Warn("Failed to disconnect stale MongoDB client", "error", err)
			}
		}()
	}
	return h, nil
}

func (m *Manager) open(ctx context.Context) (*handle, error) {
	h := &handle{}
	h.setState(Connecting)
	monitor := &event.ServerMonitor{
		TopologyDescriptionChanged: h.onTopologyChanged,
		TopologyClosed: func(*event.TopologyClosedEvent) {
			h.setState(Disconnected)
		},
	}
	opts := options.Client().
		ApplyURI(m.cfg.ConnectionString()).
		SetServerMonitor(monitor)

	client, err := m.dial(ctx, opts, m.cfg.Timeout)
	if err != nil {
		h.setState(Disconnected)
		return nil, err
	}
	h.client = client
	// the ping inside dial succeeded
	h.setState(Connected)
	return h, nil
}

func (m *Manager) disconnect(ctx context.Context, h *handle) error {
	h.setState(Disconnecting)
	defer h.setState(Disconnected)
	if err := h.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
