// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/pkg/logger"
	"github.com/abgdnv/inventory/pkg/messaging"
	"github.com/abgdnv/inventory/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	LowStockThreshold      = 10
	CriticalStockThreshold = 5
)

// ProductService defines the operations available on the product inventory.
// Every returned error is an *errors.OpError carrying the operation tag.
type ProductService interface {
	// FindAll returns all products in natural store order.
	FindAll(ctx context.Context) ([]ProductDto, error)

	// FindByID returns nil, nil when no product has the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// Create persists the supplied fields; the store assigns the ID.
	Create(ctx context.Context, input ProductInput) (*ProductDto, error)

	// Update overwrites the supplied fields. Returns nil, nil when no product has the given ID.
	Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error)

	// DeleteByID returns the deleted product, or an error wrapping ErrProductNotFound.
	DeleteByID(ctx context.Context, id string) (*ProductDto, error)

	// TotalStockValue is the sum of price * amountInStock over all products.
	TotalStockValue(ctx context.Context) (float64, error)

	// TotalStockValueByManufacturer groups the stock value by manufacturer name in first-encounter order.
	TotalStockValueByManufacturer(ctx context.Context) ([]ManufacturerStockValue, error)

	// LowStock returns the products with fewer than LowStockThreshold units.
	LowStock(ctx context.Context) ([]ProductDto, error)

	// CriticalStock returns the manufacturer contacts of products with fewer than CriticalStockThreshold units.
	CriticalStock(ctx context.Context) ([]CriticalStockDto, error)

	// Manufacturers returns each distinct manufacturer name once, in first-encounter order.
	Manufacturers(ctx context.Context) ([]string, error)
}

// Service implements ProductService on top of a ProductStore.
type Service struct {
	repository store.ProductStore
	publisher  messaging.Publisher
	logger     *slog.Logger
	now        func() time.Time
	changes    metric.Int64Counter
}

// NewService creates a new instance of ProductService. A nil publisher disables events.
func NewService(repo store.ProductStore, publisher messaging.Publisher, log *slog.Logger) *Service {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	meter := otel.Meter("inventory-service")
	changes, err := meter.Int64Counter("product_changes", metric.WithDescription("Total number of created, updated and deleted products"))
	if err != nil {
		panic(fmt.Sprintf("failed to create product_changes counter: %v", err))
	}
	return &Service{
		repository: repo,
		publisher:  publisher,
		logger:     logger.Component(log, "service"),
		now:        time.Now,
		changes:    changes,
	}
}

func (s *Service) FindAll(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpFindAll, err)
	}
	return toDtos(products), nil
}

func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, nil
		}
		return nil, s.fail(ctx, perrors.OpFindByID, err, "id", id)
	}
	return toDto(product), nil
}

func (s *Service) Create(ctx context.Context, input ProductInput) (*ProductDto, error) {
	product, err := s.repository.Create(ctx, input.toModel())
	if err != nil {
		return nil, s.fail(ctx, perrors.OpCreate, err)
	}
	s.publish(ctx, events.NewProductCreated(s.changedEvent(product)))
	return toDto(product), nil
}

func (s *Service) Update(ctx context.Context, id string, input ProductInput) (*ProductDto, error) {
	patch := input.toPatch()
	product, err := s.repository.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, perrors.ErrProductNotFound) {
			return nil, nil
		}
		return nil, s.fail(ctx, perrors.OpUpdate, err, "id", id)
	}
	if !patch.IsEmpty() {
		s.publish(ctx, events.NewProductUpdated(s.changedEvent(product)))
	}
	return toDto(product), nil
}

func (s *Service) DeleteByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.DeleteByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpDelete, err, "id", id)
	}
	s.publish(ctx, events.NewProductDeleted(s.changedEvent(product)))
	return toDto(product), nil
}

func (s *Service) TotalStockValue(ctx context.Context) (float64, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return 0, s.fail(ctx, perrors.OpTotalStockValue, err)
	}
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.AmountInStock)
	}
	return total, nil
}

func (s *Service) TotalStockValueByManufacturer(ctx context.Context) ([]ManufacturerStockValue, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpTotalStockValueByManufacturer, err)
	}
	values := make([]ManufacturerStockValue, 0)
	index := make(map[string]int)
	for _, p := range products {
		i, ok := index[p.Manufacturer.Name]
		if !ok {
			i = len(values)
			index[p.Manufacturer.Name] = i
			values = append(values, ManufacturerStockValue{Manufacturer: p.Manufacturer.Name})
		}
		values[i].TotalValue += p.Price * float64(p.AmountInStock)
	}
	return values, nil
}

func (s *Service) LowStock(ctx context.Context) ([]ProductDto, error) {
	products, err := s.repository.FindStockBelow(ctx, LowStockThreshold)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpLowStock, err)
	}
	return toDtos(products), nil
}

func (s *Service) CriticalStock(ctx context.Context) ([]CriticalStockDto, error) {
	manufacturers, err := s.repository.FindManufacturersStockBelow(ctx, CriticalStockThreshold)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpCriticalStock, err)
	}
	result := make([]CriticalStockDto, len(manufacturers))
	for i, m := range manufacturers {
		result[i] = CriticalStockDto{Manufacturer: m.Name, Contact: m.Contact}
	}
	return result, nil
}

func (s *Service) Manufacturers(ctx context.Context) ([]string, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, perrors.OpManufacturers, err)
	}
	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, p := range products {
		if _, ok := seen[p.Manufacturer.Name]; ok {
			continue
		}
		seen[p.Manufacturer.Name] = struct{}{}
		names = append(names, p.Manufacturer.Name)
	}
	return names, nil
}

// fail logs the cause and wraps it into the operation error returned to callers.
func (s *Service) fail(ctx context.Context, op perrors.Op, err error, args ...any) error {
	s.logger.ErrorContext(ctx, op.Message(), append(args, "op", string(op), "error", err)...)
	return perrors.Wrap(op, err)
}

func (s *Service) changedEvent(p *store.Product) events.ProductChangedEvent {
	return events.ProductChangedEvent{
		ProductID:     p.ID.Hex(),
		Name:          p.Name,
		SKU:           p.SKU,
		Manufacturer:  p.Manufacturer.Name,
		AmountInStock: p.AmountInStock,
		OccurredAt:    s.now().UTC(),
	}
}

func (s *Service) publish(ctx context.Context, event messaging.Event) {
	s.changes.Add(ctx, 1, metric.WithAttributes(attribute.String("subject", event.Subject())))
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish product event", "subject", event.Subject(), "error", err)
	}
}
