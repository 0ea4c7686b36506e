// Package store provides an interface for product storage operations.
package store

import (
	"context"
)

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// FindAll returns all products in natural store order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its hex-encoded identifier.
	// Returns ErrInvalidID for a malformed id and ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*Product, error)

	// Create persists a new product and returns it with the store-assigned ID.
	Create(ctx context.Context, product Product) (*Product, error)

	// Update overwrites the supplied fields and returns the updated product.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, patch ProductPatch) (*Product, error)

	// DeleteByID removes a product and returns the removed document.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) (*Product, error)

	// FindStockBelow returns the products whose amountInStock is strictly below threshold.
	FindStockBelow(ctx context.Context, threshold int) ([]Product, error)

	// FindManufacturersStockBelow returns the manufacturer record of every product
	// whose amountInStock is strictly below threshold, one entry per product.
	FindManufacturersStockBelow(ctx context.Context, threshold int) ([]Manufacturer, error)
}
