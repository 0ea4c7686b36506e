// Package errors provides custom error types for product-related operations.
package errors

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidID       = errors.New("invalid product id")
)

// Op identifies a repository operation. Its value doubles as the error code exposed to API clients.
type Op string

const (
	OpFindAll                       Op = "FETCH_PRODUCTS"
	OpFindByID                      Op = "FETCH_PRODUCT"
	OpCreate                        Op = "CREATE_PRODUCT"
	OpUpdate                        Op = "UPDATE_PRODUCT"
	OpDelete                        Op = "DELETE_PRODUCT"
	OpTotalStockValue               Op = "TOTAL_STOCK_VALUE"
	OpTotalStockValueByManufacturer Op = "TOTAL_STOCK_VALUE_BY_MANUFACTURER"
	OpLowStock                      Op = "LOW_STOCK_PRODUCTS"
	OpCriticalStock                 Op = "CRITICAL_STOCK_PRODUCTS"
	OpManufacturers                 Op = "MANUFACTURERS"
)

var messages = map[Op]string{
	OpFindAll:                       "Error fetching products",
	OpFindByID:                      "Error fetching product",
	OpCreate:                        "Error creating product",
	OpUpdate:                        "Error updating product",
	OpDelete:                        "Error deleting product",
	OpTotalStockValue:               "Error calculating total stock value",
	OpTotalStockValueByManufacturer: "Error calculating total stock value by manufacturer",
	OpLowStock:                      "Error fetching low stock products",
	OpCriticalStock:                 "Error fetching critical stock products",
	OpManufacturers:                 "Error fetching manufacturers",
}

// Message returns the client-facing message of the operation.
func (o Op) Message() string {
	if m, ok := messages[o]; ok {
		return m
	}
	return "Error processing request"
}

// OpError is returned by every failed repository operation.
// Error() yields only the fixed operation message; the cause stays reachable through Unwrap.
type OpError struct {
	Op  Op
	Err error
}

// Wrap returns nil when err is nil, otherwise an *OpError for op.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &OpError{Op: op, Err: err}
}

func (e *OpError) Error() string {
	return e.Op.Message()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Extensions is picked up by the GraphQL executor and rendered next to the message.
func (e *OpError) Extensions() map[string]any {
	return map[string]any{"code": string(e.Op)}
}
