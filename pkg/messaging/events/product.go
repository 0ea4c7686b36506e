package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/inventory/pkg/messaging"
)

// ProductChangedEvent is published after a product has been created, updated or deleted.
type ProductChangedEvent struct {
	subject       string
	ProductID     string    `json:"product_id"`
	Name          string    `json:"name"`
	SKU           string    `json:"sku"`
	Manufacturer  string    `json:"manufacturer"`
	AmountInStock int       `json:"amount_in_stock"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewProductCreated builds a ProductChangedEvent for the created subject.
func NewProductCreated(e ProductChangedEvent) ProductChangedEvent {
	e.subject = messaging.ProductCreatedSubject
	return e
}

// NewProductUpdated builds a ProductChangedEvent for the updated subject.
func NewProductUpdated(e ProductChangedEvent) ProductChangedEvent {
	e.subject = messaging.ProductUpdatedSubject
	return e
}

// NewProductDeleted builds a ProductChangedEvent for the deleted subject.
func NewProductDeleted(e ProductChangedEvent) ProductChangedEvent {
	e.subject = messaging.ProductDeletedSubject
	return e
}

func (e ProductChangedEvent) Subject() string {
	return e.subject
}

func (e ProductChangedEvent) Payload() ([]byte, error) {
	return json.Marshal(e)
}
