package service

import "github.com/abgdnv/inventory/internal/store"

type ManufacturerDto struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Description   string          `json:"description"`
	Price         float64         `json:"price"`
	Category      string          `json:"category"`
	Manufacturer  ManufacturerDto `json:"manufacturer"`
	AmountInStock int             `json:"amountInStock"`
}

type ManufacturerInput struct {
	Name    *string
	Contact *string
}

// ProductInput carries the fields supplied by a client. Absent fields are nil.
type ProductInput struct {
	Name          *string
	SKU           *string
	Description   *string
	Price         *float64
	Category      *string
	Manufacturer  *ManufacturerInput
	AmountInStock *int
}

type ManufacturerStockValue struct {
	Manufacturer string  `json:"manufacturer"`
	TotalValue   float64 `json:"totalValue"`
}

// CriticalStockDto is the compact view of a product that is almost out of stock.
type CriticalStockDto struct {
	Manufacturer string `json:"manufacturer"`
	Contact      string `json:"contact"`
}

func toDto(p *store.Product) *ProductDto {
	return &ProductDto{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		SKU:         p.SKU,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Manufacturer: ManufacturerDto{
			Name:    p.Manufacturer.Name,
			Contact: p.Manufacturer.Contact,
		},
		AmountInStock: p.AmountInStock,
	}
}

func toDtos(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i := range products {
		dtos[i] = *toDto(&products[i])
	}
	return dtos
}

func (m *ManufacturerInput) toModel() *store.Manufacturer {
	if m == nil {
		return nil
	}
	return &store.Manufacturer{
		Name:    deref(m.Name),
		Contact: deref(m.Contact),
	}
}

// toModel builds a new product from the input; absent fields take their zero value.
func (in ProductInput) toModel() store.Product {
	p := store.Product{
		Name:          deref(in.Name),
		SKU:           deref(in.SKU),
		Description:   deref(in.Description),
		Price:         deref(in.Price),
		Category:      deref(in.Category),
		AmountInStock: deref(in.AmountInStock),
	}
	if m := in.Manufacturer.toModel(); m != nil {
		p.Manufacturer = *m
	}
	return p
}

func (in ProductInput) toPatch() store.ProductPatch {
	return store.ProductPatch{
		Name:          in.Name,
		SKU:           in.SKU,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		Manufacturer:  in.Manufacturer.toModel(),
		AmountInStock: in.AmountInStock,
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
