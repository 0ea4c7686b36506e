package resolver

import (
	"github.com/abgdnv/inventory/internal/service"
	"github.com/graph-gophers/graphql-go"
)

type productResolver struct {
	p service.ProductDto
}

func (r *productResolver) ID() graphql.ID { return graphql.ID(r.p.ID) }
func (r *productResolver) Name() string { return r.p.Name }
func (r *productResolver) Sku() string { return r.p.SKU }
func (r *productResolver) Description() string { return r.p.Description }
func (r *productResolver) Price() float64 { return r.p.Price }
func (r *productResolver) Category() string { return r.p.Category }
func (r *productResolver) AmountInStock() int32 { return int32(r.p.AmountInStock) }
func (r *productResolver) Manufacturer() *manufacturerResolver {
	return &manufacturerResolver{m: r.p.Manufacturer}
}

type manufacturerResolver struct {
	m service.ManufacturerDto
}

func (r *manufacturerResolver) Name() string { return r.m.Name }
func (r *manufacturerResolver) Contact() string { return r.m.Contact }

type manufacturerStockValueResolver struct {
	v service.ManufacturerStockValue
}

func (r *manufacturerStockValueResolver) Manufacturer() string { return r.v.Manufacturer }
func (r *manufacturerStockValueResolver) TotalValue() float64 { return r.v.TotalValue }

type criticalStockResolver struct {
	c service.CriticalStockDto
}

func (r *criticalStockResolver) Manufacturer() string { return r.c.Manufacturer }
func (r *criticalStockResolver) Contact() string { return r.c.Contact }
