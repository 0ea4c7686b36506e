package resolver

import (
	"context"

	"github.com/abgdnv/inventory/internal/service"
	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root of the schema. Each field maps onto one service operation.
type Resolver struct {
	svc service.ProductService
}

func NewResolver(svc service.ProductService) *Resolver {
	return &Resolver{svc: svc}
}

type idArgs struct {
	ID graphql.ID
}

type manufacturerInput struct {
	Name    *string
	Contact *string
}

type productInput struct {
	Name          *string
	Sku           *string
	Description   *string
	Price         *float64
	Category      *string
	Manufacturer  *manufacturerInput
	AmountInStock *int32
}

func (in productInput) toService() service.ProductInput {
	out := service.ProductInput{
		Name:        in.Name,
		SKU:         in.Sku,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
	if in.Manufacturer != nil {
		out.Manufacturer = &service.ManufacturerInput{
			Name:    in.Manufacturer.Name,
			Contact: in.Manufacturer.Contact,
		}
	}
	if in.AmountInStock != nil {
		v := int(*in.AmountInStock)
		out.AmountInStock = &v
	}
	return out
}

func (r *Resolver) Products(ctx context.Context) (*[]*productResolver, error) {
	products, err := r.svc.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return productList(products), nil
}

func (r *Resolver) Product(ctx context.Context, args idArgs) (*productResolver, error) {
	product, err := r.svc.FindByID(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return productOrNil(product), nil
}

func (r *Resolver) AddProduct(ctx context.Context, args struct{ Input productInput }) (*productResolver, error) {
	product, err := r.svc.Create(ctx, args.Input.toService())
	if err != nil {
		return nil, err
	}
	return productOrNil(product), nil
}

func (r *Resolver) UpdateProduct(ctx context.Context, args struct {
	ID    graphql.ID
	Input productInput
}) (*productResolver, error) {
	product, err := r.svc.Update(ctx, string(args.ID), args.Input.toService())
	if err != nil {
		return nil, err
	}
	return productOrNil(product), nil
}

func (r *Resolver) DeleteProduct(ctx context.Context, args idArgs) (*productResolver, error) {
	product, err := r.svc.DeleteByID(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return productOrNil(product), nil
}

func (r *Resolver) TotalStockValue(ctx context.Context) (*float64, error) {
	total, err := r.svc.TotalStockValue(ctx)
	if err != nil {
		return nil, err
	}
	return &total, nil
}

func (r *Resolver) TotalStockValueByManufacturer(ctx context.Context) (*[]*manufacturerStockValueResolver, error) {
	values, err := r.svc.TotalStockValueByManufacturer(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*manufacturerStockValueResolver, len(values))
	for i := range values {
		result[i] = &manufacturerStockValueResolver{v: values[i]}
	}
	return &result, nil
}

func (r *Resolver) LowStockProducts(ctx context.Context) (*[]*productResolver, error) {
	products, err := r.svc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	return productList(products), nil
}

func (r *Resolver) CriticalStockProducts(ctx context.Context) (*[]*criticalStockResolver, error) {
	items, err := r.svc.CriticalStock(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*criticalStockResolver, len(items))
	for i := range items {
		result[i] = &criticalStockResolver{c: items[i]}
	}
	return &result, nil
}

func (r *Resolver) Manufacturers(ctx context.Context) (*[]string, error) {
	names, err := r.svc.Manufacturers(ctx)
	if err != nil {
		return nil, err
	}
	return &names, nil
}

func productList(products []service.ProductDto) *[]*productResolver {
	result := make([]*productResolver, len(products))
	for i := range products {
		result[i] = &productResolver{p: products[i]}
	}
	return &result
}

func productOrNil(p *service.ProductDto) *productResolver {
	if p == nil {
		return nil
	}
	return &productResolver{p: *p}
}
