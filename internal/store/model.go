package store

import "go.mongodb.org/mongo-driver/bson/primitive"

const collectionName = "products"

type Manufacturer struct {
	Name    string `bson:"name"`
	Contact string `bson:"contact"`
}

// Product is a document of the products collection.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	SKU           string             `bson:"sku"`
	Description   string             `bson:"description"`
	Price         float64            `bson:"price"`
	Category      string             `bson:"category"`
	Manufacturer  Manufacturer       `bson:"manufacturer"`
	AmountInStock int                `bson:"amountInStock"`
}

// ProductPatch holds the top-level fields to overwrite. Nil fields are left untouched;
// a non-nil Manufacturer replaces the whole nested record.
type ProductPatch struct {
	Name          *string
	SKU           *string
	Description   *string
	Price         *float64
	Category      *string
	Manufacturer  *Manufacturer
	AmountInStock *int
}

// IsEmpty reports whether the patch sets no field.
func (p ProductPatch) IsEmpty() bool {
	return len(p.setDocument()) == 0
}

// setDocument returns the $set payload for the patch, empty when nothing is set.
func (p ProductPatch) setDocument() map[string]any {
	set := make(map[string]any)
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.SKU != nil {
		set["sku"] = *p.SKU
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Price != nil {
		set["price"] = *p.Price
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}
	if p.Manufacturer != nil {
		set["manufacturer"] = *p.Manufacturer
	}
	if p.AmountInStock != nil {
		set["amountInStock"] = *p.AmountInStock
	}
	return set
}
