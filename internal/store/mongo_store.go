package store

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/inventory/internal/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseProvider returns a live database handle.
type DatabaseProvider interface {
	Database(ctx context.Context) (*mongo.Database, error)
}

// MongoStore implements ProductStore on a MongoDB collection.
type MongoStore struct {
	db DatabaseProvider
}

// NewMongoStore creates a ProductStore backed by the products collection of the provided database.
func NewMongoStore(db DatabaseProvider) *MongoStore {
	return &MongoStore{db: db}
}

func (s *MongoStore) collection(ctx context.Context) (*mongo.Collection, error) {
	db, err := s.db.Database(ctx)
	if err != nil {
		return nil, err
	}
	return db.Collection(collectionName), nil
}

// FindAll retrieves all products.
func (s *MongoStore) FindAll(ctx context.Context) ([]Product, error) {
	products, err := s.find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return products, nil
}

// FindByID retrieves a product by its unique identifier.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &product, nil
}

// Create inserts a new product. Any ID set on the argument is ignored.
func (s *MongoStore) Create(ctx context.Context, product Product) (*Product, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	product.ID = primitive.NewObjectID()
	if _, err := coll.InsertOne(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// Update applies the patch and returns the document after the update.
// An empty patch returns the current document.
func (s *MongoStore) Update(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	set := patch.setDocument()
	if len(set) == 0 {
		return s.FindByID(ctx, id)
	}
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product Product
	err = coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, bson.D{{Key: "$set", Value: set}}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return &product, nil
}

// DeleteByID removes a product by its unique identifier.
func (s *MongoStore) DeleteByID(ctx context.Context, id string) (*Product, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product by ID: %w", err)
	}
	return &product, nil
}

// FindStockBelow filters on amountInStock in the store.
func (s *MongoStore) FindStockBelow(ctx context.Context, threshold int) ([]Product, error) {
	products, err := s.find(ctx, stockBelow(threshold))
	if err != nil {
		return nil, fmt.Errorf("failed to find products with stock below %d: %w", threshold, err)
	}
	return products, nil
}

// FindManufacturersStockBelow filters on amountInStock and projects the manufacturer record only.
func (s *MongoStore) FindManufacturersStockBelow(ctx context.Context, threshold int) ([]Manufacturer, error) {
	opts := options.Find().SetProjection(bson.D{{Key: "manufacturer", Value: 1}, {Key: "_id", Value: 0}})
	products, err := s.find(ctx, stockBelow(threshold), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find manufacturers with stock below %d: %w", threshold, err)
	}
	manufacturers := make([]Manufacturer, len(products))
	for i, p := range products {
		manufacturers[i] = p.Manufacturer
	}
	return manufacturers, nil
}

func (s *MongoStore) find(ctx context.Context, filter bson.D, opts ...*options.FindOptions) ([]Product, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0)
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return products, nil
}

func stockBelow(threshold int) bson.D {
	return bson.D{{Key: "amountInStock", Value: bson.D{{Key: "$lt", Value: threshold}}}}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", perrors.ErrInvalidID, id)
	}
	return oid, nil
}
