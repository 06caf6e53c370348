package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/product/model"
	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepository struct {
	Collection *mongo.Collection
}

var _ Repository = (*MongoRepository)(nil)

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{Collection: db.Collection(model.CollectionName)}
}

func (r *MongoRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	cursor, err := r.Collection.Find(ctx, bson.D{})
	if err != nil {
		logger.Sugar.Errorf("Failed to find products: %v", err)
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []model.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		logger.Sugar.Errorf("Failed to decode products: %v", err)
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *MongoRepository) Insert(ctx context.Context, p *model.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.Collection.InsertOne(ctx, p); err != nil {
		logger.Sugar.Errorf("Failed to insert product %s: %v", p.ID.Hex(), err)
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *MongoRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	filter := bson.D{{Key: "_id", Value: id}}

	var res *mongo.SingleResult
	if patch.IsEmpty() {
		// An empty $set is rejected by the server; nothing to write.
		res = r.Collection.FindOne(ctx, filter)
	} else {
		set := bson.D{}
		for _, f := range patch.Fields() {
			set = append(set, bson.E{Key: f.Key, Value: f.Value})
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		res = r.Collection.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts)
	}

	var p model.Product
	if err := res.Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Sugar.Errorf("Failed to update product %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &p, nil
}

func (r *MongoRepository) FindByIDAndDelete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.Collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}}); err != nil {
		logger.Sugar.Errorf("Failed to delete product %s: %v", id.Hex(), err)
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *MongoRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.Collection.DeleteMany(ctx, bson.D{})
	if err != nil {
		logger.Sugar.Errorf("Failed to clear products: %v", err)
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return res.DeletedCount, nil
}
