package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/seo/model"
	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
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

func (r *MongoRepository) FindOne(ctx context.Context) (*model.SEO, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var s model.SEO
	if err := r.Collection.FindOne(ctx, bson.D{}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Sugar.Errorf("Failed to find SEO record: %v", err)
		return nil, fmt.Errorf("find seo: %w", err)
	}
	return &s, nil
}

// Upsert writes the patch into whichever record matches the empty filter,
// creating it when the collection is empty.
func (r *MongoRepository) Upsert(ctx context.Context, patch model.SEOPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	set := bson.D{}
	for _, f := range patch.Fields() {
		set = append(set, bson.E{Key: f.Key, Value: f.Value})
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.Collection.UpdateOne(ctx, bson.D{}, bson.D{{Key: "$set", Value: set}}, opts); err != nil {
		logger.Sugar.Errorf("Failed to upsert SEO record: %v", err)
		return fmt.Errorf("upsert seo: %w", err)
	}
	return nil
}
