package repository

import (
	"context"
	"time"

	"storefront/internal/product/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const opTimeout = 5 * time.Second

// Repository is the storage contract for product listings. Lookups that
// match nothing return a nil product and a nil error.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Product, error)
	Insert(ctx context.Context, p *model.Product) error
	FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error)
	FindByIDAndDelete(ctx context.Context, id primitive.ObjectID) error
	DeleteAll(ctx context.Context) (int64, error)
}
