package repository

import (
	"context"
	"time"

	"storefront/internal/seo/model"
)

const opTimeout = 5 * time.Second

// Repository stores the singleton SEO record. FindOne returns nil, nil when
// no record exists yet.
type Repository interface {
	FindOne(ctx context.Context) (*model.SEO, error)
	Upsert(ctx context.Context, patch model.SEOPatch) error
}
