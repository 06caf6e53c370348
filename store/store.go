// Package store opens the product and SEO repositories for the configured
// backend.
package store

import (
	"context"
	"fmt"

	"storefront/config"
	"storefront/config/database"
	productRepository "storefront/internal/product/repository"
	seoRepository "storefront/internal/seo/repository"
)

type Store struct {
	Products productRepository.Repository
	SEO      seoRepository.Repository
	close    func() error
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open connects to the backend named by cfg.Driver.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		m, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Products: productRepository.NewMongoRepository(m.Database),
			SEO:      seoRepository.NewMongoRepository(m.Database),
			close:    m.Close,
		}, nil

	case config.DriverPostgres:
		db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &Store{
			Products: productRepository.NewPostgresRepository(db),
			SEO:      seoRepository.NewPostgresRepository(db),
			close:    db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
