package service

import (
	"context"

	"storefront/internal/events"
	"storefront/internal/product/model"
	"storefront/internal/product/repository"
	"storefront/pkg/logger"
)

type ProductService struct {
	Repo      repository.Repository
	Publisher events.Publisher
}

func NewProductService(repo repository.Repository, publisher events.Publisher) *ProductService {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	return &ProductService{Repo: repo, Publisher: publisher}
}

func (s *ProductService) GetProducts(ctx context.Context) ([]model.Product, error) {
	return s.Repo.FindAll(ctx)
}

func (s *ProductService) CreateProduct(ctx context.Context, patch model.ProductPatch) (*model.Product, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	product := model.NewProduct(patch)
	if err := s.Repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, events.TopicProductCreated, product)
	return product, nil
}

// UpdateProduct applies the patch and returns the stored product, or nil when
// no product has that id.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	oid, err := model.ParseID(id)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	product, err := s.Repo.FindByIDAndUpdate(ctx, oid, patch)
	if err != nil {
		return nil, err
	}
	if product != nil {
		s.publish(ctx, events.TopicProductUpdated, product)
	}
	return product, nil
}

// DeleteProduct removes the product if it exists. A missing id is not an error.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	oid, err := model.ParseID(id)
	if err != nil {
		return err
	}
	if err := s.Repo.FindByIDAndDelete(ctx, oid); err != nil {
		return err
	}
	s.publish(ctx, events.TopicProductDeleted, events.ProductDeleted{ID: oid.Hex()})
	return nil
}

// Publish failures never fail the write that triggered them.
func (s *ProductService) publish(ctx context.Context, topic string, event any) {
	if err := s.Publisher.Publish(ctx, topic, event); err != nil {
		logger.Sugar.Warnf("Failed to publish %s: %v", topic, err)
	}
}
