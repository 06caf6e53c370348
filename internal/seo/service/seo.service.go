package service

import (
	"context"

	"storefront/internal/events"
	"storefront/internal/seo/model"
	"storefront/internal/seo/repository"
	"storefront/pkg/logger"
)

type SEOService struct {
	Repo      repository.Repository
	Publisher events.Publisher
}

func NewSEOService(repo repository.Repository, publisher events.Publisher) *SEOService {
	if publisher == nil {
		publisher = &events.NoopPublisher{}
	}
	return &SEOService{Repo: repo, Publisher: publisher}
}

// GetSEO returns the site metadata record, or nil when none has been saved.
func (s *SEOService) GetSEO(ctx context.Context) (*model.SEO, error) {
	return s.Repo.FindOne(ctx)
}

// UpdateSEO merges the patch into the singleton record, creating it if needed.
func (s *SEOService) UpdateSEO(ctx context.Context, patch model.SEOPatch) error {
	if err := patch.Validate(); err != nil {
		return err
	}
	if err := s.Repo.Upsert(ctx, patch); err != nil {
		return err
	}
	if patch.IsEmpty() {
		return nil
	}

	var changed model.SEO
	patch.Apply(&changed)
	if err := s.Publisher.Publish(ctx, events.TopicSEOUpdated, changed); err != nil {
		logger.Sugar.Warnf("Failed to publish %s: %v", events.TopicSEOUpdated, err)
	}
	return nil
}
