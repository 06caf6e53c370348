// Package events publishes change notifications for the product and SEO
// collections.
package events

import (
	"context"
	"errors"
	"strings"
)

const (
	TopicProductCreated = "storefront.product.created"
	TopicProductUpdated = "storefront.product.updated"
	TopicProductDeleted = "storefront.product.deleted"
	TopicSEOUpdated     = "storefront.seo.updated"
)

// Publisher delivers an event to subscribers of a topic.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}

// ProductDeleted is published after a delete request; the product may not have existed.
type ProductDeleted struct {
	ID string `json:"_id"`
}

// SplitTopic returns the collection and action parts of a topic such as
// "storefront.product.created".
func SplitTopic(topic string) (collection, action string, ok bool) {
	parts := strings.Split(topic, ".")
	if len(parts) != 3 || parts[1] == "" || parts[2] == "" {
		return "", "", false
	}
	return parts[1], parts[2], true
}

// Multi fans an event out to several publishers.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, topic string, event any) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, topic, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
