// Package repotest provides in-memory repositories for handler, router and
// tooling tests.
package repotest

import (
	"context"
	"sync"

	productmodel "storefront/internal/product/model"
	seomodel "storefront/internal/seo/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductStore keeps products in insertion order. When Err is set every call fails with it.
type ProductStore struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	byID  map[primitive.ObjectID]productmodel.Product
	Err   error
}

func NewProductStore() *ProductStore {
	return &ProductStore{byID: make(map[primitive.ObjectID]productmodel.Product)}
}

func (s *ProductStore) FindAll(_ context.Context) ([]productmodel.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]productmodel.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out, nil
}

func (s *ProductStore) Insert(_ context.Context, p *productmodel.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, exists := s.byID[p.ID]; !exists {
		s.order = append(s.order, p.ID)
	}
	s.byID[p.ID] = *p
	return nil
}

func (s *ProductStore) FindByIDAndUpdate(_ context.Context, id primitive.ObjectID, patch productmodel.ProductPatch) (*productmodel.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.byID[id]
	if !ok {
		return nil, nil
	}
	patch.Apply(&p)
	s.byID[id] = p
	return &p, nil
}

func (s *ProductStore) FindByIDAndDelete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.byID[id]; !ok {
		return nil
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *ProductStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	n := int64(len(s.order))
	s.order = nil
	s.byID = make(map[primitive.ObjectID]productmodel.Product)
	return n, nil
}

// Len returns the number of stored products.
func (s *ProductStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// SEOStore holds at most one SEO record.
type SEOStore struct {
	mu     sync.Mutex
	record *seomodel.SEO
	Err    error
}

func NewSEOStore() *SEOStore {
	return &SEOStore{}
}

func (s *SEOStore) FindOne(_ context.Context) (*seomodel.SEO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.record == nil {
		return nil, nil
	}
	cp := *s.record
	return &cp, nil
}

func (s *SEOStore) Upsert(_ context.Context, patch seomodel.SEOPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if patch.IsEmpty() {
		return nil
	}
	if s.record == nil {
		s.record = &seomodel.SEO{ID: primitive.NewObjectID()}
	}
	patch.Apply(s.record)
	return nil
}

// Publisher records published topics and events.
type Publisher struct {
	mu     sync.Mutex
	Topics []string
	Events []any
	Err    error
}

func (p *Publisher) Publish(_ context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Topics = append(p.Topics, topic)
	p.Events = append(p.Events, event)
	return p.Err
}

func (p *Publisher) Close() error {
	return nil
}

// Published returns a copy of the recorded topics.
func (p *Publisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.Topics...)
}
