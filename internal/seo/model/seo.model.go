package model

import (
	"fmt"

	"storefront/pkg/cast"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the document collection holding the site metadata row.
const CollectionName = "seos"

// SEO is the single site-wide metadata record. Field order matches the
// GET /api/seo response.
type SEO struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Title       string             `json:"title,omitempty" bson:"title,omitempty"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Keywords    string             `json:"keywords,omitempty" bson:"keywords,omitempty"`
	Author      string             `json:"author,omitempty" bson:"author,omitempty"`
	OGImage     string             `json:"ogImage,omitempty" bson:"ogImage,omitempty"`
	Robots      string             `json:"robots,omitempty" bson:"robots,omitempty"`
}

type SEOPatch struct {
	Title       cast.String `json:"title"`
	Description cast.String `json:"description"`
	Keywords    cast.String `json:"keywords"`
	Author      cast.String `json:"author"`
	Robots      cast.String `json:"robots"`
	OGImage     cast.String `json:"ogImage"`
}

type Field struct {
	Key   string
	Value string
}

// Fields lists the present fields in schema order.
func (p SEOPatch) Fields() []Field {
	var fields []Field
	add := func(key string, v cast.String) {
		if v.Set {
			fields = append(fields, Field{Key: key, Value: v.Value})
		}
	}
	add("title", p.Title)
	add("description", p.Description)
	add("keywords", p.Keywords)
	add("author", p.Author)
	add("robots", p.Robots)
	add("ogImage", p.OGImage)
	return fields
}

// Validate reports the first field whose value has no text form.
func (p SEOPatch) Validate() error {
	for _, f := range []struct {
		key string
		v   cast.String
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"keywords", p.Keywords},
		{"author", p.Author},
		{"robots", p.Robots},
		{"ogImage", p.OGImage},
	} {
		if err := f.v.Err(); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return nil
}

func (p SEOPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply copies the present fields onto s.
func (p SEOPatch) Apply(s *SEO) {
	for _, f := range p.Fields() {
		switch f.Key {
		case "title":
			s.Title = f.Value
		case "description":
			s.Description = f.Value
		case "keywords":
			s.Keywords = f.Value
		case "author":
			s.Author = f.Value
		case "robots":
			s.Robots = f.Value
		case "ogImage":
			s.OGImage = f.Value
		}
	}
}

// Patch returns a patch carrying every non-empty field of s.
func (s SEO) Patch() SEOPatch {
	opt := func(v string) cast.String {
		if v == "" {
			return cast.String{}
		}
		return cast.Of(v)
	}
	return SEOPatch{
		Title:       opt(s.Title),
		Description: opt(s.Description),
		Keywords:    opt(s.Keywords),
		Author:      opt(s.Author),
		Robots:      opt(s.Robots),
		OGImage:     opt(s.OGImage),
	}
}
