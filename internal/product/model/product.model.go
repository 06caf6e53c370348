package model

import (
	"errors"
	"fmt"

	"storefront/pkg/cast"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CollectionName is the document collection holding product listings.
const CollectionName = "products"

var ErrInvalidID = errors.New("invalid product id")

type Product struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty" csv:"-"`
	Title     string             `json:"title,omitempty" bson:"title,omitempty" csv:"title,omitempty"`
	MetaTitle string             `json:"metaTitle,omitempty" bson:"metaTitle,omitempty" csv:"metaTitle,omitempty"`
	Contact   string             `json:"contact,omitempty" bson:"contact,omitempty" csv:"contact,omitempty"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty" csv:"image,omitempty"`
	MetaImage string             `json:"metaImage,omitempty" bson:"metaImage,omitempty" csv:"metaImage,omitempty"`
	Time      string             `json:"time,omitempty" bson:"time,omitempty" csv:"time,omitempty"`
	Version   int                `json:"__v" bson:"__v" csv:"-"`
}

// ProductPatch carries the fields present in a create or update body.
// An unset field was absent from the request and is left untouched; a null
// field is cleared.
type ProductPatch struct {
	Title     cast.String `json:"title"`
	MetaTitle cast.String `json:"metaTitle"`
	Contact   cast.String `json:"contact"`
	Image     cast.String `json:"image"`
	MetaImage cast.String `json:"metaImage"`
	Time      cast.String `json:"time"`
}

// Field is one document key with its new value.
type Field struct {
	Key   string
	Value string
}

// Fields lists the present fields in schema order.
func (p ProductPatch) Fields() []Field {
	var fields []Field
	add := func(key string, v cast.String) {
		if v.Set {
			fields = append(fields, Field{Key: key, Value: v.Value})
		}
	}
	add("title", p.Title)
	add("metaTitle", p.MetaTitle)
	add("contact", p.Contact)
	add("image", p.Image)
	add("metaImage", p.MetaImage)
	add("time", p.Time)
	return fields
}

// Validate reports the first field whose value has no text form.
func (p ProductPatch) Validate() error {
	for _, f := range []struct {
		key string
		v   cast.String
	}{
		{"title", p.Title},
		{"metaTitle", p.MetaTitle},
		{"contact", p.Contact},
		{"image", p.Image},
		{"metaImage", p.MetaImage},
		{"time", p.Time},
	} {
		if err := f.v.Err(); err != nil {
			return fmt.Errorf("%s: %w", f.key, err)
		}
	}
	return nil
}

// IsEmpty reports whether no field was supplied.
func (p ProductPatch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// Apply copies the present fields onto prod.
func (p ProductPatch) Apply(prod *Product) {
	for _, f := range p.Fields() {
		switch f.Key {
		case "title":
			prod.Title = f.Value
		case "metaTitle":
			prod.MetaTitle = f.Value
		case "contact":
			prod.Contact = f.Value
		case "image":
			prod.Image = f.Value
		case "metaImage":
			prod.MetaImage = f.Value
		case "time":
			prod.Time = f.Value
		}
	}
}

// NewProduct builds an unsaved product from a create body.
func NewProduct(p ProductPatch) *Product {
	prod := &Product{}
	p.Apply(prod)
	return prod
}

// ParseID converts a path identifier into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}
