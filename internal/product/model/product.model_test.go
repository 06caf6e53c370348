package model

import (
	"encoding/json"
	"testing"

	"storefront/pkg/cast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestProductPatchFields(t *testing.T) {
	p := ProductPatch{Title: cast.Of("Lamp"), Time: cast.Of(""), Contact: cast.Of("555")}
	assert.Equal(t, []Field{
		{Key: "title", Value: "Lamp"},
		{Key: "contact", Value: "555"},
		{Key: "time", Value: ""},
	}, p.Fields())
	assert.False(t, p.IsEmpty())
	assert.True(t, ProductPatch{}.IsEmpty())
}

func TestNewProductAndApply(t *testing.T) {
	prod := NewProduct(ProductPatch{Title: cast.Of("Lamp"), Image: cast.Of("lamp.png")})
	assert.Equal(t, "Lamp", prod.Title)
	assert.Equal(t, "lamp.png", prod.Image)
	assert.True(t, prod.ID.IsZero())

	ProductPatch{MetaTitle: cast.Of("Desk lamp")}.Apply(prod)
	assert.Equal(t, "Lamp", prod.Title)
	assert.Equal(t, "Desk lamp", prod.MetaTitle)
}

func TestProductJSONShape(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)

	b, err := json.Marshal(Product{ID: oid, Title: "Lamp", Contact: "555"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"65a1f0c2e4b0a1b2c3d4e5f6","title":"Lamp","contact":"555","__v":0}`, string(b))
}

func TestParseID(t *testing.T) {
	oid, err := ParseID("65a1f0c2e4b0a1b2c3d4e5f6")
	require.NoError(t, err)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", oid.Hex())

	_, err = ParseID("not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestProductPatchCastsBodyValues(t *testing.T) {
	var p ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Lamp","time":1700000000,"contact":null,"image":false}`), &p))
	require.NoError(t, p.Validate())

	prod := &Product{Contact: "555"}
	p.Apply(prod)
	assert.Equal(t, "Lamp", prod.Title)
	assert.Equal(t, "1700000000", prod.Time)
	assert.Equal(t, "false", prod.Image)
	assert.Empty(t, prod.Contact)
}

func TestProductPatchValidateRejectsObjects(t *testing.T) {
	var p ProductPatch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Lamp","metaImage":{"url":"x"}}`), &p))
	err := p.Validate()
	assert.ErrorIs(t, err, cast.ErrCast)
	assert.Contains(t, err.Error(), "metaImage")
}
