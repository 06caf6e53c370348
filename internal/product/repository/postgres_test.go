package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront/internal/product/model"
	"storefront/pkg/cast"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var columns = []string{"id", "title", "meta_title", "contact", "image", "meta_image", "time_label", "version"}

func newPostgresRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresFindAll(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products ORDER BY created_at, id")).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f6", "Lamp", nil, "555", "lamp.png", nil, "2024", 0).
			AddRow("65a1f0c2e4b0a1b2c3d4e5f7", "Desk", "Desk meta", nil, nil, nil, nil, 0))

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", products[0].ID.Hex())
	assert.Equal(t, "Lamp", products[0].Title)
	assert.Equal(t, "2024", products[0].Time)
	assert.Equal(t, "", products[0].MetaTitle)
	assert.Equal(t, "Desk meta", products[1].MetaTitle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindAllEmpty(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnRows(sqlmock.NewRows(columns))

	products, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestPostgresFindAllError(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM products").WillReturnError(errors.New("connection refused"))

	_, err := repo.FindAll(context.Background())
	assert.ErrorContains(t, err, "connection refused")
}

func TestPostgresInsertAssignsID(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectExec("INSERT INTO products").
		WithArgs(sqlmock.AnyArg(), "Lamp", nil, "555", nil, nil, "2024", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Product{Title: "Lamp", Contact: "555", Time: "2024"}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.False(t, p.ID.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsertKeepsID(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id := primitive.NewObjectID()

	mock.ExpectExec("INSERT INTO products").
		WithArgs(id.Hex(), "Lamp", nil, nil, nil, nil, nil, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &model.Product{ID: id, Title: "Lamp"}
	require.NoError(t, repo.Insert(context.Background(), p))
	assert.Equal(t, id, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByIDAndUpdate(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id, _ := primitive.ObjectIDFromHex("65a1f0c2e4b0a1b2c3d4e5f6")

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE products SET title = $1, time_label = $2 WHERE id = $3 RETURNING " + productColumns)).
		WithArgs("Lamp v2", "2025", id.Hex()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.Hex(), "Lamp v2", nil, "555", nil, nil, "2025", 0))

	p, err := repo.FindByIDAndUpdate(context.Background(), id, model.ProductPatch{Title: cast.Of("Lamp v2"), Time: cast.Of("2025")})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Lamp v2", p.Title)
	assert.Equal(t, "555", p.Contact)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindByIDAndUpdateNotFound(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id := primitive.NewObjectID()

	mock.ExpectQuery("UPDATE products SET").WillReturnRows(sqlmock.NewRows(columns))

	p, err := repo.FindByIDAndUpdate(context.Background(), id, model.ProductPatch{Title: cast.Of("x")})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPostgresFindByIDAndUpdateEmptyPatchSelects(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id := primitive.NewObjectID()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + productColumns + " FROM products WHERE id = $1")).
		WithArgs(id.Hex()).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(id.Hex(), "Lamp", nil, nil, nil, nil, nil, 0))

	p, err := repo.FindByIDAndUpdate(context.Background(), id, model.ProductPatch{})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Lamp", p.Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	id := primitive.NewObjectID()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM products WHERE id = $1")).
		WithArgs(id.Hex()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.FindByIDAndDelete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteAll(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	mock.ExpectExec("DELETE FROM products$").WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
