package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront/internal/seo/model"
	"storefront/pkg/cast"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPostgresRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresFindOne(t *testing.T) {
	repo, mock := newPostgresRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT title, description, keywords, author, robots, og_image FROM seo WHERE id = $1")).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"title", "description", "keywords", "author", "robots", "og_image"}).
			AddRow("Shop", "Lamps and desks", nil, "Ana", "index", "og.png"))

	s, err := repo.FindOne(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, model.SEO{Title: "Shop", Description: "Lamps and desks", Author: "Ana", Robots: "index", OGImage: "og.png"}, *s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresFindOneMissing(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM seo").
		WillReturnRows(sqlmock.NewRows([]string{"title", "description", "keywords", "author", "robots", "og_image"}))

	s, err := repo.FindOne(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestPostgresFindOneError(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	mock.ExpectQuery("SELECT (.+) FROM seo").WillReturnError(errors.New("timeout"))

	_, err := repo.FindOne(context.Background())
	assert.ErrorContains(t, err, "timeout")
}

func TestPostgresUpsert(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	title, image := "Shop", "og.png"

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO seo (id, title, og_image) VALUES ($1, $2, $3) ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, og_image = EXCLUDED.og_image")).
		WithArgs(1, "Shop", "og.png").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Upsert(context.Background(), model.SEOPatch{Title: cast.Of(title), OGImage: cast.Of(image)}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertEmptyPatch(t *testing.T) {
	repo, mock := newPostgresRepo(t)
	require.NoError(t, repo.Upsert(context.Background(), model.SEOPatch{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
