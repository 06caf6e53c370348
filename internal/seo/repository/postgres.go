package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/seo/model"
	"storefront/pkg/logger"
)

// The seo table holds at most one row, pinned to id 1.
const seoRowID = 1

var columnFor = map[string]string{
	"title":       "title",
	"description": "description",
	"keywords":    "keywords",
	"author":      "author",
	"robots":      "robots",
	"ogImage":     "og_image",
}

type PostgresRepository struct {
	DB *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) FindOne(ctx context.Context) (*model.SEO, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var title, description, keywords, author, robots, ogImage sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT title, description, keywords, author, robots, og_image FROM seo WHERE id = $1", seoRowID,
	).Scan(&title, &description, &keywords, &author, &robots, &ogImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Sugar.Errorf("Failed to find SEO record: %v", err)
		return nil, fmt.Errorf("find seo: %w", err)
	}
	return &model.SEO{
		Title:       title.String,
		Description: description.String,
		Keywords:    keywords.String,
		Author:      author.String,
		Robots:      robots.String,
		OGImage:     ogImage.String,
	}, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, patch model.SEOPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	fields := patch.Fields()
	cols := make([]string, 0, len(fields))
	params := make([]string, 0, len(fields))
	sets := make([]string, 0, len(fields))
	args := []any{seoRowID}
	for i, f := range fields {
		col := columnFor[f.Key]
		cols = append(cols, col)
		params = append(params, fmt.Sprintf("$%d", i+2))
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
		args = append(args, f.Value)
	}
	query := fmt.Sprintf("INSERT INTO seo (id, %s) VALUES ($1, %s) ON CONFLICT (id) DO UPDATE SET %s",
		strings.Join(cols, ", "), strings.Join(params, ", "), strings.Join(sets, ", "))

	if _, err := r.DB.ExecContext(ctx, query, args...); err != nil {
		logger.Sugar.Errorf("Failed to upsert SEO record: %v", err)
		return fmt.Errorf("upsert seo: %w", err)
	}
	return nil
}
