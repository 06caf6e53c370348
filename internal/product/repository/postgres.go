package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/product/model"
	"storefront/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const productColumns = "id, title, meta_title, contact, image, meta_image, time_label, version"

// columnFor maps document keys onto table columns.
var columnFor = map[string]string{
	"title":     "title",
	"metaTitle": "meta_title",
	"contact":   "contact",
	"image":     "image",
	"metaImage": "meta_image",
	"time":      "time_label",
}

type PostgresRepository struct {
	DB *sql.DB
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*model.Product, error) {
	var (
		id                                                     string
		title, metaTitle, contact, image, metaImage, timeLabel sql.NullString
		p                                                      model.Product
	)
	if err := row.Scan(&id, &title, &metaTitle, &contact, &image, &metaImage, &timeLabel, &p.Version); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("stored product id %q: %w", id, err)
	}
	p.ID = oid
	p.Title = title.String
	p.MetaTitle = metaTitle.String
	p.Contact = contact.String
	p.Image = image.String
	p.MetaImage = metaImage.String
	p.Time = timeLabel.String
	return &p, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PostgresRepository) FindAll(ctx context.Context) ([]model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY created_at, id")
	if err != nil {
		logger.Sugar.Errorf("Failed to query products: %v", err)
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			logger.Sugar.Errorf("Failed to scan product: %v", err)
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, p *model.Product) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO products (id, title, meta_title, contact, image, meta_image, time_label, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID.Hex(), nullable(p.Title), nullable(p.MetaTitle), nullable(p.Contact),
		nullable(p.Image), nullable(p.MetaImage), nullable(p.Time), p.Version)
	if err != nil {
		logger.Sugar.Errorf("Failed to insert product %s: %v", p.ID.Hex(), err)
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindByIDAndUpdate(ctx context.Context, id primitive.ObjectID, patch model.ProductPatch) (*model.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var row *sql.Row
	if patch.IsEmpty() {
		row = r.DB.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id.Hex())
	} else {
		fields := patch.Fields()
		sets := make([]string, 0, len(fields))
		args := make([]any, 0, len(fields)+1)
		for i, f := range fields {
			sets = append(sets, fmt.Sprintf("%s = $%d", columnFor[f.Key], i+1))
			args = append(args, nullable(f.Value))
		}
		args = append(args, id.Hex())
		query := fmt.Sprintf("UPDATE products SET %s WHERE id = $%d RETURNING %s",
			strings.Join(sets, ", "), len(args), productColumns)
		row = r.DB.QueryRowContext(ctx, query, args...)
	}

	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Sugar.Errorf("Failed to update product %s: %v", id.Hex(), err)
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) FindByIDAndDelete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id.Hex()); err != nil {
		logger.Sugar.Errorf("Failed to delete product %s: %v", id.Hex(), err)
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctx, "DELETE FROM products")
	if err != nil {
		logger.Sugar.Errorf("Failed to clear products: %v", err)
		return 0, fmt.Errorf("delete products: %w", err)
	}
	return result.RowsAffected()
}
