package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"storefront/internal/product/model"
	"storefront/internal/product/repository"

	"github.com/jszwec/csvutil"
)

// Parser reads products from a CSV file whose header row uses the product
// field names (title, metaTitle, contact, image, metaImage, time).
type Parser struct {
	filename string
}

func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

func (p *Parser) ParseProducts() ([]model.Product, error) {
	file, err := os.Open(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	return ParseProducts(file)
}

func ParseProducts(r io.Reader) ([]model.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	decoder, err := csvutil.NewDecoder(reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []model.Product{}, nil
		}
		return nil, fmt.Errorf("failed to create CSV decoder: %w", err)
	}

	products := []model.Product{}
	if err := decoder.Decode(&products); err != nil {
		return nil, fmt.Errorf("failed to decode CSV: %w", err)
	}
	for i := range products {
		products[i].Version = 0
	}
	return products, nil
}

// Import inserts every product in order and returns how many were stored.
func Import(ctx context.Context, repo repository.Repository, products []model.Product) (int, error) {
	for i := range products {
		if err := repo.Insert(ctx, &products[i]); err != nil {
			return i, fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}
	return len(products), nil
}
