package backup

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	productModel "storefront/internal/product/model"
	productRepository "storefront/internal/product/repository"
	seoModel "storefront/internal/seo/model"
	seoRepository "storefront/internal/seo/repository"
	"storefront/pkg/logger"
)

// Collections lists what a full backup covers, in the order it is written.
var Collections = []string{productModel.CollectionName, seoModel.CollectionName}

const maxLineSize = 1 << 20

type Service struct {
	Products productRepository.Repository
	SEO      seoRepository.Repository
	now      func() time.Time
}

func NewService(products productRepository.Repository, seo seoRepository.Repository) *Service {
	return &Service{Products: products, SEO: seo, now: time.Now}
}

// BackupCollection writes collectionName as JSON lines to
// outputDir/backup_<collection>_<timestamp>.json and returns the file path.
func (s *Service) BackupCollection(ctx context.Context, collectionName, outputDir string) (string, error) {
	if err := checkCollection(collectionName); err != nil {
		return "", err
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	timestamp := s.now().Format("20060102_150405")
	path := filepath.Join(outputDir, fmt.Sprintf("backup_%s_%s.json", collectionName, timestamp))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer file.Close()

	n, err := s.Export(ctx, collectionName, file)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("backup failed: %w", err)
	}
	logger.Sugar.Infof("Backed up %d %s documents to %s", n, collectionName, path)
	return path, nil
}

// BackupAll backs up every collection into outputDir.
func (s *Service) BackupAll(ctx context.Context, outputDir string) ([]string, error) {
	var files []string
	for _, collection := range Collections {
		file, err := s.BackupCollection(ctx, collection, outputDir)
		if err != nil {
			return files, fmt.Errorf("failed to backup collection %s: %w", collection, err)
		}
		files = append(files, file)
	}
	return files, nil
}

// Export writes one JSON document per line and returns how many were written.
func (s *Service) Export(ctx context.Context, collectionName string, w io.Writer) (int, error) {
	enc := json.NewEncoder(w)

	switch collectionName {
	case productModel.CollectionName:
		products, err := s.Products.FindAll(ctx)
		if err != nil {
			return 0, err
		}
		for i := range products {
			if err := enc.Encode(products[i]); err != nil {
				return i, fmt.Errorf("encode product: %w", err)
			}
		}
		return len(products), nil

	case seoModel.CollectionName:
		seo, err := s.SEO.FindOne(ctx)
		if err != nil {
			return 0, err
		}
		if seo == nil {
			return 0, nil
		}
		if err := enc.Encode(seo); err != nil {
			return 0, fmt.Errorf("encode seo: %w", err)
		}
		return 1, nil
	}
	return 0, checkCollection(collectionName)
}

// RestoreFile restores a backup file. An empty collectionName is taken from
// the file name.
func (s *Service) RestoreFile(ctx context.Context, path, collectionName string, dropExisting bool) (int, error) {
	if collectionName == "" {
		name, err := CollectionFromFilename(path)
		if err != nil {
			return 0, err
		}
		collectionName = name
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open backup file: %w", err)
	}
	defer file.Close()

	n, err := s.Import(ctx, collectionName, file, dropExisting)
	if err != nil {
		return n, fmt.Errorf("restore failed: %w", err)
	}
	return n, nil
}

// Import reads JSON lines from r into collectionName. Products keep their
// ids; the SEO record is upserted, so dropExisting only applies to products.
func (s *Service) Import(ctx context.Context, collectionName string, r io.Reader, dropExisting bool) (int, error) {
	if err := checkCollection(collectionName); err != nil {
		return 0, err
	}

	if dropExisting && collectionName == productModel.CollectionName {
		deleted, err := s.Products.DeleteAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("drop products: %w", err)
		}
		logger.Sugar.Infof("Dropped %d existing products", deleted)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	count, line := 0, 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		switch collectionName {
		case productModel.CollectionName:
			var p productModel.Product
			if err := json.Unmarshal([]byte(raw), &p); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
			if err := s.Products.Insert(ctx, &p); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
		case seoModel.CollectionName:
			var seo seoModel.SEO
			if err := json.Unmarshal([]byte(raw), &seo); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
			if err := s.SEO.Upsert(ctx, seo.Patch()); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read backup: %w", err)
	}
	return count, nil
}

// CollectionFromFilename extracts the collection from a
// backup_<collection>_<timestamp>.json name.
func CollectionFromFilename(path string) (string, error) {
	base := filepath.Base(path)
	if strings.HasPrefix(base, "backup_") {
		parts := strings.Split(base, "_")
		if len(parts) >= 3 && checkCollection(parts[1]) == nil {
			return parts[1], nil
		}
	}
	return "", fmt.Errorf("cannot determine target collection from %q, please specify --collection", base)
}

// ValidateBackupFile checks that filename exists, is non-empty and is JSON.
func ValidateBackupFile(filename string) error {
	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("cannot open backup file: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("backup file is empty")
	}
	if ext := filepath.Ext(filename); ext != ".json" {
		return fmt.Errorf("expected JSON file but got %q", ext)
	}
	return nil
}

func checkCollection(name string) error {
	for _, c := range Collections {
		if c == name {
			return nil
		}
	}
	return fmt.Errorf("unknown collection %q", name)
}
