package product

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"shopzone.GO/core/apperr"
	"shopzone.GO/model/entity"
	productRepo "shopzone.GO/model/repository/product"
)

// ImportOptions configures a product import run.
type ImportOptions struct {
	BatchSize int
	// DryRun validates every row without writing.
	DryRun bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows   int
	Created     int
	Updated     int
	Skipped     int
	Warnings    []string
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

var knownColumns = map[string]bool{
	"name": true, "category": true, "price": true, "rating": true,
	"media": true, "featured": true, "size": true,
}

// ImportProducts reads CSV data from r and upserts products by name.
// Invalid rows are skipped with a warning.
func ImportProducts(ctx context.Context, db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	startTotal := time.Now()
	if opts.BatchSize <= 0 {
		opts.BatchSize = 500
	}

	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		colIndex[h] = i
	}
	if _, ok := colIndex["name"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'name' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if !knownColumns[strings.ToLower(strings.TrimSpace(h))] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	startProcess := time.Now()
	parsed := make([]entity.Product, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		p, err := parseRow(row, colIndex)
		if err == nil {
			err = productRepo.Validate("products.import", &p)
		}
		if err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		// last row wins for repeated names
		if j, dup := seen[p.Name]; dup {
			parsed[j] = p
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate name %q, overrides earlier row", i+2, p.Name))
			continue
		}
		seen[p.Name] = len(parsed)
		parsed = append(parsed, p)
	}
	result.ProcessTime = time.Since(startProcess)

	names := make([]string, len(parsed))
	for i, p := range parsed {
		names[i] = p.Name
	}
	startDB := time.Now()
	existing, err := lookupNames(ctx, db, names, opts.BatchSize)
	if err != nil {
		return nil, err
	}

	var creates, updates []entity.Product
	for _, p := range parsed {
		if id, ok := existing[p.Name]; ok {
			p.ID = id
			updates = append(updates, p)
		} else {
			creates = append(creates, p)
		}
	}

	if !opts.DryRun {
		err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if len(creates) > 0 {
				if err := tx.CreateInBatches(&creates, opts.BatchSize).Error; err != nil {
					return err
				}
			}
			for i := range updates {
				if err := tx.Model(&updates[i]).
					Select("name", "category", "price", "rating", "media", "featured", "size", "updated_at").
					Updates(&updates[i]).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, apperr.Transient("products.import", err)
		}
	}
	result.Created = len(creates)
	result.Updated = len(updates)
	result.DBTime = time.Since(startDB)
	result.TotalTime = time.Since(startTotal)
	return result, nil
}

func cell(row []string, colIndex map[string]int, col string) string {
	i, ok := colIndex[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseRow(row []string, colIndex map[string]int) (entity.Product, error) {
	p := entity.Product{
		Name:     cell(row, colIndex, "name"),
		Category: cell(row, colIndex, "category"),
		Size:     strings.ToLower(cell(row, colIndex, "size")),
	}
	if v := cell(row, colIndex, "price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("price %q: not a number", v)
		}
		p.Price = f
	}
	if v := cell(row, colIndex, "rating"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("rating %q: not a number", v)
		}
		p.Rating = f
	}
	if v := cell(row, colIndex, "featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("featured %q: not a boolean", v)
		}
		p.Featured = b
	}
	media, err := ParseMedia(cell(row, colIndex, "media"))
	if err != nil {
		return p, err
	}
	p.Media = media
	return p, nil
}

// lookupNames batch-queries existing product names and returns name->id.
func lookupNames(ctx context.Context, db *gorm.DB, names []string, batchSize int) (map[string]uint, error) {
	type nameRow struct {
		ID   uint   `gorm:"column:id"`
		Name string `gorm:"column:name"`
	}
	m := make(map[string]uint, len(names))
	for i := 0; i < len(names); i += batchSize {
		end := i + batchSize
		if end > len(names) {
			end = len(names)
		}
		var chunk []nameRow
		if err := db.WithContext(ctx).Table("products").Select("id, name").Where("name IN ?", names[i:end]).Order("id ASC").Find(&chunk).Error; err != nil {
			return nil, apperr.Transient("products.import", err)
		}
		for _, r := range chunk {
			if _, ok := m[r.Name]; !ok {
				m[r.Name] = r.ID
			}
		}
	}
	return m, nil
}
