package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	catalogEntity "mixtape.GO/model/entity/catalog"
)

// ImportOptions configures a product import run.
type ImportOptions struct {
	DryRun bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	TotalRows int
	Created   int
	Updated   int
	Skipped   int
	Warnings  []string
	TotalTime time.Duration
}

var importColumns = map[string]bool{
	"id": true, "title": true, "description": true, "price": true, "image_url": true,
	"gallery": true, "badge_type": true, "badge_text": true, "variants": true,
}

// ImportProducts reads CSV rows from r and writes them through the service so
// every row gets the same validation and normalization as the admin API.
// Rows with an id are upserted; rows without one are created.
func (s *Service) ImportProducts(ctx context.Context, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		h = strings.ToLower(strings.TrimSpace(h))
		colIndex[h] = i
	}
	if _, ok := colIndex["title"]; !ok {
		return nil, fmt.Errorf("CSV must contain a 'title' column")
	}

	result := &ImportResult{}
	for _, h := range headers {
		if h = strings.ToLower(strings.TrimSpace(h)); !importColumns[h] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("column %q: unknown, skipping", h))
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV rows: %w", err)
	}
	result.TotalRows = len(rows)

	for n, row := range rows {
		line := n + 2
		get := func(col string) string {
			if i, ok := colIndex[col]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		in, warnings := rowInput(get)
		for _, w := range warnings {
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %s", line, w))
		}
		if err := in.Validate(); err != nil {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if opts.DryRun {
			continue
		}

		idText := get("id")
		if idText == "" {
			if _, err := s.Create(ctx, in); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			result.Created++
			continue
		}
		id, err := strconv.ParseUint(idText, 10, 64)
		if err != nil || id == 0 {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: bad id %q", line, idText))
			continue
		}
		created, err := s.Upsert(ctx, uint(id), in)
		if errors.Is(err, ErrInvalidInput) {
			result.Skipped++
			result.Warnings = append(result.Warnings, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	result.TotalTime = time.Since(start)
	return result, nil
}

// rowInput maps one CSV row. Gallery entries are ';' separated; variants are
// "name|price|image" groups separated by ';'.
func rowInput(get func(string) string) (ProductInput, []string) {
	in := ProductInput{
		Title:       get("title"),
		Description: get("description"),
		Price:       get("price"),
		ImageURL:    get("image_url"),
		BadgeType:   get("badge_type"),
		BadgeText:   get("badge_text"),
	}
	if g := get("gallery"); g != "" {
		in.Gallery = strings.Split(g, ";")
	}
	var warnings []string
	for _, group := range strings.Split(get("variants"), ";") {
		if strings.TrimSpace(group) == "" {
			continue
		}
		parts := strings.Split(group, "|")
		if len(parts) != 3 {
			warnings = append(warnings, fmt.Sprintf("variant %q: want name|price|image", group))
			continue
		}
		in.Variants = append(in.Variants, catalogEntity.Variant{Name: parts[0], Price: parts[1], ImageURL: parts[2]})
	}
	return in, warnings
}
