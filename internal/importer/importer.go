package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/logging"
)

// ProductWriter upserts products by name. The product service satisfies it.
type ProductWriter interface {
	UpsertByName(ctx context.Context, p domain.Product) (*domain.Product, bool, error)
}

// Result counts what a run did.
type Result struct {
	Created int
	Updated int
}

// CSVImporter reads product CSV files and inserts or updates products by name.
//
// The header row names the columns; name, price and category_id are required,
// description, image_url, weight, stock and is_active are optional.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
	logger   logrus.FieldLogger
}

func NewCSVImporter(r io.Reader, products ProductWriter, logger logrus.FieldLogger) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{
		reader:   csvr,
		products: products,
		logger:   logging.OrDiscard(logger),
	}
}

var requiredColumns = []string{"name", "price", "category_id"}

// Run parses every row and upserts it. It stops at the first bad row; rows
// before it stay imported.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result

	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return res, fmt.Errorf("missing required column %q", col)
		}
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)
		if blank(record) {
			continue
		}

		p, err := parseRow(record, index)
		if err != nil {
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		saved, created, err := i.products.UpsertByName(ctx, p)
		if err != nil {
			return res, fmt.Errorf("line %d: upsert product %q: %w", line, p.Name, err)
		}
		if created {
			res.Created++
		} else {
			res.Updated++
		}
		i.logger.WithFields(logrus.Fields{
			"line":    line,
			"id":      saved.ID,
			"created": created,
		}).Debug("importer: product saved")
	}

	return res, nil
}

func parseRow(record []string, index map[string]int) (domain.Product, error) {
	p := domain.Product{
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		IsActive:    true,
	}
	if p.Name == "" {
		return p, domain.NewValidationError("name", "is required")
	}

	price, err := decimal.NewFromString(pick(record, index, "price"))
	if err != nil {
		return p, domain.NewValidationError("price", "must be a decimal number")
	}
	p.Price = price

	if v := pick(record, index, "weight"); v != "" {
		w, err := decimal.NewFromString(v)
		if err != nil {
			return p, domain.NewValidationError("weight", "must be a decimal number")
		}
		p.Weight = &w
	}
	if v := pick(record, index, "image_url"); v != "" {
		p.ImageURL = &v
	}
	if v := pick(record, index, "stock"); v != "" {
		stock, err := strconv.Atoi(v)
		if err != nil {
			return p, domain.NewValidationError("stock", "must be an integer")
		}
		p.Stock = stock
	}
	if v := pick(record, index, "is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return p, domain.NewValidationError("is_active", "must be true or false")
		}
		p.IsActive = active
	}
	categoryID, err := strconv.ParseInt(pick(record, index, "category_id"), 10, 64)
	if err != nil {
		return p, domain.NewValidationError("category_id", "must be an integer")
	}
	p.CategoryID = categoryID

	return p, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
