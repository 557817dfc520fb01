package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

// ErrMissingNameColumn is returned when a CSV header has no "name" column.
var ErrMissingNameColumn = errors.New("csv header has no name column")

// ParseFile reads food drafts from a CSV file.
func ParseFile(path string) ([]models.FoodInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	return ParseDrafts(f)
}

// ParseDrafts reads food drafts from CSV. The header names the columns
// (name, description, price, image) in any order; only name is required.
// Rows with an empty name are skipped.
func ParseDrafts(src io.Reader) ([]models.FoodInput, error) {
	r := csv.NewReader(src)
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, ErrMissingNameColumn
	}

	field := func(record []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var drafts []models.FoodInput
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading record: %w", err)
		}

		input := models.FoodInput{
			Name:        field(record, "name"),
			Description: field(record, "description"),
			Price:       field(record, "price"),
			Image:       field(record, "image"),
		}
		if input.Name == "" {
			continue
		}
		drafts = append(drafts, input)
	}

	return drafts, nil
}
