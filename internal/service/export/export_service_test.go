package export

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/foodboard/internal/domain/models"
)

type fakeSheet struct {
	sheetRange string
	rows       [][]interface{}
	err        error
}

func (f *fakeSheet) ReplaceRange(_ context.Context, sheetRange string, rows [][]interface{}) error {
	f.sheetRange = sheetRange
	f.rows = rows
	return f.err
}

type staticSource []models.Food

func (s staticSource) Snapshot() []models.Food { return s }

func TestExportWritesHeaderAndRows(t *testing.T) {
	sheet := &fakeSheet{}
	svc := NewService(sheet, staticSource{
		{ID: 1, Name: "Pizza", Description: "Cheese", Price: "19.9", Available: true},
		{ID: 2, Name: "Soup", Price: "9,90"},
	}, "Menu!A:E", nil)

	n, err := svc.Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, n)
	assert.Equal(t, "Menu!A:E", sheet.sheetRange)
	assert.Equal(t, [][]interface{}{
		{"ID", "Name", "Description", "Price", "Available"},
		{"1", "Pizza", "Cheese", "19.90", true},
		{"2", "Soup", "", "9.90", false},
	}, sheet.rows)
}

func TestExportPropagatesSheetErrors(t *testing.T) {
	svc := NewService(&fakeSheet{err: errors.New("quota")}, staticSource{}, "Menu!A:E", nil)

	_, err := svc.Export(context.Background())
	assert.ErrorContains(t, err, "quota")
}
