package export

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/mamadbah2/foodboard/internal/domain/models"
	repo "github.com/mamadbah2/foodboard/internal/repository/sheets"
)

var header = []interface{}{"ID", "Name", "Description", "Price", "Available"}

// Source provides the foods currently shown on the dashboard.
type Source interface {
	Snapshot() []models.Food
}

// Service publishes the dashboard's menu to a spreadsheet.
type Service struct {
	repo       repo.Repository
	source     Source
	sheetRange string
	logger     *zap.Logger
}

// NewService wires a new export service instance.
func NewService(repository repo.Repository, source Source, sheetRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, source: source, sheetRange: sheetRange, logger: logger}
}

// Export writes the current snapshot and returns how many foods were written.
func (s *Service) Export(ctx context.Context) (int, error) {
	foods := s.source.Snapshot()

	if err := s.repo.ReplaceRange(ctx, s.sheetRange, Rows(foods)); err != nil {
		return 0, fmt.Errorf("export menu: %w", err)
	}

	s.logger.Info("menu exported", zap.Int("foods", len(foods)), zap.String("range", s.sheetRange))
	return len(foods), nil
}

// Rows renders foods as spreadsheet rows preceded by a header.
func Rows(foods []models.Food) [][]interface{} {
	rows := make([][]interface{}, 0, len(foods)+1)
	rows = append(rows, header)
	for _, f := range foods {
		rows = append(rows, []interface{}{
			strconv.FormatInt(f.ID, 10),
			f.Name,
			f.Description,
			models.FormatPrice(f.Price),
			f.Available,
		})
	}
	return rows
}
