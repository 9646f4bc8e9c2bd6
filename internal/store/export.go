package store

import (
	"context"
	"strings"

	"github.com/rcliao/ff7r-text/internal/model"
)

// ExportAll returns every stored line in file order, optionally filtered by region.
func (s *SQLiteStore) ExportAll(ctx context.Context, region string) ([]model.StoredLine, error) {
	where := []string{"1 = 1"}
	args := []interface{}{}

	if region != "" {
		where = append(where, "region = ?")
		args = append(args, region)
	}

	query := `SELECT ` + lineColumns + `
	          FROM lines WHERE ` + strings.Join(where, " AND ") + ` ORDER BY region, package, seq`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanLines(rows)
}

// Lines converts stored lines back to parsed lines, for writing through a sink.
func Lines(stored []model.StoredLine) []model.Line {
	out := make([]model.Line, len(stored))
	for i, l := range stored {
		meta := l.Meta
		if meta == nil {
			meta = map[string]string{}
		}
		out[i] = model.Line{ID: l.LineID, Text: l.Text, Meta: meta}
	}
	return out
}
