package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/rcliao/ff7r-text/internal/model"
)

// SearchParams holds parameters for searching lines.
type SearchParams struct {
	Region  string
	Speaker string
	Query   string
	// FullText treats Query as an FTS5 match expression instead of a substring.
	FullText bool
	Limit    int
}

// Search finds lines whose text, speaker, or line ID match the query.
func (s *SQLiteStore) Search(ctx context.Context, p SearchParams) ([]model.StoredLine, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var where []string
	var args []interface{}

	if p.FullText {
		where = append(where, "l.rowid IN (SELECT rowid FROM lines_fts WHERE lines_fts MATCH ?)")
		args = append(args, p.Query)
	} else {
		q := "%" + p.Query + "%"
		where = append(where, "(l.text LIKE ? OR l.speaker LIKE ? OR l.line_id LIKE ?)")
		args = append(args, q, q, q)
	}
	if p.Region != "" {
		where = append(where, "l.region = ?")
		args = append(args, p.Region)
	}
	if p.Speaker != "" {
		where = append(where, "l.speaker = ?")
		args = append(args, p.Speaker)
	}

	query := fmt.Sprintf(`
		SELECT l.id, l.run_id, l.region, l.package, l.line_id, l.speaker, l.text, l.meta, l.created_at
		FROM lines l
		WHERE %s
		ORDER BY l.region, l.package, l.seq
		LIMIT ?`, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanLines(rows)
}
