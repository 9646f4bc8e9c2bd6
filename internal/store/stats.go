package store

import (
	"context"
	"os"
)

// Stats holds database statistics.
type Stats struct {
	DBPath      string        `json:"db_path"`
	DBSizeBytes int64         `json:"db_size_bytes"`
	TotalLines  int           `json:"total_lines"`
	Speakers    int           `json:"speakers"`
	LastRunID   string        `json:"last_run_id,omitempty"`
	Regions     []RegionStats `json:"regions"`
}

// RegionStats holds per-region counts.
type RegionStats struct {
	Region   string `json:"region"`
	Lines    int    `json:"lines"`
	Packages int    `json:"packages"`
	Speakers int    `json:"speakers"`
}

// Regions returns line, package, and speaker counts per region.
func (s *SQLiteStore) Regions(ctx context.Context) ([]RegionStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT region, COUNT(*), COUNT(DISTINCT package), COUNT(DISTINCT NULLIF(speaker, ''))
		FROM lines GROUP BY region ORDER BY region`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RegionStats
	for rows.Next() {
		var r RegionStats
		if err := rows.Scan(&r.Region, &r.Lines, &r.Packages, &r.Speakers); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Stats returns database statistics.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string) (*Stats, error) {
	st := &Stats{DBPath: dbPath}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lines`).Scan(&st.TotalLines)
	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT speaker) FROM lines WHERE speaker != ''`).Scan(&st.Speakers)
	// ULIDs sort by time, so the largest run ID is the latest run.
	s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(run_id), '') FROM lines`).Scan(&st.LastRunID)

	regions, err := s.Regions(ctx)
	if err != nil {
		return st, err
	}
	st.Regions = regions
	return st, nil
}
