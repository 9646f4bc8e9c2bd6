package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/ff7r-text/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB

	mu      sync.Mutex
	entropy *rand.Rand
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// NewID returns a ULID. Safe for concurrent use.
func (s *SQLiteStore) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS lines (
		id          TEXT PRIMARY KEY,
		run_id      TEXT NOT NULL,
		region      TEXT NOT NULL,
		package     TEXT NOT NULL,
		seq         INTEGER NOT NULL,
		line_id     TEXT NOT NULL,
		speaker     TEXT NOT NULL DEFAULT '',
		text        TEXT NOT NULL,
		meta        TEXT,
		created_at  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_lines_region_line ON lines(region, line_id);
	CREATE INDEX IF NOT EXISTS idx_lines_region_pkg ON lines(region, package, seq);
	CREATE INDEX IF NOT EXISTS idx_lines_speaker ON lines(speaker);

	CREATE VIRTUAL TABLE IF NOT EXISTS lines_fts USING fts5(
		text,
		speaker,
		content=lines,
		content_rowid=rowid
	);

	CREATE TRIGGER IF NOT EXISTS lines_ai AFTER INSERT ON lines BEGIN
		INSERT INTO lines_fts(rowid, text, speaker) VALUES (new.rowid, new.text, new.speaker);
	END;
	CREATE TRIGGER IF NOT EXISTS lines_ad AFTER DELETE ON lines BEGIN
		INSERT INTO lines_fts(lines_fts, rowid, text, speaker) VALUES('delete', old.rowid, old.text, old.speaker);
	END;
	CREATE TRIGGER IF NOT EXISTS lines_au AFTER UPDATE ON lines BEGIN
		INSERT INTO lines_fts(lines_fts, rowid, text, speaker) VALUES('delete', old.rowid, old.text, old.speaker);
		INSERT INTO lines_fts(rowid, text, speaker) VALUES (new.rowid, new.text, new.speaker);
	END;
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) ReplacePackage(ctx context.Context, p PackageParams) (int, error) {
	if p.Region == "" || p.Package == "" {
		return 0, fmt.Errorf("region and package are required")
	}
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM lines WHERE region = ? AND package = ?`, p.Region, p.Package); err != nil {
		return 0, fmt.Errorf("clear package: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO lines (id, run_id, region, package, seq, line_id, speaker, text, meta, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, l := range p.Lines {
		var metaJSON *string
		if len(l.Meta) > 0 {
			b, _ := json.Marshal(l.Meta)
			m := string(b)
			metaJSON = &m
		}
		_, err := stmt.ExecContext(ctx,
			s.NewID(), p.RunID, p.Region, p.Package, i, l.ID, l.Speaker(), l.Text, metaJSON, now)
		if err != nil {
			return 0, fmt.Errorf("insert line %s: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(p.Lines), nil
}

const lineColumns = `id, run_id, region, package, line_id, speaker, text, meta, created_at`

func (s *SQLiteStore) Get(ctx context.Context, region, lineID string) ([]model.StoredLine, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+lineColumns+` FROM lines WHERE region = ? AND line_id = ? ORDER BY package, seq`,
		region, lineID)
	if err != nil {
		return nil, err
	}
	lines, err := scanLines(rows)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("line not found: %s/%s", region, lineID)
	}
	return lines, nil
}

func (s *SQLiteStore) List(ctx context.Context, p ListParams) ([]model.StoredLine, error) {
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	where := []string{"1 = 1"}
	var args []interface{}
	if p.Region != "" {
		where = append(where, "region = ?")
		args = append(args, p.Region)
	}
	if p.Package != "" {
		where = append(where, "package = ?")
		args = append(args, p.Package)
	}
	if p.Speaker != "" {
		where = append(where, "speaker = ?")
		args = append(args, p.Speaker)
	}

	query := fmt.Sprintf(`SELECT %s FROM lines WHERE %s ORDER BY region, package, seq LIMIT ?`,
		lineColumns, strings.Join(where, " AND "))
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanLines(rows)
}

func (s *SQLiteStore) RemoveRegion(ctx context.Context, region string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lines WHERE region = ?`, region)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLine(row scanner) (model.StoredLine, error) {
	var l model.StoredLine
	var meta sql.NullString
	var createdAt string

	err := row.Scan(&l.ID, &l.RunID, &l.Region, &l.Package, &l.LineID, &l.Speaker, &l.Text, &meta, &createdAt)
	if err != nil {
		return l, err
	}

	l.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if meta.Valid {
		json.Unmarshal([]byte(meta.String), &l.Meta)
	}
	return l, nil
}

// scanLines drains and closes rows.
func scanLines(rows *sql.Rows) ([]model.StoredLine, error) {
	defer rows.Close()
	var lines []model.StoredLine
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
