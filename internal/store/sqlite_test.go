package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rcliao/ff7r-text/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func line(id, speaker, text string) model.Line {
	meta := map[string]string{}
	if speaker != "" {
		meta[model.SpeakerKey] = speaker
	}
	return model.Line{ID: id, Text: text, Meta: meta}
}

func seed(t *testing.T, s *SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	_, err := s.ReplacePackage(ctx, PackageParams{RunID: "run1", Region: "US", Package: "Main_TxtRes", Lines: []model.Line{
		line("M1", "Cloud", "Not interested."),
		line("M2", "Barret", "Ain't nobody asking you!"),
		line("M3", "", "Narration"),
	}})
	if err != nil {
		t.Fatalf("seed US: %v", err)
	}
	_, err = s.ReplacePackage(ctx, PackageParams{RunID: "run1", Region: "JP", Package: "Main_TxtRes", Lines: []model.Line{
		line("M1", "クラウド", "興味ないね"),
	}})
	if err != nil {
		t.Fatalf("seed JP: %v", err)
	}
}

func TestReplacePackageAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	got, err := s.Get(ctx, "US", "M2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 result, got %d", len(got))
	}
	if got[0].Speaker != "Barret" || got[0].Text != "Ain't nobody asking you!" {
		t.Errorf("unexpected line %+v", got[0])
	}
	if got[0].ID == "" || got[0].RunID != "run1" || got[0].Package != "Main_TxtRes" {
		t.Errorf("expected id, run and package set, got %+v", got[0])
	}
	if diff := cmp.Diff(map[string]string{"ACTOR": "Barret"}, got[0].Meta); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.Get(ctx, "US", "missing"); err == nil {
		t.Error("expected error for missing line")
	}
}

func TestReplacePackageIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	n, err := s.ReplacePackage(ctx, PackageParams{RunID: "run2", Region: "US", Package: "Main_TxtRes", Lines: []model.Line{
		line("M1", "Cloud", "Let's mosey."),
	}})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 stored, got %d", n)
	}

	us, _ := s.List(ctx, ListParams{Region: "US"})
	if len(us) != 1 || us[0].Text != "Let's mosey." || us[0].RunID != "run2" {
		t.Errorf("expected only the replacement line, got %+v", us)
	}
	jp, _ := s.List(ctx, ListParams{Region: "JP"})
	if len(jp) != 1 {
		t.Errorf("expected other region untouched, got %d lines", len(jp))
	}
}

func TestReplacePackageRequiresKeys(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ReplacePackage(context.Background(), PackageParams{Region: "US"}); err == nil {
		t.Error("expected error without package")
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	all, _ := s.List(ctx, ListParams{})
	if len(all) != 4 {
		t.Errorf("expected 4, got %d", len(all))
	}

	us, _ := s.List(ctx, ListParams{Region: "US"})
	var ids []string
	for _, l := range us {
		ids = append(ids, l.LineID)
	}
	if diff := cmp.Diff([]string{"M1", "M2", "M3"}, ids); diff != "" {
		t.Errorf("expected file order (-want +got):\n%s", diff)
	}

	cloud, _ := s.List(ctx, ListParams{Speaker: "Cloud"})
	if len(cloud) != 1 {
		t.Errorf("expected 1 Cloud line, got %d", len(cloud))
	}

	limited, _ := s.List(ctx, ListParams{Limit: 2})
	if len(limited) != 2 {
		t.Errorf("expected 2 with limit, got %d", len(limited))
	}
}

func TestRemoveRegion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	n, err := s.RemoveRegion(ctx, "US")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 removed, got %d", n)
	}
	if _, err := s.Get(ctx, "US", "M1"); err == nil {
		t.Error("expected error after removing region")
	}
	if _, err := s.Get(ctx, "JP", "M1"); err != nil {
		t.Errorf("expected JP line kept: %v", err)
	}
}

func TestStatsAndRegions(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "stats.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	seed(t, s)

	st, err := s.Stats(ctx, dbPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalLines != 4 || st.Speakers != 3 || st.LastRunID != "run1" {
		t.Errorf("unexpected stats %+v", st)
	}
	if st.DBSizeBytes == 0 {
		t.Error("expected nonzero db size")
	}
	want := []RegionStats{
		{Region: "JP", Lines: 1, Packages: 1, Speakers: 1},
		{Region: "US", Lines: 3, Packages: 1, Speakers: 2},
	}
	if diff := cmp.Diff(want, st.Regions); diff != "" {
		t.Errorf("regions mismatch (-want +got):\n%s", diff)
	}
}

func TestExportAllAndLines(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	seed(t, s)

	stored, err := s.ExportAll(ctx, "US")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	lines := Lines(stored)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !lines[0].Exportable() || lines[2].Exportable() {
		t.Errorf("expected speaker round-trip through meta, got %+v", lines)
	}

	all, _ := s.ExportAll(ctx, "")
	if len(all) != 4 {
		t.Errorf("expected 4 lines across regions, got %d", len(all))
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestNewIDUnique(t *testing.T) {
	s := newTestStore(t)
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := s.NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}
