package sink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rcliao/ff7r-text/internal/model"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`Who are you calling "buster", buster?`, `"Who are you calling ""buster"", buster?"`},
		{"", `""`},
		{"two\nlines", "\"two\nlines\""},
		{`"`, `""""`},
	}
	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCSVWriterFiltersLines(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewCSVWriter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	lines := []model.Line{
		{ID: "L1", Text: "Hello", Meta: map[string]string{"ACTOR": "Cloud"}},
		{ID: "L2", Text: "", Meta: map[string]string{"ACTOR": "Tifa"}},
		{ID: "L3", Text: "Nobody", Meta: map[string]string{}},
		{ID: "L4", Text: "Empty actor", Meta: map[string]string{"ACTOR": ""}},
		{ID: "L5", Text: `Say "hi"`, Meta: map[string]string{"ACTOR": "Barret", "ARTICLE": "a"}},
	}
	if err := w.Write(lines); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}

	want := Header +
		`"L1","Cloud","Hello"` + "\n" +
		`"L5","Barret","Say ""hi"""` + "\n"
	if buf.String() != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, buf.String())
	}
	if w.Written != 2 || w.Skipped != 3 {
		t.Errorf("expected 2 written / 3 skipped, got %d / %d", w.Written, w.Skipped)
	}
}

func TestFileCommit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "US.csv")

	f, err := Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	f.Write([]model.Line{{ID: "a", Text: "b", Meta: map[string]string{"ACTOR": "c"}}})
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected target absent before commit, got %v", err)
	}
	if err := f.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != Header+`"a","c","b"`+"\n" {
		t.Errorf("unexpected contents %q", got)
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the csv in the directory, got %d entries", len(entries))
	}
}

func TestFileAbortKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "US.csv")
	os.WriteFile(path, []byte("old"), 0o644)

	f, err := Create(path)
	if err != nil {
		t.Fatal(err)
	}
	f.Abort()

	got, _ := os.ReadFile(path)
	if string(got) != "old" {
		t.Errorf("expected existing file untouched, got %q", got)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected temp file removed, got %d entries", len(entries))
	}
}
