package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rcliao/ff7r-text/internal/extract"
	"github.com/rcliao/ff7r-text/internal/model"
	"github.com/rcliao/ff7r-text/internal/uasset/uassettest"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs(args)
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out.String()
}

func writeData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("FF7R_TEXT_DATA", "")
	t.Setenv("FF7R_TEXT_OUT", "")
	uassettest.WritePair(t, filepath.Join(dir, "data", "US"), "Main_TxtRes",
		uassettest.NewHeader("ACTOR").Bytes(),
		uassettest.Records(
			uassettest.Actor("M1", "Not interested.", "Cloud"),
			uassettest.Line{ID: "M2", Text: "Narration"},
		))
	return dir
}

func TestDump(t *testing.T) {
	dir := writeData(t)

	out := run(t, "dump", filepath.Join(dir, "data", "US", "Main_TxtRes.uexp"))
	var lines []model.Line
	if err := json.Unmarshal([]byte(out), &lines); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Speaker() != "Cloud" || lines[1].Speaker() != "" {
		t.Errorf("unexpected speakers %q, %q", lines[0].Speaker(), lines[1].Speaker())
	}
}

func TestExtractThenList(t *testing.T) {
	dir := writeData(t)
	db := filepath.Join(dir, "lines.db")

	out := run(t, "extract", "--db", db, "--store", "--workers", "2")
	var report extract.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(report.Regions) != 1 || report.Regions[0].Written != 1 || report.Regions[0].Skipped != 1 {
		t.Errorf("unexpected report %+v", report.Regions)
	}

	csv, err := os.ReadFile(filepath.Join(dir, "out", "US.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(csv), `"M1","Cloud","Not interested."`) {
		t.Errorf("unexpected csv %q", csv)
	}

	out = run(t, "list", "--db", db, "--region", "US", "--ids-only")
	if out != "US/Main_TxtRes/M1\nUS/Main_TxtRes/M2\n" {
		t.Errorf("unexpected list output %q", out)
	}
}
