// Package sink writes extracted lines as CSV.
package sink

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rcliao/ff7r-text/internal/model"
)

// Header is the first row of every CSV file.
const Header = "ID,Speaker,Text\n"

// Quote wraps s in double quotes and doubles any quote inside it.
// Newlines are kept so multi-line dialogue stays one field.
func Quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVWriter writes exportable lines as (id, speaker, text) rows.
type CSVWriter struct {
	w       *bufio.Writer
	Written int
	Skipped int
}

// NewCSVWriter writes the header row and returns a writer for the rows.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(Header); err != nil {
		return nil, err
	}
	return &CSVWriter{w: bw}, nil
}

// Write emits one row per line with a speaker and text. Other lines are counted
// as skipped.
func (c *CSVWriter) Write(lines []model.Line) error {
	for _, l := range lines {
		if !l.Exportable() {
			c.Skipped++
			continue
		}
		row := Quote(l.ID) + "," + Quote(l.Speaker()) + "," + Quote(l.Text) + "\n"
		if _, err := c.w.WriteString(row); err != nil {
			return err
		}
		c.Written++
	}
	return nil
}

// Flush flushes buffered rows.
func (c *CSVWriter) Flush() error {
	return c.w.Flush()
}

// File is a CSV file written atomically: rows go to a temp file in the target
// directory, which is renamed over the target on Commit.
type File struct {
	*CSVWriter
	path string
	tmp  *os.File
}

// Create starts a new CSV file at path, creating parent directories.
func Create(path string) (*File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return nil, err
	}
	w, err := NewCSVWriter(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	return &File{CSVWriter: w, path: path, tmp: tmp}, nil
}

// Commit flushes and moves the file into place.
func (f *File) Commit() error {
	if err := f.Flush(); err != nil {
		f.Abort()
		return err
	}
	if err := f.tmp.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0o644); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the file. The target path is left untouched.
func (f *File) Abort() {
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}
