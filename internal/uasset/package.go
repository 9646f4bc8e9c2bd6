package uasset

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rcliao/ff7r-text/internal/model"
)

// File extensions of the two halves of a package.
const (
	HeaderExt = ".uasset"
	RecordExt = ".uexp"
)

// Loader reads a whole file into memory.
type Loader interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// FileLoader loads files from the local filesystem.
type FileLoader struct{}

func (FileLoader) Load(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// Pair names the header and record files of one package.
type Pair struct {
	Header string `json:"header"`
	Record string `json:"record"`
}

// PairFor derives both filenames from either one. The extension match is
// case-insensitive and only the extension is substituted.
func PairFor(filename string) (Pair, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, HeaderExt):
		stem := filename[:len(filename)-len(HeaderExt)]
		return Pair{Header: filename, Record: stem + RecordExt}, nil
	case strings.HasSuffix(lower, RecordExt):
		stem := filename[:len(filename)-len(RecordExt)]
		return Pair{Header: stem + HeaderExt, Record: filename}, nil
	default:
		return Pair{}, newError(KindInvalidInput, -1, "filename must end with %s or %s but got %s", HeaderExt, RecordExt, filename)
	}
}

// Package is a fully parsed header and record file pair.
type Package struct {
	Pair    Pair     `json:"pair"`
	Header  *Header  `json:"header"`
	Records *Records `json:"records"`
}

// Open parses the package that filename belongs to from the local filesystem.
func Open(ctx context.Context, filename string, opts Options) (*Package, error) {
	p, err := PairFor(filename)
	if err != nil {
		return nil, err
	}
	return p.Read(ctx, FileLoader{}, opts)
}

// Read loads and parses the header, then the record file against its names.
func (p Pair) Read(ctx context.Context, loader Loader, opts Options) (*Package, error) {
	buf, err := loader.Load(ctx, p.Header)
	if err != nil {
		return nil, fmt.Errorf("load header: %w", err)
	}
	header, err := ParseHeader(buf, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Header, err)
	}

	buf, err = loader.Load(ctx, p.Record)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	records, err := ParseRecords(buf, header.Names, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Record, err)
	}

	return &Package{Pair: p, Header: header, Records: records}, nil
}

// Lines returns the parsed lines in file order.
func (p *Package) Lines() []model.Line { return p.Records.Lines }
