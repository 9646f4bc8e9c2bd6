// Package extract drives a batch extraction: every package of every region
// directory is parsed and written to one CSV per region, and optionally to the
// line store.
package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rcliao/ff7r-text/internal/ctxlog"
	"github.com/rcliao/ff7r-text/internal/discover"
	"github.com/rcliao/ff7r-text/internal/sink"
	"github.com/rcliao/ff7r-text/internal/store"
	"github.com/rcliao/ff7r-text/internal/uasset"
)

// LineStore receives each parsed package. *store.SQLiteStore satisfies it.
type LineStore interface {
	ReplacePackage(ctx context.Context, p store.PackageParams) (int, error)
}

// Options configures a run.
type Options struct {
	DataDir string
	OutDir  string
	// Regions limits the run to these region directories. Empty means all.
	Regions []string
	Workers int
	// KeepGoing logs and skips packages that fail to parse instead of aborting.
	KeepGoing bool
	Parser    uasset.Options
	// Store, when set, also receives every package's lines.
	Store  LineStore
	Loader uasset.Loader
}

// Report summarizes a run.
type Report struct {
	RunID   string         `json:"run_id"`
	Regions []RegionReport `json:"regions"`
}

// RegionReport summarizes one region.
type RegionReport struct {
	Region   string    `json:"region"`
	CSV      string    `json:"csv"`
	Packages int       `json:"packages"`
	Lines    int       `json:"lines"`
	Written  int       `json:"written"`
	Skipped  int       `json:"skipped"`
	Failures []Failure `json:"failures,omitempty"`
}

// Failure is a package skipped under KeepGoing.
type Failure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type result struct {
	pkg *uasset.Package
	err error
}

// Run extracts every selected region.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Loader == nil {
		opts.Loader = uasset.FileLoader{}
	}

	regions, err := discover.Regions(opts.DataDir)
	if err != nil {
		return nil, err
	}
	regions = discover.Filter(regions, opts.Regions)
	if len(regions) == 0 {
		return nil, fmt.Errorf("no region matches %s", strings.Join(opts.Regions, ", "))
	}

	report := &Report{RunID: ulid.Make().String()}
	log := ctxlog.FromContext(ctx).With("run_id", report.RunID)
	ctx = ctxlog.WithLogger(ctx, log)

	for _, region := range regions {
		rr, err := runRegion(ctx, opts, report.RunID, region)
		if err != nil {
			return report, fmt.Errorf("region %s: %w", region, err)
		}
		report.Regions = append(report.Regions, *rr)
	}
	return report, nil
}

func runRegion(ctx context.Context, opts Options, runID, region string) (*RegionReport, error) {
	log := ctxlog.FromContext(ctx).With("region", region)
	start := time.Now()
	log.Info("processing region")

	files, err := discover.Packages(filepath.Join(opts.DataDir, region))
	if err != nil {
		return nil, err
	}

	results, err := parseAll(ctx, opts, files)
	if err != nil {
		return nil, err
	}

	rr := &RegionReport{
		Region:   region,
		CSV:      filepath.Join(opts.OutDir, region+".csv"),
		Packages: len(files),
	}
	out, err := sink.Create(rr.CSV)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}

	for i, res := range results {
		if res.err != nil {
			log.Warn("skipping package", "file", files[i], "error", res.err)
			rr.Failures = append(rr.Failures, Failure{File: files[i], Error: res.err.Error()})
			continue
		}
		lines := res.pkg.Lines()
		rr.Lines += len(lines)
		if err := out.Write(lines); err != nil {
			out.Abort()
			return nil, fmt.Errorf("write csv: %w", err)
		}
		if opts.Store != nil {
			_, err := opts.Store.ReplacePackage(ctx, store.PackageParams{
				RunID:   runID,
				Region:  region,
				Package: packageName(files[i]),
				Lines:   lines,
			})
			if err != nil {
				out.Abort()
				return nil, fmt.Errorf("store %s: %w", files[i], err)
			}
		}
		log.Debug("package parsed", "file", files[i], "lines", len(lines))
	}

	if err := out.Commit(); err != nil {
		return nil, fmt.Errorf("commit csv: %w", err)
	}
	rr.Written, rr.Skipped = out.Written, out.Skipped

	log.Info("region done",
		"packages", rr.Packages, "lines", rr.Lines, "written", rr.Written,
		"failures", len(rr.Failures), "dur_ms", time.Since(start).Milliseconds())
	return rr, nil
}

// parseAll parses every package concurrently and returns results in input order.
// Without KeepGoing the first failure cancels the rest and is returned.
func parseAll(ctx context.Context, opts Options, files []string) ([]result, error) {
	results := make([]result, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)

	for i, file := range files {
		g.Go(func() error {
			pair, err := uasset.PairFor(file)
			if err == nil {
				results[i].pkg, err = pair.Read(gctx, opts.Loader, opts.Parser)
			}
			if err != nil {
				if !opts.KeepGoing {
					return err
				}
				results[i].err = err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func packageName(file string) string {
	base := filepath.Base(file)
	return base[:len(base)-len(filepath.Ext(base))]
}
