// Package discover finds region directories and package files under a data directory.
package discover

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rcliao/ff7r-text/internal/uasset"
)

// ErrNoRegions is returned when the data directory has no region directories.
var ErrNoRegions = errors.New("no region directories found")

// Regions returns the names of the region directories in dataDir, sorted.
// Hidden entries (including .gitkeep) are ignored.
func Regions(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var regions []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		regions = append(regions, e.Name())
	}
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}
	sort.Strings(regions)
	return regions, nil
}

// Packages returns the header file paths directly inside regionDir, sorted.
func Packages(regionDir string) ([]string, error) {
	entries, err := os.ReadDir(regionDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), uasset.HeaderExt) {
			continue
		}
		files = append(files, filepath.Join(regionDir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// Filter keeps the regions named in only, preserving order. An empty filter keeps all.
func Filter(regions, only []string) []string {
	if len(only) == 0 {
		return regions
	}
	keep := make(map[string]bool, len(only))
	for _, r := range only {
		keep[r] = true
	}
	var out []string
	for _, r := range regions {
		if keep[r] {
			out = append(out, r)
		}
	}
	return out
}
