package discover

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRegions(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, ".gitkeep"))
	touch(t, filepath.Join(dir, "US", "a.uasset"))
	touch(t, filepath.Join(dir, "JP", "a.uasset"))
	touch(t, filepath.Join(dir, "readme.txt"))
	os.Mkdir(filepath.Join(dir, ".cache"), 0o755)

	got, err := Regions(dir)
	if err != nil {
		t.Fatalf("regions: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"JP", "US"}) {
		t.Errorf("expected [JP US], got %v", got)
	}
}

func TestRegionsEmpty(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, ".gitkeep"))
	if _, err := Regions(dir); !errors.Is(err, ErrNoRegions) {
		t.Errorf("expected ErrNoRegions, got %v", err)
	}
}

func TestPackages(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.uasset"))
	touch(t, filepath.Join(dir, "b.uexp"))
	touch(t, filepath.Join(dir, "A.UASSET"))
	touch(t, filepath.Join(dir, "c.txt"))
	touch(t, filepath.Join(dir, "nested", "d.uasset"))

	got, err := Packages(dir)
	if err != nil {
		t.Fatalf("packages: %v", err)
	}
	want := []string{filepath.Join(dir, "A.UASSET"), filepath.Join(dir, "b.uasset")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFilter(t *testing.T) {
	all := []string{"DE", "JP", "US"}
	if got := Filter(all, nil); !reflect.DeepEqual(got, all) {
		t.Errorf("expected all regions, got %v", got)
	}
	if got := Filter(all, []string{"US", "FR", "DE"}); !reflect.DeepEqual(got, []string{"DE", "US"}) {
		t.Errorf("expected [DE US], got %v", got)
	}
}
