package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Emma-Ok/time-report/internal/config"
	"github.com/Emma-Ok/time-report/internal/osutil"
)

// fixedPathProvider points the config lookup at a test directory.
type fixedPathProvider struct {
	dir string
}

func (p fixedPathProvider) UserConfigDir() (string, error) {
	return p.dir, nil
}

func (p fixedPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func TestDefaultDepsMissingConfigFile(t *testing.T) {
	osutil.SetProvider(fixedPathProvider{dir: t.TempDir()})
	defer osutil.ResetProvider()

	d := DefaultDeps()
	if d.FileErr != nil {
		t.Fatalf("missing config file must not be an error, got %v", d.FileErr)
	}
	if d.File.IntervalMinutes != 60 {
		t.Errorf("IntervalMinutes = %d, want the default 60", d.File.IntervalMinutes)
	}
}

func TestDefaultDepsLoadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(fixedPathProvider{dir: dir})
	defer osutil.ResetProvider()

	appDir := filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "interval_minutes = 30\ndefault_tags = \"oficina\"\n"
	if err := os.WriteFile(filepath.Join(appDir, config.ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := DefaultDeps()
	if d.FileErr != nil {
		t.Fatalf("valid config file must load, got %v", d.FileErr)
	}
	if d.File.IntervalMinutes != 30 || d.File.DefaultTags != "oficina" {
		t.Errorf("file values not loaded: %+v", d.File)
	}
}

func TestDefaultDepsMalformedConfigFileSurfacesError(t *testing.T) {
	dir := t.TempDir()
	osutil.SetProvider(fixedPathProvider{dir: dir})
	defer osutil.ResetProvider()

	appDir := filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := "interval_minutes = \"not a number\"\n"
	if err := os.WriteFile(filepath.Join(appDir, config.ConfigFile), []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d := DefaultDeps()
	if d.FileErr == nil {
		t.Fatal("malformed config file must surface an error, not the defaults")
	}
}
