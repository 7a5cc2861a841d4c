// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/leefowlercu/icns-extractor/internal/config"
)

// TestEnv provides an isolated test environment with its own config
// directory, log file and export directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
	OutputDir string
}

// NewTestEnv creates an isolated test environment.
// Paths are overridden through environment variables so viper picks them up
// via AutomaticEnv. Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	outputDir := filepath.Join(root, "out")
	for _, dir := range []string{configDir, outputDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create test dir %s: %v", dir, err)
		}
	}

	t.Setenv("HOME", root)
	t.Setenv(config.ConfigDirEnv, configDir)
	t.Setenv(config.EnvPrefix+"_LOG_FILE", filepath.Join(configDir, "icns-extractor.log"))
	t.Setenv(config.EnvPrefix+"_EXPORT_OUTPUT_DIR", outputDir)

	env := &TestEnv{t: t, ConfigDir: configDir, OutputDir: outputDir}
	env.Reload()

	t.Cleanup(config.Reset)

	return env
}

// Reload re-reads configuration after the environment or config file changed.
func (e *TestEnv) Reload() {
	e.t.Helper()
	config.Reset()
	if err := config.Init(); err != nil {
		e.t.Fatalf("failed to initialize test config: %v", err)
	}
}

// ConfigPath returns where the test config file lives.
func (e *TestEnv) ConfigPath() string {
	return filepath.Join(e.ConfigDir, "config.yaml")
}

// WriteConfig writes content as the config file and reloads configuration.
func (e *TestEnv) WriteConfig(content string) string {
	e.t.Helper()
	path := e.ConfigPath()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write config file: %v", err)
	}
	e.Reload()
	return path
}

// CreateTestDir creates a directory within the test environment's temp space.
func (e *TestEnv) CreateTestDir(name string) string {
	e.t.Helper()

	dir := filepath.Join(e.t.TempDir(), "testdata", name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.t.Fatalf("failed to create test dir %s: %v", name, err)
	}
	return dir
}

// CreateTestFile creates a file with the given content.
func (e *TestEnv) CreateTestFile(dir, name, content string) string {
	e.t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to create test file %s: %v", path, err)
	}
	return path
}

// CreateTestPNG writes a w×h gradient PNG and returns its path.
func (e *TestEnv) CreateTestPNG(dir, name string, w, h int) string {
	e.t.Helper()
	return WritePNG(e.t, filepath.Join(dir, name), w, h)
}

// WritePNG writes a w×h gradient PNG to path.
func WritePNG(t *testing.T, path string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0x80, A: 0xff})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", path, err)
	}
	return path
}
