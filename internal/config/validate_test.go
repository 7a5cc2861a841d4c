package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig_ReturnsNil(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := Validate(&cfg); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidate_InvalidFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Config)
	}{
		{"log_level", func(c *Config) { c.LogLevel = "verbose" }},
		{"log_file", func(c *Config) { c.LogFile = "" }},
		{"log_max_size_mb", func(c *Config) { c.LogMaxSizeMB = 0 }},
		{"log_max_backups", func(c *Config) { c.LogMaxBackups = -1 }},
		{"export.output_dir", func(c *Config) { c.Export.OutputDir = "  " }},
		{"export.filter", func(c *Config) { c.Export.Filter = "nearest" }},
		{"export.compression", func(c *Config) { c.Export.Compression = "zip" }},
		{"watch.min_interval_ms", func(c *Config) { c.Watch.MinIntervalMs = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}

			errs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
			}
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("Validate() errors = %v, want one error for %s", errs, tt.field)
			}
		})
	}
}

func TestValidate_AcceptsEveryFilterAndCompression(t *testing.T) {
	for _, filter := range []string{"lanczos3", "bicubic", "mitchell", "catmullrom", "bilinear", "Lanczos3"} {
		for _, compression := range []string{"default", "none", "best-speed", "best-compression"} {
			cfg := NewDefaultConfig()
			cfg.Export.Filter = filter
			cfg.Export.Compression = compression
			if err := Validate(&cfg); err != nil {
				t.Errorf("Validate(filter=%s, compression=%s) = %v", filter, compression, err)
			}
		}
	}
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := NewDefaultConfig()
	for _, level := range []string{"DEBUG", "Warning", " error "} {
		cfg.LogLevel = level
		if err := Validate(&cfg); err != nil {
			t.Errorf("Validate(log_level=%q) = %v, want nil", level, err)
		}
	}
}

func TestValidate_MultipleErrors_ReturnsAllErrors(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.LogLevel = ""
	cfg.Export.Filter = "bogus"
	cfg.Watch.MinIntervalMs = -1

	err := Validate(&cfg)
	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Validate() error type = %T, want ValidationErrors", err)
	}
	if len(errs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestValidationError_Error_FormatsCorrectly(t *testing.T) {
	err := ValidationError{Field: "export.filter", Message: "must not be empty"}
	if got, want := err.Error(), "export.filter: must not be empty"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_Error_FormatsMultiple(t *testing.T) {
	errs := ValidationErrors{
		{Field: "log_level", Message: "bad"},
		{Field: "export.filter", Message: "worse"},
	}

	got := errs.Error()
	if !strings.HasPrefix(got, "config validation failed:\n") {
		t.Errorf("Error() = %q, want validation header", got)
	}
	if !strings.Contains(got, "  - log_level: bad\n") || !strings.Contains(got, "  - export.filter: worse\n") {
		t.Errorf("Error() = %q, missing entries", got)
	}
}

func TestValidationErrors_Error_SingleAndEmpty(t *testing.T) {
	single := ValidationErrors{{Field: "log_file", Message: "must not be empty"}}
	if got := single.Error(); got != "log_file: must not be empty" {
		t.Errorf("Error() = %q", got)
	}
	if got := (ValidationErrors{}).Error(); got != "" {
		t.Errorf("Error() = %q, want empty", got)
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ValidationError{Field: "f", Message: "m"}) {
		t.Error("IsValidationError(ValidationError) = false")
	}
	if !IsValidationError(ValidationErrors{{Field: "f", Message: "m"}}) {
		t.Error("IsValidationError(ValidationErrors) = false")
	}
	if IsValidationError(&testError{}) {
		t.Error("IsValidationError(other) = true")
	}
}

type testError struct{}

func (e *testError) Error() string { return "test error" }
