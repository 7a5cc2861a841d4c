package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leefowlercu/icns-extractor/internal/icns"
	"github.com/leefowlercu/icns-extractor/internal/logging"
	"github.com/leefowlercu/icns-extractor/internal/resample"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if _, ok := logging.ParseLevel(cfg.LogLevel); !ok {
		errs = append(errs, ValidationError{
			Field: "log_level",
			Message: fmt.Sprintf("must be one of: %s; got %q",
				strings.Join(logging.LevelNames(), ", "), cfg.LogLevel),
		})
	}

	if cfg.LogFile == "" {
		errs = append(errs, ValidationError{
			Field:   "log_file",
			Message: "must not be empty",
		})
	}

	if cfg.LogMaxSizeMB < 1 {
		errs = append(errs, ValidationError{
			Field:   "log_max_size_mb",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.LogMaxSizeMB),
		})
	}

	if cfg.LogMaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log_max_backups",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.LogMaxBackups),
		})
	}

	if strings.TrimSpace(cfg.Export.OutputDir) == "" {
		errs = append(errs, ValidationError{
			Field:   "export.output_dir",
			Message: "must not be empty",
		})
	}

	if !resample.IsValidFilter(cfg.Export.Filter) {
		errs = append(errs, ValidationError{
			Field: "export.filter",
			Message: fmt.Sprintf("must be one of: %s; got %q",
				strings.Join(resample.FilterNames(), ", "), cfg.Export.Filter),
		})
	}

	if _, err := icns.ParseCompression(cfg.Export.Compression); err != nil {
		errs = append(errs, ValidationError{
			Field:   "export.compression",
			Message: fmt.Sprintf("must be one of: default, none, best-speed, best-compression; got %q", cfg.Export.Compression),
		})
	}

	if cfg.Watch.MinIntervalMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.min_interval_ms",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Watch.MinIntervalMs),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
