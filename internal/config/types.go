package config

import "time"

// Config is the root configuration structure for the application.
type Config struct {
	LogLevel      string       `yaml:"log_level" toml:"log_level" mapstructure:"log_level"`
	LogFile       string       `yaml:"log_file" toml:"log_file" mapstructure:"log_file"`
	LogMaxSizeMB  int          `yaml:"log_max_size_mb" toml:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int          `yaml:"log_max_backups" toml:"log_max_backups" mapstructure:"log_max_backups"`
	Export        ExportConfig `yaml:"export" toml:"export" mapstructure:"export"`
	Watch         WatchConfig  `yaml:"watch" toml:"watch" mapstructure:"watch"`
}

// ExportConfig holds defaults for icns export.
type ExportConfig struct {
	OutputDir   string `yaml:"output_dir" toml:"output_dir" mapstructure:"output_dir"`
	Filter      string `yaml:"filter" toml:"filter" mapstructure:"filter"`
	Compression string `yaml:"compression" toml:"compression" mapstructure:"compression"`
	TOC         bool   `yaml:"toc" toml:"toc" mapstructure:"toc"`
}

// WatchConfig holds settings for re-exporting on source changes.
type WatchConfig struct {
	MinIntervalMs int `yaml:"min_interval_ms" toml:"min_interval_ms" mapstructure:"min_interval_ms"`
}

// MinInterval returns MinIntervalMs as a duration.
func (w WatchConfig) MinInterval() time.Duration {
	return time.Duration(w.MinIntervalMs) * time.Millisecond
}
