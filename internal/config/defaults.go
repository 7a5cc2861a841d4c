package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel      = "info"
	DefaultLogFile       = "~/.config/icns-extractor/icns-extractor.log"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3

	// Export defaults.
	DefaultExportOutputDir   = "."
	DefaultExportFilter      = "lanczos3"
	DefaultExportCompression = "default"
	DefaultExportTOC         = false

	// Watch defaults.
	DefaultWatchMinIntervalMs = 500
)

// NewDefaultConfig returns a Config populated with default values.
func NewDefaultConfig() Config {
	return Config{
		LogLevel:      DefaultLogLevel,
		LogFile:       DefaultLogFile,
		LogMaxSizeMB:  DefaultLogMaxSizeMB,
		LogMaxBackups: DefaultLogMaxBackups,
		Export: ExportConfig{
			OutputDir:   DefaultExportOutputDir,
			Filter:      DefaultExportFilter,
			Compression: DefaultExportCompression,
			TOC:         DefaultExportTOC,
		},
		Watch: WatchConfig{
			MinIntervalMs: DefaultWatchMinIntervalMs,
		},
	}
}

// setViperDefaults registers all default configuration values with a viper instance.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)
	v.SetDefault("log_max_size_mb", DefaultLogMaxSizeMB)
	v.SetDefault("log_max_backups", DefaultLogMaxBackups)

	v.SetDefault("export.output_dir", DefaultExportOutputDir)
	v.SetDefault("export.filter", DefaultExportFilter)
	v.SetDefault("export.compression", DefaultExportCompression)
	v.SetDefault("export.toc", DefaultExportTOC)

	v.SetDefault("watch.min_interval_ms", DefaultWatchMinIntervalMs)
}
