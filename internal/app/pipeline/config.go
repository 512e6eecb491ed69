package pipeline

import "github.com/kroot-kaytetye/kroot-anonymous/internal/config"

// Config holds pipeline settings.
type Config struct {
	Delimiter string
	// OutputDir defaults to the directory of the first lexicon file.
	OutputDir string
	Manifest  bool
	Store     bool
	BatchSize int
	Label     string
	// DryRun analyzes but writes nothing: no files, no database rows.
	DryRun bool
}

// ConfigFrom maps the application configuration onto pipeline settings.
func ConfigFrom(cfg *config.Config) Config {
	return Config{
		Delimiter: cfg.Phonology.SyllableDelimiter,
		OutputDir: cfg.Output.Dir,
		Manifest:  cfg.Output.Manifest,
		Store:     cfg.Store.Enabled,
		BatchSize: cfg.Store.BatchSize,
		Label:     cfg.Store.Label,
	}
}
