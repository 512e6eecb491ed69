package app

import (
	"fmt"
	"log/slog"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/config"
	"github.com/kroot-kaytetye/kroot-anonymous/internal/phonotactics"
)

// LogOverrides replace the configured log settings when non-empty.
type LogOverrides struct {
	Level  string
	Format string
}

// Env is what every command starts from.
type Env struct {
	Config *config.Config
	Log    *slog.Logger
}

// Bootstrap loads the configuration, applies log overrides and installs
// the logger as the slog default.
func Bootstrap(configPath string, o LogOverrides) (*Env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if o.Level != "" {
		cfg.Log.Level = o.Level
	}
	if o.Format != "" {
		cfg.Log.Format = o.Format
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logger := NewLogger(cfg.Log)
	logger.Debug("configuration loaded",
		slog.String("version", BuildVersion()),
		slog.String("vowels", cfg.Phonology.Vowels),
		slog.Bool("store", cfg.Store.Enabled),
	)

	return &Env{Config: cfg, Log: logger}, nil
}

// NewAnalyzer builds the statistics core from the phonology settings.
func NewAnalyzer(cfg config.PhonologyConfig) (*phonotactics.Analyzer, error) {
	vc, err := phonotactics.NewVowelClass(cfg.Vowels)
	if err != nil {
		return nil, err
	}
	return phonotactics.New(vc), nil
}
