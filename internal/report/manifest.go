package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Manifest describes one run's outputs.
type Manifest struct {
	RunID           string    `yaml:"run_id"`
	Label           string    `yaml:"label,omitempty"`
	CreatedAt       time.Time `yaml:"created_at"`
	Version         string    `yaml:"version"`
	Inputs          []string  `yaml:"inputs"`
	LexiconChecksum string    `yaml:"lexicon_checksum"`
	VowelClass      string    `yaml:"vowel_class"`
	Words           int       `yaml:"words"`
	Vocabulary      int       `yaml:"vocabulary"`
	// VocabularySource is "extracted" or the vocabulary file path.
	VocabularySource string   `yaml:"vocabulary_source"`
	Slots            int      `yaml:"slots"`
	UncoveredSlots   []string `yaml:"uncovered_slots,omitempty"`
	Files            []string `yaml:"files"`
}

// WriteManifest writes m as manifest.yaml in dir.
func WriteManifest(dir string, m Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}
