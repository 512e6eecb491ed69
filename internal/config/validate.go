package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/kroot-kaytetye/kroot-anonymous/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically. Flag
// overrides applied after Load should be followed by another Validate.
func (c *Config) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(c.Phonology.Vowels) == "" {
		errs = append(errs, domain.FieldError{Field: "phonology.vowels", Message: "must not be empty"})
	}

	delim := c.Phonology.SyllableDelimiter
	if utf8.RuneCountInString(delim) != 1 {
		errs = append(errs, domain.FieldError{
			Field:   "phonology.syllable_delimiter",
			Message: fmt.Sprintf("must be exactly one character (got %q)", delim),
		})
	} else if strings.Contains(c.Phonology.Vowels, delim) {
		errs = append(errs, domain.FieldError{
			Field:   "phonology.syllable_delimiter",
			Message: fmt.Sprintf("%q is part of the vowel class", delim),
		})
	}

	if c.Store.Enabled && c.Database.DSN == "" {
		errs = append(errs, domain.FieldError{Field: "database.dsn", Message: "required when store is enabled"})
	}
	if c.Store.BatchSize <= 0 {
		errs = append(errs, domain.FieldError{
			Field:   "store.batch_size",
			Message: fmt.Sprintf("must be > 0 (got %d)", c.Store.BatchSize),
		})
	}

	if err := c.Log.validate(); err != nil {
		errs = append(errs, *err)
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (l LogConfig) validate() *domain.FieldError {
	switch l.Format {
	case "json", "text":
	default:
		return &domain.FieldError{Field: "log.format", Message: fmt.Sprintf("must be json or text (got %q)", l.Format)}
	}
	switch strings.ToLower(l.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return &domain.FieldError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", l.Level)}
	}
}
