package config

import "time"

// Config is the root application configuration.
type Config struct {
	Phonology PhonologyConfig `yaml:"phonology"`
	Output    OutputConfig    `yaml:"output"`
	Database  DatabaseConfig  `yaml:"database"`
	Store     StoreConfig     `yaml:"store"`
	Log       LogConfig       `yaml:"log"`
}

// PhonologyConfig describes how lexicon entries are read.
type PhonologyConfig struct {
	Vowels            string `yaml:"vowels"             env:"PHONOLOGY_VOWELS"             env-default:"ɐəiu:"`
	SyllableDelimiter string `yaml:"syllable_delimiter" env:"PHONOLOGY_SYLLABLE_DELIMITER" env-default:"."`
}

// OutputConfig holds settings for the files a run writes.
type OutputConfig struct {
	// Dir defaults to the directory of the first lexicon file when empty.
	Dir      string `yaml:"dir"      env:"OUTPUT_DIR"`
	Manifest bool   `yaml:"manifest" env:"OUTPUT_MANIFEST" env-default:"true"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	// ApplicationName is reported to the server unless the DSN sets one.
	ApplicationName string `yaml:"application_name" env:"DATABASE_APPLICATION_NAME" env-default:"kroot"`
}

// StoreConfig controls persisting runs to the database.
type StoreConfig struct {
	Enabled   bool   `yaml:"enabled"    env:"STORE_ENABLED"    env-default:"false"`
	BatchSize int    `yaml:"batch_size" env:"STORE_BATCH_SIZE" env-default:"500"`
	Label     string `yaml:"label"      env:"STORE_LABEL"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
