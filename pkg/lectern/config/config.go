package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/lectern/pkg/lectern/internalerr"
)

// DefaultFile is looked up in the working directory when no config path is given.
const DefaultFile = "lectern.yaml"

// CorpusConfig describes how corpus files are discovered: prefix, then
// 1..MaxDigits digits, then Extension (W1.pdf … W11.pdf by default).
type CorpusConfig struct {
	Prefix    string `yaml:"prefix" validate:"required"`
	MaxDigits int    `yaml:"max_digits" validate:"min=1,max=9"`
	Extension string `yaml:"extension" validate:"required,startswith=."`
}

// AnalysisConfig tunes keyword and missing-term sections.
type AnalysisConfig struct {
	TopKeywords  int  `yaml:"top_keywords" validate:"min=1"`
	MissingLimit int  `yaml:"missing_limit" validate:"min=0"`
	MinTokenLen  int  `yaml:"min_token_len" validate:"min=1"`
	UnicodeNFC   bool `yaml:"unicode_nfc"`
}

// CacheConfig configures the optional SQLite extraction cache.
type CacheConfig struct {
	Path string `yaml:"path"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Config is the root configuration of an analysis run.
type Config struct {
	Dir            string         `yaml:"dir"`
	Reference      string         `yaml:"reference" validate:"required"`
	Corpus         CorpusConfig   `yaml:"corpus"`
	Output         string         `yaml:"output" validate:"required"`
	Analysis       AnalysisConfig `yaml:"analysis"`
	Stoplists      []string       `yaml:"stoplists"`
	ExtraStopwords []string       `yaml:"extra_stopwords"`
	Workers        int            `yaml:"workers" validate:"min=1,max=64"`
	SkipUnreadable bool           `yaml:"skip_unreadable"`
	Cache          CacheConfig    `yaml:"cache"`
	Log            LogConfig      `yaml:"log"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Dir:       ".",
		Reference: "test_python.pdf",
		Corpus: CorpusConfig{
			Prefix:    "W",
			MaxDigits: 2,
			Extension: ".pdf",
		},
		Output: "COVERAGE_REPORT.md",
		Analysis: AnalysisConfig{
			TopKeywords:  50,
			MissingLimit: 60,
			MinTokenLen:  3,
			UnicodeNFC:   true,
		},
		Workers: 1,
		Log:     LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads a YAML config file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load but returns the defaults when path does not exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Environment variables recognised by ApplyEnv.
const (
	EnvDir            = "LECTERN_DIR"
	EnvReference      = "LECTERN_REFERENCE"
	EnvOutput         = "LECTERN_OUTPUT"
	EnvWorkers        = "LECTERN_WORKERS"
	EnvCache          = "LECTERN_CACHE"
	EnvLogLevel       = "LECTERN_LOG_LEVEL"
	EnvSkipUnreadable = "LECTERN_SKIP_UNREADABLE"
)

// ApplyEnv overrides fields from environment variables. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvDir); ok && v != "" {
		c.Dir = v
	}
	if v, ok := lookup(EnvReference); ok && v != "" {
		c.Reference = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvCache); ok {
		c.Cache.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", internalerr.ErrInvalidConfig, EnvWorkers, v)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvSkipUnreadable); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", internalerr.ErrInvalidConfig, EnvSkipUnreadable, v)
		}
		c.SkipUnreadable = b
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints. Errors wrap internalerr.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", internalerr.ErrInvalidConfig, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	return nil
}

// Path resolves name against Dir unless it is absolute.
func (c *Config) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Dir, name)
}

// ReferencePath is the resolved reference document path.
func (c *Config) ReferencePath() string { return c.Path(c.Reference) }

// OutputPath is the resolved report path.
func (c *Config) OutputPath() string { return c.Path(c.Output) }

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, err
	}

	return &sl, nil
}
