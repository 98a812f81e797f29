// Package file loads and persists configuration from a TOML file in
// the docstash config directory.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the runtime settings. Zero values fall back to the
// defaults applied in Load.
type Config struct {
	// DataDir is where the document database and search index live.
	// Empty means ~/.docstash/data.
	DataDir string `toml:"data_dir"`

	// OCRLanguage is the language code passed to the OCR engine.
	OCRLanguage string `toml:"ocr_language"`

	// ExtractionTimeout bounds a single extraction, as a Go duration
	// string such as "2m" or "90s".
	ExtractionTimeout string `toml:"extraction_timeout"`

	// TesseractBinary and PdftotextBinary override the tool names
	// looked up on PATH.
	TesseractBinary string `toml:"tesseract_binary"`
	PdftotextBinary string `toml:"pdftotext_binary"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OCRLanguage:       "eng",
		ExtractionTimeout: "2m",
		TesseractBinary:   "tesseract",
		PdftotextBinary:   "pdftotext",
	}
}

// Load reads config.toml from configDir, applying defaults for any
// missing setting. A missing file yields the defaults. If configDir is
// empty, ~/.docstash is used.
func Load(configDir string) (*Config, error) {
	dir, err := resolveDir(configDir)
	if err != nil {
		return nil, err
	}

	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to config.toml in configDir, creating
// the directory if needed.
func (c *Config) Save(configDir string) error {
	dir, err := resolveDir(configDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, "config.toml"), data, 0600)
}

// ResolveDataDir returns the data directory, creating it if needed.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".docstash", "data")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// Timeout parses ExtractionTimeout, falling back to the default on an
// invalid value.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.ExtractionTimeout)
	if err != nil || d <= 0 {
		fallback, _ := time.ParseDuration(Default().ExtractionTimeout)
		return fallback
	}
	return d
}

func (c *Config) applyDefaults() {
	defaults := Default()
	if c.OCRLanguage == "" {
		c.OCRLanguage = defaults.OCRLanguage
	}
	if c.ExtractionTimeout == "" {
		c.ExtractionTimeout = defaults.ExtractionTimeout
	}
	if c.TesseractBinary == "" {
		c.TesseractBinary = defaults.TesseractBinary
	}
	if c.PdftotextBinary == "" {
		c.PdftotextBinary = defaults.PdftotextBinary
	}
}

func resolveDir(configDir string) (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".docstash"), nil
}
