// Package config handles comparison configuration files and environment
// overrides.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/textreuse/iqtibas/internal/reuse"
)

// EnvCorpusDB is the environment override for the corpus database path.
const EnvCorpusDB = "IQTIBAS_CORPUS_DB"

// Config is the on-disk configuration: a corpus path plus comparison
// parameters.
type Config struct {
	CorpusDB   string       `yaml:"corpus_db"`
	Comparison reuse.Params `yaml:"comparison"`
}

// Default returns a config with default comparison parameters and no
// corpus path.
func Default() *Config {
	return &Config{Comparison: reuse.DefaultParams()}
}

// Load reads a YAML config file. Missing keys keep their defaults;
// unknown keys are an error so typos surface early.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reuse.WrapError(reuse.KindConfiguration, fmt.Errorf("reading config: %w", err))
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, reuse.WrapError(reuse.KindConfiguration, fmt.Errorf("parsing config %s: %w", path, err))
	}
	if err := cfg.Comparison.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv loads a .env file when present and applies environment
// overrides. The .env file never overwrites variables already set in
// the process environment.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()
	if v := os.Getenv(EnvCorpusDB); v != "" {
		c.CorpusDB = v
	}
}

// Save writes the config as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return reuse.WrapError(reuse.KindConfiguration, fmt.Errorf("encoding config: %w", err))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return reuse.WrapError(reuse.KindConfiguration, fmt.Errorf("writing config: %w", err))
	}
	return nil
}
