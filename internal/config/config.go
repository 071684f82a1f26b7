package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the generation settings read from the YAML config file,
// with environment variable overrides.
type Config struct {
	Definitions struct {
		Path string `yaml:"path"`
	} `yaml:"definitions"`
	Book struct {
		PartTitle    string `yaml:"part_title"`
		NavDepth     int    `yaml:"nav_depth"`
		HeadingLevel int    `yaml:"heading_level"`
		OutputDir    string `yaml:"output_dir"`
	} `yaml:"book"`
}

func defaults() *Config {
	var cfg Config
	cfg.Book.PartTitle = "API Reference"
	cfg.Book.HeadingLevel = 2
	cfg.Book.OutputDir = "docs"
	return &cfg
}

// LoadConfig reads the config file at path. A missing file yields the
// defaults; a malformed file is an error.
func LoadConfig(path string) (*Config, error) {
	// Load .env if exists
	_ = godotenv.Load()

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overrides file values with environment variables if present.
func applyEnv(cfg *Config) {
	if path := os.Getenv("CATSDOC_DEFINITIONS_PATH"); path != "" {
		cfg.Definitions.Path = path
	}
	if dir := os.Getenv("CATSDOC_OUTPUT_DIR"); dir != "" {
		cfg.Book.OutputDir = dir
	}
}
