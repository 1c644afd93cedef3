package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var CurrentProfile = "pricer"

func GetConfigDir() (string, error) {
	if dir := os.Getenv("PRICER_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "pricer"), nil
}

func GetConfigFilePath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("%s.yml", CurrentProfile)), nil
}

func EnsureConfigDir() error {
	dir, err := GetConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// DefaultConfig is used when no config file exists; LoadConfig also fills
// any zero fields from it.
func DefaultConfig() *Config {
	return &Config{
		Dataset:    Dataset{Repo: "McAuley-Lab/Amazon-Reviews-2023", Revision: "main"},
		Categories: []string{"Appliances"},
		Workers:    8,
		Tokenizer:  "cl100k_base",
		EvalSize:   250,
		LLM:        LLM{Provider: "openai", Model: "gpt-4o-mini", Temperature: 0.7},
	}
}

func LoadConfig() (*Config, error) {
	path, err := GetConfigFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := GetConfigFilePath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Dataset.Repo == "" {
		cfg.Dataset.Repo = def.Dataset.Repo
	}
	if cfg.Dataset.Revision == "" {
		cfg.Dataset.Revision = def.Dataset.Revision
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.Tokenizer == "" {
		cfg.Tokenizer = def.Tokenizer
	}
	if cfg.EvalSize <= 0 {
		cfg.EvalSize = def.EvalSize
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = def.LLM.Provider
	}
}

// AddCategory appends name to the configured categories. Returns false if it is already present.
func AddCategory(cfg *Config, name string) bool {
	for _, c := range cfg.Categories {
		if c == name {
			return false
		}
	}
	cfg.Categories = append(cfg.Categories, name)
	return true
}

// RemoveCategory removes name. Returns false if not found.
func RemoveCategory(cfg *Config, name string) bool {
	for i, c := range cfg.Categories {
		if c == name {
			cfg.Categories = append(cfg.Categories[:i], cfg.Categories[i+1:]...)
			return true
		}
	}
	return false
}
