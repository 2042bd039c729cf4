// Package config loads the builder's YAML configuration.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	Content ContentConfig `yaml:"content"`
	Output  OutputConfig  `yaml:"output"`
	Preview PreviewConfig `yaml:"preview"`
	History HistoryConfig `yaml:"history"`
}

// ContentConfig points at the input tree: the hand-written pages, the
// generated doc dumps, and the site chrome.
type ContentConfig struct {
	Pages     string       `yaml:"pages"`
	Docs      string       `yaml:"docs"`
	Assets    string       `yaml:"assets"`
	Static    string       `yaml:"static"`
	Templates string       `yaml:"templates"`
	Repo      *ContentRepo `yaml:"repo,omitempty"`
}

// ContentRepo declares the git repository holding the content tree,
// consumed by the fetch command.
type ContentRepo struct {
	URL    string `yaml:"url"`
	Branch string `yaml:"branch,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// OutputConfig controls where the built site is written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// PreviewConfig controls the local preview server.
type PreviewConfig struct {
	Addr    string `yaml:"addr"`
	Metrics bool   `yaml:"metrics"`
}

// HistoryConfig controls the build-history database.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Load reads and validates configuration from the given path. A .env
// file in the working directory is loaded first when present.
func Load(configPath string) (*Config, error) {
	// Best effort: a missing .env is fine.
	_ = godotenv.Load()

	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", configPath, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse configuration %s: %w", configPath, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", configPath, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Content.Pages == "" {
		c.Content.Pages = "pages"
	}
	if c.Content.Docs == "" {
		c.Content.Docs = "docs"
	}
	if c.Content.Assets == "" {
		c.Content.Assets = "assets"
	}
	if c.Content.Static == "" {
		c.Content.Static = "static"
	}
	if c.Content.Templates == "" {
		c.Content.Templates = "templates"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "public"
	}
	if c.Preview.Addr == "" {
		c.Preview.Addr = ":8080"
	}
	if c.History.Path == "" {
		c.History.Path = ".stratawiki/history.db"
	}
	if c.Content.Repo != nil && c.Content.Repo.Dir == "" {
		c.Content.Repo.Dir = ".stratawiki/content"
	}
}

func (c *Config) validate() error {
	if c.Output.Directory == "/" || c.Output.Directory == "." {
		return fmt.Errorf("output.directory %q is not usable", c.Output.Directory)
	}
	if c.Content.Repo != nil && c.Content.Repo.URL == "" {
		return fmt.Errorf("content.repo declared without a url")
	}
	return nil
}

// Default returns the configuration written by the init command.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
