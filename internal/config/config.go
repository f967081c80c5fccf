// Package config loads process configuration from a TOML file with
// environment overrides, and hot-reloads the scrape query list when the
// file changes.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full process configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Mongo     MongoConfig     `toml:"mongo"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Auth      AuthConfig      `toml:"auth"`
	Scrape    ScrapeConfig    `toml:"scrape"`
	Sources   SourcesConfig   `toml:"sources"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`

	// AdminKey guards the admin endpoints. Empty disables them.
	AdminKey string `toml:"admin_key"`
}

// MongoConfig holds the document store settings.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// EmbeddingConfig selects and configures the embedding backend.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// AuthConfig holds token issuance settings.
type AuthConfig struct {
	Secret          string `toml:"secret"`
	TokenTTLMinutes int    `toml:"token_ttl_minutes"`
}

// ScrapeConfig drives the periodic ingestion cycle.
type ScrapeConfig struct {
	// Queries is the search term list. Edits to this list in the config
	// file take effect without a restart.
	Queries []string `toml:"queries"`

	Location      string `toml:"location"`
	PerQueryLimit int    `toml:"per_query_limit"`
	IntervalHours int    `toml:"interval_hours"`

	// AllowMock substitutes the placeholder catalog when an ingestion run
	// yields nothing.
	AllowMock bool `toml:"allow_mock"`
}

// SourcesConfig carries per-provider credentials and switches.
type SourcesConfig struct {
	JSearch  JSearchConfig  `toml:"jsearch"`
	Adzuna   AdzunaConfig   `toml:"adzuna"`
	LinkedIn LinkedInConfig `toml:"linkedin"`
}

// JSearchConfig holds the RapidAPI credentials.
type JSearchConfig struct {
	APIKey string `toml:"api_key"`
}

// AdzunaConfig holds the Adzuna application credentials.
type AdzunaConfig struct {
	AppID   string `toml:"app_id"`
	AppKey  string `toml:"app_key"`
	Country string `toml:"country"`
}

// LinkedInConfig switches the HTML scraper on and selects its mode.
type LinkedInConfig struct {
	Enabled bool `toml:"enabled"`

	// Minimal extracts only URL and employment type per card.
	Minimal bool `toml:"minimal"`
}

// LoggingConfig selects log encoding and verbosity.
type LoggingConfig struct {
	JSON  bool `toml:"json"`
	Debug bool `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8000"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "talentia",
		},
		Embedding: EmbeddingConfig{Provider: "ollama"},
		Auth:      AuthConfig{TokenTTLMinutes: 60},
		Scrape: ScrapeConfig{
			Queries: []string{
				"data scientist",
				"software engineer",
				"backend developer",
				"frontend developer",
				"full stack developer",
				"machine learning engineer",
				"devops engineer",
				"product manager",
			},
			Location:      "Morocco",
			PerQueryLimit: 20,
			IntervalHours: 6,
			AllowMock:     true,
		},
		Sources: SourcesConfig{
			Adzuna: AdzunaConfig{Country: "fr"},
		},
	}
}

// Load reads the TOML file at path over the defaults, then applies
// environment overrides. A missing file is not an error; the defaults and
// environment stand alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus environment.
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv layers well-known environment variables over the file values.
func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "TALENTIA_ADDR")
	setString(&c.Server.AdminKey, "TALENTIA_ADMIN_KEY")
	setString(&c.Mongo.URI, "TALENTIA_MONGO_URI")
	setString(&c.Mongo.Database, "TALENTIA_MONGO_DATABASE")
	setString(&c.Auth.Secret, "TALENTIA_SECRET_KEY")
	setString(&c.Embedding.Provider, "TALENTIA_EMBEDDING_PROVIDER")
	setString(&c.Embedding.BaseURL, "TALENTIA_EMBEDDING_BASE_URL")
	setString(&c.Embedding.Model, "TALENTIA_EMBEDDING_MODEL")
	setString(&c.Embedding.APIKey, "OPENAI_API_KEY")
	setString(&c.Sources.JSearch.APIKey, "RAPIDAPI_KEY")
	setString(&c.Sources.Adzuna.AppID, "ADZUNA_APP_ID")
	setString(&c.Sources.Adzuna.AppKey, "ADZUNA_APP_KEY")
	setInt(&c.Scrape.IntervalHours, "TALENTIA_SCRAPE_INTERVAL_HOURS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
