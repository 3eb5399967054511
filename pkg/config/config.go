package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Config holds process-wide configuration. Values in the settings table
// override the external service defaults per request; these are only the
// fallbacks resolved at the boundary.
type Config struct {
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`
	DatabaseBusyTimeout       time.Duration `koanf:"database_busy_timeout"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseFilePath          string        `koanf:"database_file_path"`
	Hostname                  string        `koanf:"-"`
	ServerHost                string        `koanf:"server_host"`
	ServerPort                int           `koanf:"server_port"`
	WorkerProcesses           int           `koanf:"worker_processes"`

	MetadataTimeout time.Duration `koanf:"metadata_timeout"`
	IndexerTimeout  time.Duration `koanf:"indexer_timeout"`
	DownloadTimeout time.Duration `koanf:"download_timeout"`

	// Process defaults for services that can also be configured through the
	// settings table. Stored settings win when present.
	AudiobookshelfURL   string `koanf:"audiobookshelf_url"`
	AudiobookshelfToken string `koanf:"audiobookshelf_token"`
	ProwlarrURL         string `koanf:"prowlarr_url"`
	ProwlarrAPIKey      string `koanf:"prowlarr_api_key"`
}

const (
	environmentENV = "ENVIRONMENT"
	envPrefix      = "BOOKSCOUT_"
)

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		DatabaseBusyTimeout:       5 * time.Second,
		Hostname:                  hostname,
		ServerPort:                5995,
		WorkerProcesses:           2,
		MetadataTimeout:           10 * time.Second,
		IndexerTimeout:            30 * time.Second,
		DownloadTimeout:           30 * time.Second,
		AudiobookshelfURL:         "http://localhost:13378",
		ProwlarrURL:               "http://localhost:9696",
	}

	switch os.Getenv(environmentENV) {
	case "development", "":
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}

	if err := loadOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadOverrides layers an optional YAML config file and BOOKSCOUT_* environment
// variables on top of the environment defaults.
func loadOverrides(cfg *Config) error {
	k := koanf.New(".")

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "./config.yaml"
	}
	if _, err := os.Stat(configFile); err == nil {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return errors.Wrap(err, "failed to load config file")
		}
	}

	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
