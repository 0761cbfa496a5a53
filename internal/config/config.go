package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultAPIBaseURL   = "https://hacker-news.firebaseio.com/v0"
	defaultTopLimit     = 30
	defaultFetchWorkers = 4
	defaultHTTPTimeout  = 10 * time.Second
	defaultPollInterval = 100 * time.Millisecond
	defaultLogLevel     = "info"

	maxTopLimit     = 500
	maxFetchWorkers = 32
)

// Config holds runtime settings for the CLI app.
type Config struct {
	APIBaseURL        string        `yaml:"api_base_url"`
	TopLimit          int           `yaml:"top_limit"`
	FetchWorkers      int           `yaml:"fetch_workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	HTTPTimeout       time.Duration `yaml:"http_timeout"`
	PollInterval      time.Duration `yaml:"poll_interval"`
	DBPath            string        `yaml:"db_path"`
	LogPath           string        `yaml:"log_path"`
	LogLevel          string        `yaml:"log_level"`
}

func Defaults() Config {
	return Config{
		APIBaseURL:   defaultAPIBaseURL,
		TopLimit:     defaultTopLimit,
		FetchWorkers: defaultFetchWorkers,
		HTTPTimeout:  defaultHTTPTimeout,
		PollInterval: defaultPollInterval,
		DBPath:       defaultPath(os.UserConfigDir, "hntop.db"),
		LogPath:      defaultPath(os.UserCacheDir, "hntop.log"),
		LogLevel:     defaultLogLevel,
	}
}

// LoadFromEnv builds the config from defaults, then the YAML file named by
// HNTOP_CONFIG (if any), then individual HNTOP_* variables. A dotenv file
// named by HNTOP_ENV_FILE is loaded first and never overrides variables that
// are already set.
func LoadFromEnv() (Config, error) {
	cfg := Defaults()

	if path := os.Getenv("HNTOP_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil {
			return Config{}, fmt.Errorf("load env file %s: %w", path, err)
		}
	}

	if path := os.Getenv("HNTOP_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v, ok := os.LookupEnv("HNTOP_API_BASE_URL"); ok && v != "" {
		c.APIBaseURL = v
	}
	if v, ok := os.LookupEnv("HNTOP_DB_PATH"); ok {
		c.DBPath = v
	}
	if v, ok := os.LookupEnv("HNTOP_LOG_PATH"); ok {
		c.LogPath = v
	}
	if v := os.Getenv("HNTOP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	var err error
	if c.TopLimit, err = envInt("HNTOP_TOP_LIMIT", c.TopLimit); err != nil {
		return err
	}
	if c.FetchWorkers, err = envInt("HNTOP_FETCH_WORKERS", c.FetchWorkers); err != nil {
		return err
	}
	if c.HTTPTimeout, err = envDuration("HNTOP_HTTP_TIMEOUT", c.HTTPTimeout); err != nil {
		return err
	}
	if c.PollInterval, err = envDuration("HNTOP_POLL_INTERVAL", c.PollInterval); err != nil {
		return err
	}
	if v := os.Getenv("HNTOP_REQUESTS_PER_SECOND"); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("HNTOP_REQUESTS_PER_SECOND must be a number: %s", v)
		}
		c.RequestsPerSecond = rps
	}
	return nil
}

func (c Config) Validate() error {
	if strings.TrimRight(c.APIBaseURL, "/") == "" {
		return errors.New("APIBaseURL is required")
	}
	if c.TopLimit < 1 || c.TopLimit > maxTopLimit {
		return fmt.Errorf("TopLimit must be between 1 and %d: %d", maxTopLimit, c.TopLimit)
	}
	if c.FetchWorkers < 1 || c.FetchWorkers > maxFetchWorkers {
		return fmt.Errorf("FetchWorkers must be between 1 and %d: %d", maxFetchWorkers, c.FetchWorkers)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("RequestsPerSecond must not be negative: %v", c.RequestsPerSecond)
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTPTimeout must be positive: %s", c.HTTPTimeout)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("PollInterval must be positive: %s", c.PollInterval)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LogLevel must be debug, info, warn or error: %s", c.LogLevel)
	}
	return nil
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %s", key, v)
	}
	return n, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 10s: %s", key, v)
	}
	return d, nil
}

func defaultPath(base func() (string, error), name string) string {
	dir, err := base()
	if err != nil || dir == "" {
		return name
	}
	return filepath.Join(dir, "hntop", name)
}
