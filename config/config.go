package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appName   = "stock-researcher"
	envPrefix = "STOCK_RESEARCHER_"
)

// RefetchPolicy controls when the growth tab re-requests price history
type RefetchPolicy string

const (
	// RefetchOnActivate fetches every time the growth tab becomes active
	RefetchOnActivate RefetchPolicy = "on-activate"
	// RefetchOnce fetches once per ticker and reuses the result on revisits
	RefetchOnce RefetchPolicy = "once"
)

// Config holds all configuration for the stock researcher client
type Config struct {
	APIURL          string        `yaml:"api_url"`
	Timeout         time.Duration `yaml:"timeout"`
	LogFile         string        `yaml:"log_file"`
	LogLevel        string        `yaml:"log_level"`
	GrowthRefetch   RefetchPolicy `yaml:"growth_refetch"`
	FinancialsDelay time.Duration `yaml:"financials_delay"`
	MarkdownStyle   string        `yaml:"markdown_style"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		APIURL:          "http://localhost:5000",
		Timeout:         30 * time.Second,
		LogFile:         DefaultLogFile(),
		LogLevel:        "info",
		GrowthRefetch:   RefetchOnce,
		FinancialsDelay: time.Second,
		MarkdownStyle:   "dark",
	}
}

// DefaultPath is where Load looks when no config path is given
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, appName, "config.yaml")
}

// DefaultLogFile is where the interactive UI writes its log
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, appName, appName+".log")
}

// Load builds the configuration from defaults, the YAML file at path, an
// optional .env file and STOCK_RESEARCHER_* environment variables, in that
// order of precedence. An empty path means DefaultPath, which may be absent.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	cfg.applyEnv()

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.APIURL = getEnvOrDefault("API_URL", c.APIURL)
	c.Timeout = getEnvDurationOrDefault("TIMEOUT", c.Timeout)
	c.LogFile = getEnvOrDefault("LOG_FILE", c.LogFile)
	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
	c.GrowthRefetch = RefetchPolicy(getEnvOrDefault("GROWTH_REFETCH", string(c.GrowthRefetch)))
	c.FinancialsDelay = getEnvDurationOrDefault("FINANCIALS_DELAY", c.FinancialsDelay)
	c.MarkdownStyle = getEnvOrDefault("MARKDOWN_STYLE", c.MarkdownStyle)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute http(s) URL", c.APIURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api_url %q: unsupported scheme %s", c.APIURL, u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	if c.FinancialsDelay < 0 {
		return fmt.Errorf("financials_delay must be >= 0, got %s", c.FinancialsDelay)
	}
	switch c.GrowthRefetch {
	case RefetchOnActivate, RefetchOnce:
	default:
		return fmt.Errorf("growth_refetch must be %q or %q, got %q", RefetchOnActivate, RefetchOnce, c.GrowthRefetch)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(envPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envPrefix + key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	// bare integers are seconds
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}
