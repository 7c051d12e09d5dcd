package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/uillasnr/mobilefinance/internal/locale"
)

// FileName is the default config file name.
const FileName = "finance.yaml"

// Config represents the top-level finance.yaml configuration.
type Config struct {
	Locale   string       `yaml:"locale"`
	Currency string       `yaml:"currency"`
	Timezone string       `yaml:"timezone"`
	Source   SourceConfig `yaml:"source"`
	Server   ServerConfig `yaml:"server"`
	Log      LogConfig    `yaml:"log"`
}

// SourceConfig says where transactions and goals come from.
// APIURL wins over Path when both are set.
type SourceConfig struct {
	Path      string        `yaml:"path,omitempty"`
	GoalsPath string        `yaml:"goals_path,omitempty"`
	APIURL    string        `yaml:"api_url,omitempty"`
	TokenEnv  string        `yaml:"token_env"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ServerConfig controls `finance serve`.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Load reads a finance.yaml file from disk. Fields missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default().
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	return &Config{
		Locale:   "pt-BR",
		Currency: "BRL",
		Timezone: "Local",
		Source: SourceConfig{
			Path:     "transactions.json",
			TokenEnv: "FINANCE_API_TOKEN",
			Timeout:  10 * time.Second,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports every problem in the config at once.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := locale.Supported(c.Locale); !ok {
		errs = append(errs, fmt.Errorf("locale %q is not supported", c.Locale))
	}
	if len(c.Currency) != 3 {
		errs = append(errs, fmt.Errorf("currency %q must be a 3-letter ISO code", c.Currency))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if c.Source.Path == "" && c.Source.APIURL == "" {
		errs = append(errs, errors.New("source: one of path or api_url is required"))
	}
	if c.Source.APIURL != "" {
		u, err := url.Parse(c.Source.APIURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("source: api_url %q must be an http(s) URL", c.Source.APIURL))
		}
	}
	if c.Source.Timeout < 0 {
		errs = append(errs, fmt.Errorf("source: timeout %s is negative", c.Source.Timeout))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log: format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Location resolves the configured time zone. "Local" and "" mean the
// machine's zone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	case "UTC":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Token returns the API token from the configured environment variable.
func (c *Config) Token() string {
	if c.Source.TokenEnv == "" {
		return ""
	}
	return os.Getenv(c.Source.TokenEnv)
}

// LoadEnv loads KEY=VALUE files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}
