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

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/sadopc/mindful/internal/store"
)

// Config holds runtime settings for the dashboard and the status API.
type Config struct {
	DBPath      string   `yaml:"db"`
	APIURL      string   `yaml:"api_url"`
	Addr        string   `yaml:"addr"`
	ExportDir   string   `yaml:"export_dir"`
	CORSOrigins []string `yaml:"cors_origins"`
	Debug       bool     `yaml:"debug"`
}

// ConfigError reports an invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

func Default() Config {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		dbPath = "mindful.db"
	}
	return Config{
		DBPath:      dbPath,
		APIURL:      "http://localhost:8001/api",
		Addr:        ":8001",
		ExportDir:   ".",
		CORSOrigins: []string{"*"},
	}
}

// DefaultFile returns ~/.config/mindful/config.yaml
func DefaultFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "mindful", "config.yaml")
}

// Load reads the default config file, ./.env and the process environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultFile(), ".env", os.LookupEnv)
}

// LoadFrom layers defaults, the YAML file at yamlPath, then environment
// variables. lookup is consulted first; the dotenv file at envPath only fills
// variables lookup does not set. Missing files are skipped.
func LoadFrom(yamlPath, envPath string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	dotenv := map[string]string{}
	if envPath != "" {
		m, err := godotenv.Read(envPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read env file: %w", err)
		default:
			dotenv = m
		}
	}
	env := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv(env func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := env(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("MINDFUL_DB", &c.DBPath)
	str("MINDFUL_API_URL", &c.APIURL)
	str("MINDFUL_ADDR", &c.Addr)
	str("MINDFUL_EXPORT_DIR", &c.ExportDir)

	if v, ok := env("CORS_ORIGINS"); ok && strings.TrimSpace(v) != "" {
		c.CORSOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.CORSOrigins = append(c.CORSOrigins, o)
			}
		}
	}

	if v, ok := env("MINDFUL_DEBUG"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &ConfigError{Field: "MINDFUL_DEBUG", Message: fmt.Sprintf("not a boolean: %q", v)}
		}
		c.Debug = b
	}
	return nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return &ConfigError{Field: "db", Message: "must not be empty"}
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "api_url", Message: fmt.Sprintf("not an http(s) url: %q", c.APIURL)}
	}
	if strings.TrimSpace(c.Addr) == "" {
		return &ConfigError{Field: "addr", Message: "must not be empty"}
	}
	if strings.TrimSpace(c.ExportDir) == "" {
		return &ConfigError{Field: "export_dir", Message: "must not be empty"}
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	return nil
}
