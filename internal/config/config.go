package config

import (
	"fmt"
	neturl "net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort       = 2778
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "investordaily"
	defaultDBCharset  = "utf8mb4"
	defaultDBLoc      = "Local"
	defaultRedisURL   = "redis://localhost:6379/0"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production"
	DSN            string                `yaml:"dsn"` // MySQL DSN, overrides Database
	Database       DatabaseRuntimeConfig `yaml:"database"`
	RedisURL       string                `yaml:"redis_url"`
	S3             S3Options             `yaml:"s3"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
}

type DatabaseRuntimeConfig struct {
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Charset  string            `yaml:"charset"`
	Loc      string            `yaml:"loc"`
	Params   map[string]string `yaml:"params"`
}

// S3Options configures the object store behind uploads.
type S3Options struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// Load reads the YAML config at path, applies environment overrides, and
// fills defaults. A missing file is not an error; env and defaults apply.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	raw, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *AppConfig) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("BLOGD_PORT")); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Port = port
		}
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_ENV")); v != "" {
		c.Env = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_DSN")); v != "" {
		c.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_REDIS_URL")); v != "" {
		c.RedisURL = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_S3_BUCKET")); v != "" {
		c.S3.Bucket = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_S3_REGION")); v != "" {
		c.S3.Region = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_S3_ENDPOINT")); v != "" {
		c.S3.Endpoint = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_S3_ACCESS_KEY_ID")); v != "" {
		c.S3.AccessKeyID = v
	}
	if v := strings.TrimSpace(os.Getenv("BLOGD_S3_SECRET_ACCESS_KEY")); v != "" {
		c.S3.SecretAccessKey = v
	}
}

func (c *AppConfig) applyDefaults() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if strings.TrimSpace(c.Env) == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.DSN) == "" {
		c.DSN = c.Database.DSNValue()
	}
	if strings.TrimSpace(c.RedisURL) == "" {
		c.RedisURL = defaultRedisURL
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "development")
}

// DSNValue assembles a MySQL DSN from the structured fields, falling back to
// defaults for anything unset.
func (d DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(d.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(d.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := d.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(d.User)
	if user == "" {
		user = defaultDBUser
	}
	password := strings.TrimSpace(d.Password)
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = defaultDBName
	}
	charset := strings.TrimSpace(d.Charset)
	if charset == "" {
		charset = defaultDBCharset
	}
	loc := strings.TrimSpace(d.Loc)
	if loc == "" {
		loc = defaultDBLoc
	}

	params := neturl.Values{}
	for key, value := range d.Params {
		k := strings.TrimSpace(key)
		v := strings.TrimSpace(value)
		if k != "" && v != "" {
			params.Set(k, v)
		}
	}
	params.Set("charset", charset)
	params.Set("parseTime", "True")
	params.Set("loc", loc)

	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s", user, password, host, port, name, params.Encode())
}
