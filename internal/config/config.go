package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

// Storage types accepted by HBNB_TYPE_STORAGE.
const (
	StorageFile  = "file"
	StorageDB    = "db"
	StorageRedis = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type ServerConfig struct {
	Host        string   `yaml:"host" env:"HBNB_API_HOST"`
	Port        int      `yaml:"port" env:"HBNB_API_PORT"`
	Prefix      string   `yaml:"prefix" env:"HBNB_API_PREFIX"`
	CORSOrigins []string `yaml:"cors_origins" env:"HBNB_CORS_ORIGINS" envSeparator:","`
}

type StorageConfig struct {
	Type     string `yaml:"type" env:"HBNB_TYPE_STORAGE"`
	FilePath string `yaml:"file_path" env:"HBNB_FILE_PATH"`
}

// DatabaseConfig selects the relational backend. DSN wins over the
// MySQL credential fields when both are set.
type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"HBNB_DB_DRIVER"`
	DSN      string `yaml:"dsn" env:"HBNB_DB_DSN"`
	User     string `yaml:"user" env:"HBNB_MYSQL_USER"`
	Password string `yaml:"password" env:"HBNB_MYSQL_PWD"`
	Host     string `yaml:"host" env:"HBNB_MYSQL_HOST"`
	Name     string `yaml:"name" env:"HBNB_MYSQL_DB"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"HBNB_REDIS_ADDR"`
	Password string `yaml:"password" env:"HBNB_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"HBNB_REDIS_DB"`
	Prefix   string `yaml:"prefix" env:"HBNB_REDIS_PREFIX"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Env      string         `yaml:"env" env:"HBNB_ENV"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:   "0.0.0.0",
			Port:   5000,
			Prefix: "/api/v1",
		},
		Storage: StorageConfig{
			Type:     StorageFile,
			FilePath: "file.json",
		},
		Database: DatabaseConfig{
			Driver: "mysql",
			Host:   "localhost",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "hbnb:",
		},
	}
}

// Load layers the YAML file at path (if any) and then the environment over
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}
	cfg.Storage.Type = strings.ToLower(strings.TrimSpace(cfg.Storage.Type))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Type {
	case StorageFile:
		if c.Storage.FilePath == "" {
			return fmt.Errorf("%w: file storage needs a file path", ErrInvalidConfig)
		}
	case StorageDB, StorageRedis:
	default:
		return fmt.Errorf("%w: unknown storage type %q", ErrInvalidConfig, c.Storage.Type)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.Prefix != "" && (!strings.HasPrefix(c.Server.Prefix, "/") || strings.HasSuffix(c.Server.Prefix, "/")) {
		return fmt.Errorf("%w: prefix %q must start and not end with /", ErrInvalidConfig, c.Server.Prefix)
	}
	return nil
}

// Addr is the listen address built from host and port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// IsTest reports whether persisted state is wiped on start.
func (c Config) IsTest() bool {
	return c.Env == "test"
}
