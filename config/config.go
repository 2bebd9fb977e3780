package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type HTTP struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`  // "10s"
	WriteTimeout time.Duration `yaml:"writeTimeout"` // "15s"
	IdleTimeout  time.Duration `yaml:"idleTimeout"`  // "60s"
}

type GRPC struct {
	Addr string `yaml:"addr"`
}

type Logging struct {
	Env       string `yaml:"env"`       // dev|stage|prod
	Service   string `yaml:"service"`   // meeting-service
	Version   string `yaml:"version"`   // v0.1.0
	Backend   string `yaml:"backend"`   // std|zap
	AddSource bool   `yaml:"addSource"` // false|true
	Debug     bool   `yaml:"debug"`     // false|true

	// File: путь к файлу с ротацией, пустой означает stdout.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"maxConns"`
	MinConns        int32         `yaml:"minConns"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
	Migrate         bool          `yaml:"migrate"` // накатывать миграции при старте
}

type Auth struct {
	Mode          string        `yaml:"mode"` // header|jwt
	PublicKeyPath string        `yaml:"publicKeyPath"`
	Issuer        string        `yaml:"issuer"`
	Audience      string        `yaml:"audience"`
	ClockSkew     time.Duration `yaml:"clockSkew"`
}

type Meetings struct {
	PerPageOptions  []int         `yaml:"perPageOptions"`
	DefaultDuration time.Duration `yaml:"defaultDuration"`
}

type Tracing struct {
	Endpoint string `yaml:"endpoint"` // пусто: трейсинг выключен
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type Config struct {
	HTTP     HTTP     `yaml:"http"`
	GRPC     GRPC     `yaml:"grpc"`
	Logging  Logging  `yaml:"logging"`
	Postgres Postgres `yaml:"postgres"`
	Auth     Auth     `yaml:"auth"`
	Meetings Meetings `yaml:"meetings"`
	Tracing  Tracing  `yaml:"tracing"`
	CORS     CORS     `yaml:"cors"`
}

func LoadConfig() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "./config/config.yaml"
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http.addr is required")
	}
	if c.GRPC.Addr == "" {
		return errors.New("grpc.addr is required")
	}
	if c.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}

	switch c.Auth.Mode {
	case "":
		c.Auth.Mode = "header"
	case "header":
	case "jwt":
		if c.Auth.PublicKeyPath == "" {
			return errors.New("auth.publicKeyPath is required for jwt mode")
		}
	default:
		return fmt.Errorf("auth.mode: unknown value %q", c.Auth.Mode)
	}

	for _, n := range c.Meetings.PerPageOptions {
		if n <= 0 {
			return fmt.Errorf("meetings.perPageOptions: %d is not a positive page size", n)
		}
	}

	// дефолты
	if len(c.Meetings.PerPageOptions) == 0 {
		c.Meetings.PerPageOptions = []int{20, 100}
	}
	if c.Meetings.DefaultDuration <= 0 {
		c.Meetings.DefaultDuration = time.Hour
	}
	if c.HTTP.ReadTimeout == 0 {
		c.HTTP.ReadTimeout = 10 * time.Second
	}
	if c.HTTP.WriteTimeout == 0 {
		c.HTTP.WriteTimeout = 15 * time.Second
	}
	if c.HTTP.IdleTimeout == 0 {
		c.HTTP.IdleTimeout = 60 * time.Second
	}
	if c.Logging.Service == "" {
		c.Logging.Service = "meeting-service"
	}
	if c.Logging.Env == "" {
		c.Logging.Env = "dev"
	}
	if c.Logging.Version == "" {
		c.Logging.Version = "v0.1.0"
	}
	if c.Logging.Backend == "" {
		c.Logging.Backend = "std"
	}
	return nil
}
