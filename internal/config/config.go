package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string    `yml:"env" default:"local"`
	Postgres  Postgres  `yml:"postgres"`
	Server    Server    `yml:"server" env-required:"true"`
	Providers Providers `yml:"providers"`
	Storage   Storage   `yml:"storage"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yml:"host" env-required:"true"`
	Port            string        `env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yml:"max_open_conns" default:"50"`
	MaxIdleConns    int           `yml:"max_idle_conns" default:"10"`
	ConnMaxLifetime time.Duration `yml:"conn_max_lifetime" default:"5m"`
	ConnMaxIdleTime time.Duration `yml:"conn_max_idle_time" default:"1m"`
}

type Server struct {
	Host    string        `yml:"host" default:"localhost"`
	Port    string        `yml:"port" default:"8080"`
	Timeout time.Duration `yml:"timeout" default:"5s"`
}

// Providers enumerates every supported social sign-in provider explicitly.
// A provider with empty credentials is disabled; the list of enabled
// providers is resolved once at startup, never inferred per request.
//
// Each provider carries its own credential type: cleanenv does not namespace
// nested env tags, so a shared type would bind every provider to the same
// environment variables.
type Providers struct {
	RedirectBaseURL string             `yml:"redirect_base_url" default:"http://localhost:8080"`
	Facebook        FacebookCredential `yml:"facebook"`
	Google          GoogleCredential   `yml:"google"`
}

type FacebookCredential struct {
	ClientID     string `yml:"client_id" env:"FACEBOOK_CLIENT_ID"`
	ClientSecret string `env:"FACEBOOK_CLIENT_SECRET"`
}

func (c FacebookCredential) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type GoogleCredential struct {
	ClientID     string `yml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

func (c GoogleCredential) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type Storage struct {
	BaseURL string `yml:"base_url" default:"http://localhost:8080/files"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}
