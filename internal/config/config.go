// Package config loads process configuration from the environment.
//
// .env files are read first without overriding variables the runtime
// already provides, then the environment is parsed into typed structs.
// Required values that are missing fail Load before any network call.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// S3 holds the blob sink settings.
type S3 struct {
	Endpoint     string `env:"ENDPOINT,required,notEmpty"`
	AccessKey    string `env:"ACCESS_KEY,required,notEmpty"`
	AccessSecret string `env:"ACCESS_SECRET,required,notEmpty"`
	Bucket       string `env:"BUCKET" envDefault:"ayobaca"`
	Region       string `env:"REGION" envDefault:"apac"`
	UseSSL       bool   `env:"USE_SSL" envDefault:"true"`
}

// Upstream holds the catalog source settings.
type Upstream struct {
	BaseURL    string  `env:"BASE_URL" envDefault:"https://letsreadasia.org"`
	LanguageID string  `env:"LANGUAGE_ID" envDefault:"6260074016145408"`
	PageSize   int     `env:"PAGE_SIZE" envDefault:"100"`
	RPS        float64 `env:"RPS" envDefault:"5"`
	MaxRetries int     `env:"MAX_RETRIES" envDefault:"0"`
	UserAgent  string  `env:"USER_AGENT" envDefault:"bookmirror/1.0"`
}

// Images holds the image pipeline settings.
type Images struct {
	Concurrency  int `env:"CONCURRENCY" envDefault:"4"`
	Quality      int `env:"QUALITY" envDefault:"75"`
	MaxDimension int `env:"MAX_DIMENSION" envDefault:"2048"`
}

// Log holds logger settings shared by every command.
type Log struct {
	Level string `env:"LEVEL" envDefault:"info"`
	File  string `env:"FILE"`
}

// Sync is the configuration of cmd/sync.
type Sync struct {
	DBDSN         string   `env:"DB_DSN,required,notEmpty"`
	S3            S3       `envPrefix:"S3_"`
	Upstream      Upstream `envPrefix:"UPSTREAM_"`
	Images        Images   `envPrefix:"IMAGE_"`
	Log           Log      `envPrefix:"LOG_"`
	InitialCursor string   `env:"SYNC_INITIAL_CURSOR" envDefault:"4"`
	Resume        bool     `env:"SYNC_RESUME" envDefault:"false"`
}

// API is the configuration of cmd/api.
type API struct {
	Addr           string   `env:"APP_ADDR" envDefault:":8080"`
	DBDSN          string   `env:"DB_DSN,required,notEmpty"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"40"`
	Log            Log      `envPrefix:"LOG_"`
}

// LoadEnvFiles reads .env and .env.local into the process environment.
// Variables already set are left untouched.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// LoadSync parses and validates the sync configuration.
func LoadSync() (*Sync, error) {
	cfg, err := env.ParseAs[Sync]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAPI parses and validates the API configuration.
func LoadAPI() (*API, error) {
	cfg, err := env.ParseAs[API]()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return nil, errors.New("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return &cfg, nil
}

// Validate checks ranges that struct tags cannot express.
func (c *Sync) Validate() error {
	var errs []error
	if c.Upstream.PageSize < 1 || c.Upstream.PageSize > 1000 {
		errs = append(errs, fmt.Errorf("UPSTREAM_PAGE_SIZE must be within 1..1000, got %d", c.Upstream.PageSize))
	}
	if c.Upstream.RPS <= 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_RPS must be positive, got %v", c.Upstream.RPS))
	}
	if c.Upstream.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_MAX_RETRIES must not be negative, got %d", c.Upstream.MaxRetries))
	}
	if c.Images.Concurrency < 1 || c.Images.Concurrency > 32 {
		errs = append(errs, fmt.Errorf("IMAGE_CONCURRENCY must be within 1..32, got %d", c.Images.Concurrency))
	}
	if c.Images.Quality < 1 || c.Images.Quality > 100 {
		errs = append(errs, fmt.Errorf("IMAGE_QUALITY must be within 1..100, got %d", c.Images.Quality))
	}
	if c.Images.MaxDimension < 0 {
		errs = append(errs, fmt.Errorf("IMAGE_MAX_DIMENSION must not be negative, got %d", c.Images.MaxDimension))
	}
	if strings.TrimSpace(c.InitialCursor) == "" {
		errs = append(errs, errors.New("SYNC_INITIAL_CURSOR must not be empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
