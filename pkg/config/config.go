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

type Config struct {
	Environment string `koanf:"environment"`
	Hostname    string `koanf:"-"`

	ServerHost string `koanf:"server_host"`
	ServerPort int    `koanf:"server_port"`

	// DatabaseURL is the DSN of the managed Postgres backend, including the
	// service credential.
	DatabaseURL               string        `koanf:"database_url"`
	DatabaseDebug             bool          `koanf:"database_debug"`
	DatabaseConnectRetryCount int           `koanf:"database_connect_retry_count"`
	DatabaseConnectRetryDelay time.Duration `koanf:"database_connect_retry_delay"`

	// StripeSecretKey selects the payment-provider deployment. Empty disables
	// the catalog reconciler entirely; store-only syncs still work.
	StripeSecretKey     string `koanf:"stripe_secret_key"`
	ProductImageBaseURL string `koanf:"product_image_base_url"`

	JWTSecret         string `koanf:"jwt_secret"`
	AdminUsername     string `koanf:"admin_username"`
	AdminPasswordHash string `koanf:"admin_password_hash"`

	// StrictStructuredFields turns the lenient empty-object substitution for
	// malformed resolution/metadata cells into a per-row failure.
	StrictStructuredFields bool `koanf:"strict_structured_fields"`
}

const (
	environmentENV = "ENVIRONMENT"
	configFileENV  = "CONFIG_FILE"

	envPrefix = "CATALOGSYNC_"
)

func New() (*Config, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	cfg := &Config{
		DatabaseConnectRetryCount: 5,
		DatabaseConnectRetryDelay: 2 * time.Second,
		Hostname:                  hostname,
		ServerPort:                8880,
	}

	environment := os.Getenv(environmentENV)
	switch environment {
	case "development", "":
		environment = "development"
		loadDevelopmentConfig(cfg)
	case "test":
		loadTestConfig(cfg)
	case "production":
		loadProductionConfig(cfg)
	}
	cfg.Environment = environment

	// Layer an optional yaml file and CATALOGSYNC_* variables on top of the
	// environment defaults.
	k := koanf.New(".")
	if path := os.Getenv(configFileENV); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	err = k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.WithStack(err)
	}

	return cfg, nil
}
