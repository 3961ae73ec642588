package config

import (
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
			PoolSize      int `envconfig:"POOL_SIZE"`
			MaxRetry      int `envconfig:"MAX_RETRY"`
			RetryWaitTime int `envconfig:"RETRY_WAIT_TIME"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	// Tokens are issued by the hosted auth service; the API only verifies them.
	JWT struct {
		AccessSecret string `envconfig:"ACCESS_SECRET"`
		Issuer       string `envconfig:"ISSUER"`
		Audience     string `envconfig:"AUDIENCE"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry        int              `envconfig:"MAX_RETRY"`
			RetryWaitTime   int              `envconfig:"RETRY_WAIT_TIME"`
			MaxOpenConns    int              `envconfig:"MAX_OPEN_CONNS"`
			MaxIdleConns    int              `envconfig:"MAX_IDLE_CONNS"`
			ConnMaxLifetime int              `envconfig:"CONN_MAX_LIFETIME"`
			MigrationTable  string           `envconfig:"MIGRATION_TABLE"`
			AutoMigrate     bool             `envconfig:"AUTO_MIGRATE"`
			Prefix          string           `envconfig:"PREFIX"`
			Read            PostgresEndpoint `envconfig:"READ"`
			Write           PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Kafka struct {
		Brokers       []string `envconfig:"BROKERS"`
		ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
		SASL          struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
		Topic struct {
			ProcessEvents string `envconfig:"PROCESS_EVENTS"`
		} `envconfig:"TOPIC"`
	} `envconfig:"KAFKA"`

	Tariff struct {
		Currency    string `envconfig:"CURRENCY"`
		DefaultAxis string `envconfig:"DEFAULT_AXIS"`
	} `envconfig:"TARIFF"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
			Region          string `envconfig:"REGION"`
			PresignMinutes  int    `envconfig:"PRESIGN_MINUTES"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

// PostgresEndpoint is one side of the read/write connection pair.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

const (
	defaultPort     = "8080"
	defaultCurrency = "EUR"
	defaultTimezone = "UTC"
)

var (
	conf    Config
	once    sync.Once
	loadErr error
)

// Init reads .env when present, then the process environment. It runs once; later calls
// return the first result.
func Init() error {
	once.Do(func() {
		loadErr = load(&conf)
	})

	return loadErr
}

func load(c *Config) error {
	if err := godotenv.Load(".env"); err != nil {
		log.Warn().Err(err).Msg("No .env file, reading configuration from the environment only")
	}

	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	c.applyDefaults()

	log.Info().Str("app", c.App.Name).Str("env", c.Server.Env).Msg("Configuration loaded")

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}

	if c.Tariff.Currency == "" {
		c.Tariff.Currency = defaultCurrency
	}

	if c.App.Timezone == "" {
		c.App.Timezone = defaultTimezone
	}
}

// Get returns the loaded configuration and exits when the environment cannot be parsed.
func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	return &conf
}
