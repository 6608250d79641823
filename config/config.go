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
		PageSize int    `envconfig:"PAGE_SIZE" default:"20"`
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

			// ScrollMaxRequests budgets the infinite-scroll "/more" endpoints apart
			// from page loads. Zero means four times MaxRequests.
			ScrollMaxRequests int `envconfig:"SCROLL_MAX_REQUESTS"`
		} `envconfig:"RATE_LIMITER"`
		Admin struct {
			Username     string `envconfig:"USERNAME" default:"admin"`
			PasswordHash string `envconfig:"PASSWORD_HASH"`
		} `envconfig:"ADMIN"`
		SessionIdleMinutes int `envconfig:"SESSION_IDLE_MINUTES" default:"60"`
	} `envconfig:"APP"`

	Backend struct {
		BaseURL        string  `envconfig:"BASE_URL" default:"http://localhost:8080/api/v1"`
		APIKey         string  `envconfig:"API_KEY"`
		TimeoutSeconds int     `envconfig:"TIMEOUT_SECONDS" default:"30"`
		RatePerSecond  float64 `envconfig:"RATE_PER_SECOND" default:"20"`
		RateBurst      int     `envconfig:"RATE_BURST" default:"10"`
	} `envconfig:"BACKEND"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL"`
	} `envconfig:"CACHE"`

	JWT struct {
		SessionSecret    string `envconfig:"SESSION_SECRET"`
		SessionExpireMin int    `envconfig:"SESSION_EXPIRE_MIN" default:"720"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int    `envconfig:"MAX_RETRY"`
			RetryWaitTime  int    `envconfig:"RETRY_WAIT_TIME"`
			MigrationTable string `envconfig:"MIGRATION_TABLE"`
			AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`
			Prefix         string `envconfig:"PREFIX"`
			Read           struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"READ"`
			Write struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Username string `envconfig:"USER"`
				Password string `envconfig:"PASSWORD"`
				Name     string `envconfig:"NAME"`
				Timezone string `envconfig:"TIMEZONE"`
				SSLMode  string `envconfig:"SSL_MODE"`
			} `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	External struct {
		Otel struct {
			Endpoint string `envconfig:"ENDPOINT"`
		} `envconfig:"OTEL"`
		S3 struct {
			APIEndpoint     string `envconfig:"API_ENDPOINT"`
			AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
			SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
			BucketName      string `envconfig:"BUCKET_NAME"`
			Region          string `envconfig:"REGION" default:"auto"`
			PresignMinutes  int    `envconfig:"PRESIGN_MINUTES" default:"15"`
		} `envconfig:"S3"`
	} `envconfig:"EXTERNAL"`
}

var (
	conf        Config
	once        sync.Once
	initialized bool
)

func Init() error {
	var err error

	once.Do(func() {
		if loadErr := godotenv.Load(".env"); loadErr != nil {
			log.Warn().Err(loadErr).Msg("Could not load .env file, continuing with existing environment variables")
		} else {
			log.Info().Msg("Loaded variables from .env file into environment")
		}

		err = envconfig.Process("", &conf)
		if err != nil {
			return
		}

		initialized = true

		log.Info().Msg("Console configuration initialized")
	})

	if err != nil {
		return fmt.Errorf("failed to process environment variables: %w", err)
	}

	return nil
}

func Get() *Config {
	if !initialized {
		if err := Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}
	}

	return &conf
}

// LoginRequired reports whether operators must sign in before using the console.
func (c *Config) LoginRequired() bool {
	return c.App.Admin.PasswordHash != ""
}
