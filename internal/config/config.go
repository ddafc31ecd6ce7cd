package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
)

// Config holds the upload server configuration
type Config struct {
	Port           int    `validate:"min=1,max=65535"`
	UploadDir      string `validate:"required"`
	MaxUploadBytes int64  `validate:"min=1"`
	MaxConnections int    `validate:"min=1"`
	CacheSize      int    `validate:"min=0"`
	LogLevel       string `validate:"required,verbosity"`
	LogFormat      string `validate:"oneof=text json"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		UploadDir: getEnv("UPLOAD_DIR", DefaultUploadDir),
		LogLevel:  getEnv("LOG_LEVEL", DefaultLogLevel),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.MaxConnections, err = getEnvInt("MAX_CONNECTIONS", DefaultMaxConnections); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getEnvInt("CACHE_SIZE", DefaultCacheSize); err != nil {
		return nil, err
	}
	maxUpload, err := getEnvInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field against its `validate` tag.
func (c *Config) Validate() error {
	v := validator.New()
	_ = v.RegisterValidation("verbosity", func(fl validator.FieldLevel) bool {
		_, err := logging.ParseVerbosity(fl.Field().String())
		return err == nil
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("%s fails '%s' (value %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// LoggerConfig derives the logger settings.
func (c *Config) LoggerConfig() logging.Config {
	level, err := logging.ParseVerbosity(c.LogLevel)
	if err != nil {
		level = logging.Info
	}
	cfg := logging.DefaultConfig()
	cfg.Verbosity = level
	cfg.Format = c.LogFormat
	return cfg
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}
