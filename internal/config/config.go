package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
	"github.com/Alias1177/PriceGuard/internal/simulate"
)

const (
	SourceTwelveData = "twelvedata"
	SourceCSV        = "csv"
)

// Config holds all application configuration
type Config struct {
	TwelveAPIKey string    `env:"TWELVE_API_KEY"`
	TwelveURL    string    `env:"TWELVE_BASE_URL"`
	Symbol       string    `env:"SYMBOL" envDefault:"AAPL"`
	StartDate    time.Time `env:"START_DATE" envDefault:"2023-01-01"`
	EndDate      time.Time `env:"END_DATE" envDefault:"2023-12-31"`
	DataSource   string    `env:"DATA_SOURCE" envDefault:"twelvedata"`
	CSVPath      string    `env:"CSV_PATH"`

	Threshold  float64       `env:"ERROR_THRESHOLD" envDefault:"0.03"`
	AlertDelay time.Duration `env:"ALERT_DELAY_MS" envDefault:"100"`

	InjectErrors bool             `env:"INJECT_ERRORS" envDefault:"true"`
	Simulation   simulate.Options // SIM_SEED, SIM_NOISE, SIM_SPIKES, SIM_SPIKE_SIGMA, SIM_MISSING

	TelegramToken  string `env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `env:"TELEGRAM_CHAT_ID"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	RequestsPerSec int    `env:"REQUESTS_PER_SEC" envDefault:"5"`
	MaxRetries     int    `env:"MAX_RETRIES" envDefault:"3"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config
	var err error

	cfg.TwelveAPIKey = os.Getenv("TWELVE_API_KEY")
	cfg.TwelveURL = os.Getenv("TWELVE_BASE_URL")
	cfg.Symbol = getEnvWithDefault("SYMBOL", "AAPL")
	if cfg.StartDate, err = getEnvDateWithDefault("START_DATE", "2023-01-01"); err != nil {
		return nil, err
	}
	if cfg.EndDate, err = getEnvDateWithDefault("END_DATE", "2023-12-31"); err != nil {
		return nil, err
	}
	cfg.DataSource = strings.ToLower(getEnvWithDefault("DATA_SOURCE", SourceTwelveData))
	cfg.CSVPath = os.Getenv("CSV_PATH")

	cfg.Threshold = getEnvFloatWithDefault("ERROR_THRESHOLD", detect.DefaultThreshold)
	cfg.AlertDelay = time.Duration(getEnvIntWithDefault("ALERT_DELAY_MS", 100)) * time.Millisecond

	defaults := simulate.DefaultOptions()
	cfg.InjectErrors = getEnvBoolWithDefault("INJECT_ERRORS", true)
	cfg.Simulation = simulate.Options{
		Seed:       int64(getEnvIntWithDefault("SIM_SEED", int(defaults.Seed))),
		Noise:      getEnvFloatWithDefault("SIM_NOISE", defaults.Noise),
		Spikes:     getEnvIntWithDefault("SIM_SPIKES", defaults.Spikes),
		SpikeSigma: getEnvFloatWithDefault("SIM_SPIKE_SIGMA", defaults.SpikeSigma),
		Missing:    getEnvIntWithDefault("SIM_MISSING", defaults.Missing),
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if raw := os.Getenv("TELEGRAM_CHAT_ID"); raw != "" {
		if cfg.TelegramChatID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
		}
	}

	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", 3)

	return &cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var errs []error

	if err := detect.ValidateThreshold(c.Threshold); err != nil {
		errs = append(errs, fmt.Errorf("ERROR_THRESHOLD: %w", err))
	}
	if c.AlertDelay < 0 {
		errs = append(errs, errors.New("ALERT_DELAY_MS must be >= 0"))
	}

	switch c.DataSource {
	case SourceTwelveData:
		if c.TwelveAPIKey == "" {
			errs = append(errs, errors.New("TWELVE_API_KEY is required for the twelvedata source"))
		}
		if c.Symbol == "" {
			errs = append(errs, errors.New("SYMBOL is required"))
		}
		if c.EndDate.Before(c.StartDate) {
			errs = append(errs, fmt.Errorf("END_DATE %s is before START_DATE %s",
				c.EndDate.Format(model.DateLayout), c.StartDate.Format(model.DateLayout)))
		}
	case SourceCSV:
		if c.CSVPath == "" {
			errs = append(errs, errors.New("CSV_PATH is required for the csv source"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceTwelveData, SourceCSV, c.DataSource))
	}

	if c.Simulation.Noise < 0 || c.Simulation.SpikeSigma < 0 || c.Simulation.Spikes < 0 || c.Simulation.Missing < 0 {
		errs = append(errs, errors.New("simulation parameters must be >= 0"))
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		errs = append(errs, errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set"))
	}

	return errors.Join(errs...)
}

// TelegramEnabled reports whether alerts should be forwarded to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		value = strings.ToLower(value)
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvDateWithDefault(key, defaultValue string) (time.Time, error) {
	t, err := model.ParseDate(getEnvWithDefault(key, defaultValue))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", key, err)
	}
	return t, nil
}
