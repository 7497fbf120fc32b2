package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/PriceGuard/internal/detect"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SYMBOL", "START_DATE", "END_DATE", "DATA_SOURCE", "ERROR_THRESHOLD", "ALERT_DELAY_MS", "INJECT_ERRORS", "SIM_SEED", "TELEGRAM_CHAT_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "AAPL", cfg.Symbol)
	assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), cfg.EndDate)
	assert.Equal(t, SourceTwelveData, cfg.DataSource)
	assert.Equal(t, detect.DefaultThreshold, cfg.Threshold)
	assert.Equal(t, 100*time.Millisecond, cfg.AlertDelay)
	assert.True(t, cfg.InjectErrors)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, 5, cfg.Simulation.Missing)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATA_SOURCE", "CSV")
	t.Setenv("CSV_PATH", "prices.csv")
	t.Setenv("ERROR_THRESHOLD", "0.05")
	t.Setenv("ALERT_DELAY_MS", "0")
	t.Setenv("INJECT_ERRORS", "no")
	t.Setenv("TELEGRAM_CHAT_ID", "-100123")
	t.Setenv("TWELVE_BASE_URL", "http://127.0.0.1:8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.DataSource)
	assert.Equal(t, 0.05, cfg.Threshold)
	assert.Equal(t, time.Duration(0), cfg.AlertDelay)
	assert.False(t, cfg.InjectErrors)
	assert.Equal(t, int64(-100123), cfg.TelegramChatID)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.TwelveURL)
}

func TestLoadBadDate(t *testing.T) {
	t.Setenv("START_DATE", "01/02/2023")
	_, err := Load()
	assert.ErrorContains(t, err, "START_DATE")
}

func validConfig() *Config {
	return &Config{
		TwelveAPIKey: "key",
		Symbol:       "AAPL",
		StartDate:    time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		DataSource:   SourceTwelveData,
		Threshold:    detect.DefaultThreshold,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "negative threshold", mutate: func(c *Config) { c.Threshold = -0.1 }, wantErr: "ERROR_THRESHOLD"},
		{name: "missing api key", mutate: func(c *Config) { c.TwelveAPIKey = "" }, wantErr: "TWELVE_API_KEY"},
		{name: "inverted range", mutate: func(c *Config) { c.EndDate = c.StartDate.AddDate(0, 0, -1) }, wantErr: "END_DATE"},
		{name: "csv without path", mutate: func(c *Config) { c.DataSource = SourceCSV }, wantErr: "CSV_PATH"},
		{name: "unknown source", mutate: func(c *Config) { c.DataSource = "ftp" }, wantErr: "DATA_SOURCE"},
		{name: "token without chat", mutate: func(c *Config) { c.TelegramToken = "t" }, wantErr: "TELEGRAM_CHAT_ID"},
		{name: "negative spikes", mutate: func(c *Config) { c.Simulation.Spikes = -1 }, wantErr: "simulation"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTelegramEnabled(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.TelegramEnabled())
	cfg.TelegramToken = "t"
	cfg.TelegramChatID = 1
	assert.True(t, cfg.TelegramEnabled())
}
