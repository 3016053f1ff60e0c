package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WEATHERAPI_API_KEY", "OPENWEATHER_API_KEY", "SUGGEST_PROVIDER", "SERVER_PORT",
		"CACHE_DURATION", "CACHE_DB", "FORECAST_DAYS", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
		"LOG_LEVEL", "LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_API_KEY", "key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SuggestProvider != SuggestWeatherAPI {
		t.Errorf("SuggestProvider = %q", cfg.SuggestProvider)
	}
	if cfg.ServerPort != "8080" || cfg.ForecastDays != 3 || cfg.LogLevel != "info" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.CacheTTL() != 10*time.Minute {
		t.Errorf("CacheTTL() = %v", cfg.CacheTTL())
	}
	if cfg.RateLimitRPS != 5 || cfg.RateLimitBurst != 10 {
		t.Errorf("unexpected rate limit %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WEATHERAPI_API_KEY", "key")
	t.Setenv("OPENWEATHER_API_KEY", "ow")
	t.Setenv("SUGGEST_PROVIDER", "openweather")
	t.Setenv("CACHE_DURATION", "0")
	t.Setenv("FORECAST_DAYS", "5")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SuggestProvider != SuggestOpenWeather || cfg.ForecastDays != 5 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.CacheTTL() != 0 {
		t.Errorf("expected disabled cache, got %v", cfg.CacheTTL())
	}
	if cfg.RateLimitRPS != 0.5 {
		t.Errorf("RateLimitRPS = %v", cfg.RateLimitRPS)
	}
	// некорректное значение заменяется значением по умолчанию
	if cfg.RateLimitBurst != 10 {
		t.Errorf("RateLimitBurst = %d", cfg.RateLimitBurst)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			WeatherAPIKey:   "key",
			SuggestProvider: SuggestWeatherAPI,
			CacheDuration:   10,
			ForecastDays:    3,
			RateLimitRPS:    5,
			RateLimitBurst:  10,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing key", mutate: func(c *Config) { c.WeatherAPIKey = "" }, wantErr: true},
		{name: "openweather without key", mutate: func(c *Config) { c.SuggestProvider = SuggestOpenWeather }, wantErr: true},
		{name: "openweather with key", mutate: func(c *Config) {
			c.SuggestProvider = SuggestOpenWeather
			c.OpenWeatherAPIKey = "ow"
		}},
		{name: "unknown provider", mutate: func(c *Config) { c.SuggestProvider = "nominatim" }, wantErr: true},
		{name: "zero days", mutate: func(c *Config) { c.ForecastDays = 0 }, wantErr: true},
		{name: "negative cache", mutate: func(c *Config) { c.CacheDuration = -1 }, wantErr: true},
		{name: "zero rps", mutate: func(c *Config) { c.RateLimitRPS = 0 }, wantErr: true},
		{name: "zero burst", mutate: func(c *Config) { c.RateLimitBurst = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
