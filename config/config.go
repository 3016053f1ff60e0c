package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	SuggestWeatherAPI  = "weatherapi"
	SuggestOpenWeather = "openweather"
)

type Config struct {
	WeatherAPIKey     string
	OpenWeatherAPIKey string
	SuggestProvider   string
	ServerPort        string
	CacheDuration     int // минуты, 0 отключает кеш
	CacheDB           string
	ForecastDays      int
	RateLimitRPS      float64
	RateLimitBurst    int
	LogLevel          string
	LogFile           string
}

func Load() (*Config, error) {
	// Загружаем .env файл если существует
	godotenv.Load()

	config := &Config{
		WeatherAPIKey:     getEnv("WEATHERAPI_API_KEY", ""),
		OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
		SuggestProvider:   getEnv("SUGGEST_PROVIDER", SuggestWeatherAPI),
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		CacheDuration:     getEnvAsInt("CACHE_DURATION", 10),
		CacheDB:           getEnv("CACHE_DB", ""),
		ForecastDays:      getEnvAsInt("FORECAST_DAYS", 3),
		RateLimitRPS:      getEnvAsFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvAsInt("RATE_LIMIT_BURST", 10),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           getEnv("LOG_FILE", ""),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.WeatherAPIKey == "" {
		return fmt.Errorf("необходим API ключ WeatherAPI (WEATHERAPI_API_KEY)")
	}

	switch c.SuggestProvider {
	case SuggestWeatherAPI:
	case SuggestOpenWeather:
		if c.OpenWeatherAPIKey == "" {
			return fmt.Errorf("SUGGEST_PROVIDER=%s требует OPENWEATHER_API_KEY", SuggestOpenWeather)
		}
	default:
		return fmt.Errorf("неизвестный SUGGEST_PROVIDER: %q", c.SuggestProvider)
	}

	if c.ForecastDays < 1 {
		return fmt.Errorf("FORECAST_DAYS должен быть положительным, получено %d", c.ForecastDays)
	}
	if c.CacheDuration < 0 {
		return fmt.Errorf("CACHE_DURATION не может быть отрицательным")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst < 1 {
		return fmt.Errorf("некорректные RATE_LIMIT_RPS/RATE_LIMIT_BURST")
	}
	return nil
}

// CacheTTL время жизни записей кеша прогнозов
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheDuration) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}
