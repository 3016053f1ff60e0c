package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"weather-lookup/models"
	"weather-lookup/providers"
)

// GenericFetchError показывается при сетевых сбоях и ошибках разбора
const GenericFetchError = "Unable to fetch weather data. Please try again."

// WeatherController получает погоду для места и держит состояние загрузки
type WeatherController struct {
	forecaster providers.Forecaster
	days       int
	ctx        context.Context
	logger     *slog.Logger
	notify     func()
	wg         *sync.WaitGroup

	mu       sync.Mutex
	seq      uint64
	snapshot *models.Snapshot
	alert    *string
	state    models.RequestState
}

// FetchWeather запускает загрузку. Loading выставляется до отправки запроса,
// повторный вызов вытесняет запрос в полете.
func (c *WeatherController) FetchWeather(locationQuery string) {
	query := strings.TrimSpace(locationQuery)
	if query == "" {
		return
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.state = models.RequestState{Loading: true}
	c.alert = nil
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.fetch(seq, query)
}

func (c *WeatherController) fetch(seq uint64, query string) {
	defer c.wg.Done()

	logger := c.logger.With("request_id", uuid.NewString(), "query", query)
	logger.Debug("запрос погоды")

	snapshot, err := c.forecaster.Forecast(c.ctx, query, c.days)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		logger.Debug("ответ вытеснен более новым запросом")
		return
	}
	c.apply(snapshot, err, logger)
	c.mu.Unlock()
	c.notify()
}

// apply вызывается под c.mu
func (c *WeatherController) apply(snapshot *models.Snapshot, err error, logger *slog.Logger) {
	defer func() { c.state.Loading = false }()

	if err == nil && snapshot == nil {
		err = fmt.Errorf("%w: провайдер вернул пустой прогноз", providers.ErrTransport)
	}
	if err != nil {
		c.snapshot = nil
		c.alert = nil
		c.state.Error = errorMessage(err)
		logger.Warn("не удалось получить погоду", "error", err)
		return
	}

	c.snapshot = snapshot
	c.alert = DeriveAlert(snapshot)
	c.state.Error = ""
	logger.Info("погода получена", "location", snapshot.Location.Name, "days", len(snapshot.Forecast.Days))
}

// errorMessage текст ошибки для пользователя: сообщение провайдера как есть, иначе общее
func errorMessage(err error) string {
	var perr *providers.ProviderError
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return GenericFetchError
}

func (c *WeatherController) Snapshot() *models.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

func (c *WeatherController) Alert() *string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alert
}

func (c *WeatherController) State() models.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
