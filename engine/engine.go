package engine

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"weather-lookup/models"
	"weather-lookup/providers"
)

// DefaultForecastDays глубина прогноза по умолчанию
const DefaultForecastDays = 3

// Options настройки движка
type Options struct {
	ForecastDays int
	Preferences  models.Preferences
	Logger       *slog.Logger
}

// Engine контейнер состояния: подсказки, погода, выбор дня и настройки.
// Состояние меняется только через именованные операции.
type Engine struct {
	suggest *SuggestionController
	weather *WeatherController
	sel     Selection
	prefs   Preferences

	wg      sync.WaitGroup
	changes chan struct{}
}

// New собирает движок. ctx используется для всех запросов к провайдерам.
func New(ctx context.Context, searcher providers.Searcher, forecaster providers.Forecaster, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	days := opts.ForecastDays
	if days <= 0 {
		days = DefaultForecastDays
	}

	e := &Engine{changes: make(chan struct{}, 1)}
	e.prefs.Set(opts.Preferences)
	e.suggest = &SuggestionController{
		searcher: searcher,
		ctx:      ctx,
		logger:   logger.With("component", "suggest"),
		notify:   e.notify,
		wg:       &e.wg,
	}
	e.weather = &WeatherController{
		forecaster: forecaster,
		days:       days,
		ctx:        ctx,
		logger:     logger.With("component", "weather"),
		notify:     e.notify,
		wg:         &e.wg,
	}
	return e
}

// notify не блокирует: несколько изменений подряд схлопываются в один сигнал
func (e *Engine) notify() {
	select {
	case e.changes <- struct{}{}:
	default:
	}
}

// Changes сигналит об изменении состояния
func (e *Engine) Changes() <-chan struct{} {
	return e.changes
}

// Wait ждет завершения всех запросов в полете
func (e *Engine) Wait() {
	e.wg.Wait()
}

func (e *Engine) OnQueryChange(text string) {
	e.suggest.OnQueryChange(text)
}

func (e *Engine) FetchWeather(locationQuery string) {
	e.weather.FetchWeather(locationQuery)
}

// SelectSuggestion подставляет подсказку в строку запроса и загружает погоду для нее
func (e *Engine) SelectSuggestion(s models.Suggestion) {
	e.suggest.SetQuery(s.Label())
	e.suggest.Clear()
	e.weather.FetchWeather(s.Query())
}

func (e *Engine) ToggleDay(dateKey string) {
	e.sel.ToggleDay(dateKey)
	e.notify()
}

func (e *Engine) ToggleFahrenheit() {
	e.prefs.ToggleFahrenheit()
	e.notify()
}

func (e *Engine) Toggle24Hour() {
	e.prefs.Toggle24Hour()
	e.notify()
}

func (e *Engine) ToggleDarkMode() {
	e.prefs.ToggleDarkMode()
	e.notify()
}

// View снимок состояния только для чтения
type View struct {
	Query        string
	Suggestions  []models.Suggestion
	SuggestState models.RequestState
	Weather      *models.Snapshot
	WeatherState models.RequestState
	Alert        *string
	Selected     string
	HasSelected  bool
	Preferences  models.Preferences
}

// View собирает текущее состояние всех компонентов
func (e *Engine) View() View {
	selected, has := e.sel.Selected()
	return View{
		Query:        e.suggest.Query(),
		Suggestions:  e.suggest.Suggestions(),
		SuggestState: e.suggest.State(),
		Weather:      e.weather.Snapshot(),
		WeatherState: e.weather.State(),
		Alert:        e.weather.Alert(),
		Selected:     selected,
		HasSelected:  has,
		Preferences:  e.prefs.Get(),
	}
}

// ExpandedDay раскрытый день, если он есть в текущем прогнозе.
// Выбор не сбрасывается новой загрузкой, поэтому ключ может указывать на отсутствующий день.
func (v View) ExpandedDay() (models.Day, bool) {
	if !v.HasSelected {
		return models.Day{}, false
	}
	return v.Weather.Day(v.Selected)
}
