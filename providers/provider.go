package providers

import (
	"context"
	"errors"
	"fmt"

	"weather-lookup/models"
)

// Searcher источник подсказок мест
type Searcher interface {
	Name() string
	Search(ctx context.Context, text string) ([]models.Suggestion, error)
}

// Forecaster источник текущей погоды и прогноза
type Forecaster interface {
	Name() string
	Forecast(ctx context.Context, query string, days int) (*models.Snapshot, error)
}

// ErrTransport оборачивает сетевые ошибки и ошибки разбора ответа
var ErrTransport = errors.New("transport error")

// ProviderError структурированная ошибка из тела ответа провайдера.
// Message показывается пользователю как есть.
type ProviderError struct {
	Provider string
	Status   int
	Code     int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Status)
}
