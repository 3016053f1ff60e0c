package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"weather-lookup/models"
	"weather-lookup/observability"
)

// RateLimited ограничивает частоту обращений к провайдеру.
// Один лимитер общий для поиска и прогноза: у провайдера одна квота на ключ.
type RateLimited struct {
	searcher   Searcher
	forecaster Forecaster
	limiter    *rate.Limiter
}

// NewRateLimited оборачивает источники; rps может быть дробным, burst задает размер всплеска.
// Любой из источников может быть nil, если он не нужен.
func NewRateLimited(searcher Searcher, forecaster Forecaster, rps float64, burst int) *RateLimited {
	return &RateLimited{
		searcher:   searcher,
		forecaster: forecaster,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Name() string {
	switch {
	case r.forecaster != nil:
		return r.forecaster.Name()
	case r.searcher != nil:
		return r.searcher.Name()
	}
	return "unknown"
}

func (r *RateLimited) Search(ctx context.Context, text string) ([]models.Suggestion, error) {
	if r.searcher == nil {
		return nil, fmt.Errorf("поиск не настроен")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ожидание лимита прервано: %w", err)
	}
	suggestions, err := r.searcher.Search(ctx, text)
	observability.ProviderRequests.WithLabelValues("search", observability.Outcome(err)).Inc()
	return suggestions, err
}

func (r *RateLimited) Forecast(ctx context.Context, query string, days int) (*models.Snapshot, error) {
	if r.forecaster == nil {
		return nil, fmt.Errorf("прогноз не настроен")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("ожидание лимита прервано: %w", err)
	}
	snapshot, err := r.forecaster.Forecast(ctx, query, days)
	observability.ProviderRequests.WithLabelValues("forecast", observability.Outcome(err)).Inc()
	return snapshot, err
}
