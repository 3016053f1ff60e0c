package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"weather-lookup/models"
	"weather-lookup/observability"
)

type countingProvider struct {
	searches  int
	forecasts int
}

func (c *countingProvider) Name() string { return "counting" }

func (c *countingProvider) Search(ctx context.Context, text string) ([]models.Suggestion, error) {
	c.searches++
	return []models.Suggestion{{Name: text}}, nil
}

func (c *countingProvider) Forecast(ctx context.Context, query string, days int) (*models.Snapshot, error) {
	c.forecasts++
	return &models.Snapshot{Location: models.Location{Name: query}}, nil
}

func TestRateLimited_Forwards(t *testing.T) {
	inner := &countingProvider{}
	r := NewRateLimited(inner, inner, 100, 10)

	if _, err := r.Search(context.Background(), "Paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err := r.Forecast(context.Background(), "Paris", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Location.Name != "Paris" || inner.searches != 1 || inner.forecasts != 1 {
		t.Errorf("calls not forwarded: %+v", inner)
	}
	if r.Name() != "counting" {
		t.Errorf("Name() = %q", r.Name())
	}
}

func TestRateLimited_ContextCanceled(t *testing.T) {
	inner := &countingProvider{}
	// burst 1 уходит на первый запрос, второй ждет почти минуту
	r := NewRateLimited(inner, inner, 1.0/60, 1)

	if _, err := r.Search(context.Background(), "Paris"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Forecast(ctx, "Paris", 3)
	if err == nil {
		t.Fatal("expected error when context is canceled")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
	if inner.forecasts != 0 {
		t.Error("provider must not be called when the limiter wait fails")
	}
}

func TestRateLimited_MissingSource(t *testing.T) {
	inner := &countingProvider{}
	r := NewRateLimited(inner, nil, 10, 1)

	if _, err := r.Forecast(context.Background(), "Paris", 3); err == nil {
		t.Error("expected error without forecaster")
	}
}

func TestRateLimited_CountsProviderRequests(t *testing.T) {
	inner := &countingProvider{}
	r := NewRateLimited(inner, inner, 100, 10)

	forecasts := observability.ProviderRequests.WithLabelValues("forecast", "ok")
	searches := observability.ProviderRequests.WithLabelValues("search", "ok")
	beforeForecasts := testutil.ToFloat64(forecasts)
	beforeSearches := testutil.ToFloat64(searches)

	r.Forecast(context.Background(), "Paris", 3)
	r.Forecast(context.Background(), "Paris", 3)
	r.Search(context.Background(), "Paris")

	if got := testutil.ToFloat64(forecasts) - beforeForecasts; got != 2 {
		t.Errorf("expected 2 forecast requests counted, got %v", got)
	}
	if got := testutil.ToFloat64(searches) - beforeSearches; got != 1 {
		t.Errorf("expected 1 search request counted, got %v", got)
	}
}
