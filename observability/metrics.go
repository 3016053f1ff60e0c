package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProviderRequests обращения к провайдеру по операции и исходу; попадания в кеш не считаются
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_provider_requests_total",
			Help: "Provider requests by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// StaleSuggestions ответы поиска, отброшенные из-за более нового запроса
	StaleSuggestions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "weather_suggestions_stale_total",
			Help: "Suggestion responses discarded because a newer request was issued.",
		},
	)

	// CacheLookups обращения к кешу прогнозов
	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_cache_lookups_total",
			Help: "Forecast cache lookups by level and result.",
		},
		[]string{"level", "result"},
	)

	// HTTPRequests запросы к HTTP API
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weather_http_requests_total",
			Help: "HTTP API requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)
)

func init() {
	prometheus.MustRegister(ProviderRequests, StaleSuggestions, CacheLookups, HTTPRequests)
}

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}

// Outcome метка исхода для ProviderRequests
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
