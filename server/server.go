package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"weather-lookup/engine"
	"weather-lookup/models"
	"weather-lookup/observability"
	"weather-lookup/present"
	"weather-lookup/providers"
)

// код weatherapi для "No matching location found."
const codeLocationNotFound = 1006

type Server struct {
	searcher   providers.Searcher
	forecaster providers.Forecaster
	days       int
}

func New(searcher providers.Searcher, forecaster providers.Forecaster, days int) *Server {
	if days <= 0 {
		days = engine.DefaultForecastDays
	}
	return &Server{searcher: searcher, forecaster: forecaster, days: days}
}

// Router собирает маршруты API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(countRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", observability.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/search", s.handleSearch)
		r.Get("/weather", s.handleWeather)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"providers": []string{s.searcher.Name(), s.forecaster.Name()},
	})
}

// handleSearch повторяет порог контроллера подсказок; ошибки поиска отдают пустой список
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if utf8.RuneCountInString(q) <= engine.MinQueryLength {
		writeJSON(w, http.StatusOK, []models.Suggestion{})
		return
	}

	suggestions, err := s.searcher.Search(r.Context(), q)
	if err != nil {
		slog.Debug("ошибка поиска подсказок", "query", q, "error", err)
		writeJSON(w, http.StatusOK, []models.Suggestion{})
		return
	}
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := strings.TrimSpace(params.Get("q"))
	if q == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "query parameter 'q' is required"})
		return
	}

	prefs := models.Preferences{
		UseFahrenheit: boolParam(params.Get("fahrenheit")),
		Use24Hour:     boolParam(params.Get("24h")),
	}

	loc := time.Local
	if tz := params.Get("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid tz parameter", Details: err.Error()})
			return
		}
		loc = l
	}

	snapshot, err := s.forecaster.Forecast(r.Context(), q, s.days)
	if err != nil {
		var perr *providers.ProviderError
		if errors.As(err, &perr) {
			status := http.StatusBadGateway
			if perr.Code == codeLocationNotFound {
				status = http.StatusNotFound
			}
			writeJSON(w, status, models.ErrorResponse{Error: perr.Message})
			return
		}
		slog.Warn("не удалось получить погоду", "query", q, "error", err)
		writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: engine.GenericFetchError, Details: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, present.Build(snapshot, prefs, engine.DeriveAlert(snapshot), loc))
}

func boolParam(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// countRequests считает запросы по шаблону маршрута
func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}
