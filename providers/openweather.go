package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-lookup/models"
)

// OpenWeatherProvider альтернативный источник подсказок (геокодер OpenWeatherMap).
// Прогноз по-прежнему берется у WeatherAPI: подсказка несет координаты.
type OpenWeatherProvider struct {
	apiKey  string
	client  *http.Client
	baseURL string
	limit   int
}

func NewOpenWeatherProvider(apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: "https://api.openweathermap.org/geo/1.0/direct",
		limit:   5,
	}
}

// WithBaseURL подменяет адрес геокодера (используется в тестах)
func (p *OpenWeatherProvider) WithBaseURL(baseURL string) *OpenWeatherProvider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return "OpenWeatherMap"
}

func (p *OpenWeatherProvider) IsAvailable() bool {
	return p.apiKey != ""
}

func (p *OpenWeatherProvider) Search(ctx context.Context, text string) ([]models.Suggestion, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("провайдер %s не настроен", p.Name())
	}

	// Формируем запрос
	query := url.Values{}
	query.Set("q", text)
	query.Set("limit", strconv.Itoa(p.limit))
	query.Set("appid", p.apiKey)

	reqURL := fmt.Sprintf("%s?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка HTTP запроса: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiError struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiError); err == nil && apiError.Message != "" {
			return nil, &ProviderError{Provider: p.Name(), Status: resp.StatusCode, Message: apiError.Message}
		}
		return nil, fmt.Errorf("%w: ошибка API: статус %d", ErrTransport, resp.StatusCode)
	}

	// Парсим ответ
	var result []struct {
		Name    string  `json:"name"`
		State   string  `json:"state"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: ошибка парсинга JSON: %w", ErrTransport, err)
	}

	// у геокодера нет идентификаторов, ID остается нулевым
	suggestions := make([]models.Suggestion, 0, len(result))
	for _, r := range result {
		suggestions = append(suggestions, models.Suggestion{
			Name:    r.Name,
			Region:  r.State,
			Country: r.Country,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}
	return suggestions, nil
}
