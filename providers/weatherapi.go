package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weather-lookup/models"
)

const weatherAPIBaseURL = "https://api.weatherapi.com/v1"

// WeatherAPIProvider клиент weatherapi.com: поиск мест и прогноз
type WeatherAPIProvider struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

func NewWeatherAPIProvider(apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		apiKey: apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: weatherAPIBaseURL,
	}
}

// WithBaseURL подменяет адрес API (используется в тестах)
func (p *WeatherAPIProvider) WithBaseURL(baseURL string) *WeatherAPIProvider {
	p.baseURL = strings.TrimRight(baseURL, "/")
	return p
}

// WithHTTPClient подменяет HTTP клиент
func (p *WeatherAPIProvider) WithHTTPClient(client *http.Client) *WeatherAPIProvider {
	p.client = client
	return p
}

func (p *WeatherAPIProvider) Name() string {
	return "WeatherAPI"
}

func (p *WeatherAPIProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Search ищет места по началу названия (search.json)
func (p *WeatherAPIProvider) Search(ctx context.Context, text string) ([]models.Suggestion, error) {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", text)

	body, err := p.get(ctx, "search.json", query)
	if err != nil {
		return nil, err
	}

	var result []struct {
		ID      int64   `json:"id"`
		Name    string  `json:"name"`
		Region  string  `json:"region"`
		Country string  `json:"country"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: ошибка парсинга JSON: %w", ErrTransport, err)
	}

	suggestions := make([]models.Suggestion, 0, len(result))
	for _, r := range result {
		suggestions = append(suggestions, models.Suggestion{
			ID:      r.ID,
			Name:    r.Name,
			Region:  r.Region,
			Country: r.Country,
			Lat:     r.Lat,
			Lon:     r.Lon,
		})
	}
	return suggestions, nil
}

type apiCondition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code"`
}

func (c apiCondition) toModel() models.Condition {
	icon := c.Icon
	if strings.HasPrefix(icon, "//") {
		icon = "https:" + icon
	}
	return models.Condition{Text: c.Text, Icon: icon, Code: c.Code}
}

// Forecast получает текущую погоду и прогноз на days дней (forecast.json)
func (p *WeatherAPIProvider) Forecast(ctx context.Context, q string, days int) (*models.Snapshot, error) {
	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", q)
	query.Set("days", strconv.Itoa(days))
	query.Set("aqi", "no")
	query.Set("alerts", "no")

	body, err := p.get(ctx, "forecast.json", query)
	if err != nil {
		return nil, err
	}

	var result struct {
		Location struct {
			Name      string `json:"name"`
			Region    string `json:"region"`
			Country   string `json:"country"`
			LocalTime string `json:"localtime"`
		} `json:"location"`
		Current struct {
			LastUpdated string       `json:"last_updated"`
			TempC       float64      `json:"temp_c"`
			TempF       float64      `json:"temp_f"`
			FeelsLikeC  float64      `json:"feelslike_c"`
			FeelsLikeF  float64      `json:"feelslike_f"`
			Humidity    int          `json:"humidity"`
			WindKph     float64      `json:"wind_kph"`
			Condition   apiCondition `json:"condition"`
		} `json:"current"`
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC  float64      `json:"maxtemp_c"`
					MaxTempF  float64      `json:"maxtemp_f"`
					MinTempC  float64      `json:"mintemp_c"`
					MinTempF  float64      `json:"mintemp_f"`
					Condition apiCondition `json:"condition"`
				} `json:"day"`
				Hour []struct {
					TimeEpoch    int64        `json:"time_epoch"`
					Time         string       `json:"time"`
					TempC        float64      `json:"temp_c"`
					TempF        float64      `json:"temp_f"`
					Condition    apiCondition `json:"condition"`
					ChanceOfRain int          `json:"chance_of_rain"`
					ChanceOfSnow int          `json:"chance_of_snow"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: ошибка парсинга JSON: %w", ErrTransport, err)
	}
	if result.Location.Name == "" {
		return nil, fmt.Errorf("%w: нет данных о месте в ответе", ErrTransport)
	}

	snapshot := &models.Snapshot{
		Location: models.Location{
			Name:      result.Location.Name,
			Region:    result.Location.Region,
			Country:   result.Location.Country,
			LocalTime: result.Location.LocalTime,
		},
		Current: models.Current{
			TempC:       result.Current.TempC,
			TempF:       result.Current.TempF,
			FeelsLikeC:  result.Current.FeelsLikeC,
			FeelsLikeF:  result.Current.FeelsLikeF,
			Humidity:    result.Current.Humidity,
			WindKph:     result.Current.WindKph,
			Condition:   result.Current.Condition.toModel(),
			LastUpdated: result.Current.LastUpdated,
		},
		Forecast: models.Forecast{
			Days: make([]models.Day, 0, len(result.Forecast.ForecastDay)),
		},
	}

	for _, fd := range result.Forecast.ForecastDay {
		day := models.Day{
			Date:      fd.Date,
			MinTempC:  fd.Day.MinTempC,
			MaxTempC:  fd.Day.MaxTempC,
			MinTempF:  fd.Day.MinTempF,
			MaxTempF:  fd.Day.MaxTempF,
			Condition: fd.Day.Condition.toModel(),
			Hours:     make([]models.Hour, 0, len(fd.Hour)),
		}
		// порядок часов сохраняется как в ответе
		for _, h := range fd.Hour {
			day.Hours = append(day.Hours, models.Hour{
				TimeEpoch:    h.TimeEpoch,
				Time:         h.Time,
				TempC:        h.TempC,
				TempF:        h.TempF,
				Condition:    h.Condition.toModel(),
				ChanceOfRain: h.ChanceOfRain,
				ChanceOfSnow: h.ChanceOfSnow,
			})
		}
		snapshot.Forecast.Days = append(snapshot.Forecast.Days, day)
	}

	return snapshot, nil
}

// get выполняет запрос и отделяет структурированную ошибку провайдера от прочих сбоев
func (p *WeatherAPIProvider) get(ctx context.Context, endpoint string, query url.Values) ([]byte, error) {
	if !p.IsAvailable() {
		return nil, fmt.Errorf("провайдер %s не настроен", p.Name())
	}

	reqURL := fmt.Sprintf("%s/%s?%s", p.baseURL, endpoint, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка HTTP запроса: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: ошибка чтения ответа: %w", ErrTransport, err)
	}

	// weatherapi может вернуть {error:{message}} с любым статусом
	var apiError struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiError); err == nil && apiError.Error != nil && apiError.Error.Message != "" {
		return nil, &ProviderError{
			Provider: p.Name(),
			Status:   resp.StatusCode,
			Code:     apiError.Error.Code,
			Message:  apiError.Error.Message,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ошибка API: статус %d", ErrTransport, resp.StatusCode)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: пустой ответ", ErrTransport)
	}

	return body, nil
}
