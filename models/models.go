package models

import (
	"fmt"
	"strings"
)

// Suggestion подсказка места из поиска провайдера
type Suggestion struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
}

// Label строка для отображения в списке подсказок
func (s Suggestion) Label() string {
	parts := []string{s.Name}
	if s.Region != "" {
		parts = append(parts, s.Region)
	}
	if s.Country != "" {
		parts = append(parts, s.Country)
	}
	return strings.Join(parts, ", ")
}

// Query запрос к прогнозу для выбранной подсказки.
// Координаты точнее названия, поэтому используются, если есть.
func (s Suggestion) Query() string {
	if s.Lat != 0 || s.Lon != 0 {
		return fmt.Sprintf("%.4f,%.4f", s.Lat, s.Lon)
	}
	return s.Name
}

// Location место, для которого получен прогноз
type Location struct {
	Name      string `json:"name"`
	Region    string `json:"region,omitempty"`
	Country   string `json:"country"`
	LocalTime string `json:"localtime,omitempty"`
}

// Condition описание погодных условий
type Condition struct {
	Text string `json:"text"`
	Icon string `json:"icon"`
	Code int    `json:"code,omitempty"`
}

// Current текущая погода. Провайдер отдает оба набора единиц.
type Current struct {
	TempC       float64   `json:"temp_c"`
	TempF       float64   `json:"temp_f"`
	FeelsLikeC  float64   `json:"feelslike_c"`
	FeelsLikeF  float64   `json:"feelslike_f"`
	Humidity    int       `json:"humidity"`
	WindKph     float64   `json:"wind_kph"`
	Condition   Condition `json:"condition"`
	LastUpdated string    `json:"last_updated,omitempty"`
}

// Hour почасовой прогноз
type Hour struct {
	TimeEpoch    int64     `json:"time_epoch"`
	Time         string    `json:"time"` // "2006-01-02 15:04" в локальном времени места
	TempC        float64   `json:"temp_c"`
	TempF        float64   `json:"temp_f"`
	Condition    Condition `json:"condition"`
	ChanceOfRain int       `json:"chance_of_rain"`
	ChanceOfSnow int       `json:"chance_of_snow"`
}

// Day прогноз на календарный день. Date служит ключом выбора дня.
type Day struct {
	Date      string    `json:"date"`
	MinTempC  float64   `json:"mintemp_c"`
	MaxTempC  float64   `json:"maxtemp_c"`
	MinTempF  float64   `json:"mintemp_f"`
	MaxTempF  float64   `json:"maxtemp_f"`
	Condition Condition `json:"condition"`
	Hours     []Hour    `json:"hours"`
}

// Forecast прогноз по дням
type Forecast struct {
	Days []Day `json:"days"`
}

// Snapshot полный ответ: текущая погода и прогноз для одного места
type Snapshot struct {
	Location Location `json:"location"`
	Current  Current  `json:"current"`
	Forecast Forecast `json:"forecast"`
}

// Day возвращает день по ключу даты
func (s *Snapshot) Day(date string) (Day, bool) {
	if s == nil {
		return Day{}, false
	}
	for _, d := range s.Forecast.Days {
		if d.Date == date {
			return d, true
		}
	}
	return Day{}, false
}

// Preferences пользовательские настройки отображения
type Preferences struct {
	UseFahrenheit bool `json:"use_fahrenheit"`
	Use24Hour     bool `json:"use_24_hour"`
	DarkMode      bool `json:"dark_mode"`
}

// RequestState состояние запроса контроллера. Пустой Error означает отсутствие ошибки.
type RequestState struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// ErrorResponse структура для ошибок
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
