package present

import (
	"fmt"
	"math"
	"strings"
	"time"

	"weather-lookup/models"
)

const (
	SymbolCelsius    = "°C"
	SymbolFahrenheit = "°F"
)

// Temp выбирает значение в нужных единицах. Пересчета нет: провайдер отдает оба поля.
func Temp(celsius, fahrenheit float64, useFahrenheit bool) (float64, string) {
	if useFahrenheit {
		return fahrenheit, SymbolFahrenheit
	}
	return celsius, SymbolCelsius
}

// FormatTemp температура, округленная до целого, с символом единиц
func FormatTemp(celsius, fahrenheit float64, useFahrenheit bool) string {
	value, symbol := Temp(celsius, fahrenheit, useFahrenheit)
	rounded := math.Round(value)
	if rounded == 0 {
		rounded = 0 // без "-0"
	}
	return fmt.Sprintf("%.0f%s", rounded, symbol)
}

// Time время часа: в 24-часовом формате строка провайдера как есть,
// в 12-часовом формате метка времени в локальной зоне.
func Time(h models.Hour, use24Hour bool) string {
	return TimeIn(h, use24Hour, time.Local)
}

// TimeIn как Time, но с явной зоной для 12-часового формата
func TimeIn(h models.Hour, use24Hour bool, loc *time.Location) string {
	if use24Hour {
		if i := strings.LastIndex(h.Time, " "); i >= 0 {
			return h.Time[i+1:]
		}
		return h.Time
	}
	return time.Unix(h.TimeEpoch, 0).In(loc).Format("3:04 PM")
}

// Date день недели, месяц и число. Дата провайдера уже в календаре места, зона не меняется.
func Date(dateKey string) string {
	t, err := time.Parse(time.DateOnly, dateKey)
	if err != nil {
		return dateKey
	}
	return t.Format("Monday, January 2")
}

// Location название места со страной
func Location(l models.Location) string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}
