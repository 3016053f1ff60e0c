package engine

import (
	"fmt"
	"strings"

	"weather-lookup/models"
)

// AlertKind класс осадков в предупреждении
type AlertKind string

const (
	AlertRain AlertKind = "Rain"
	AlertSnow AlertKind = "Snow"
)

// alertWindow сколько первых часов дня 0 просматривается
const alertWindow = 12

const alertTemplate = "%s expected today. Plan ahead!"

// ClassifyCondition определяет класс осадков по тексту условий.
// Снег важнее дождя, если в тексте есть оба.
func ClassifyCondition(text string) (AlertKind, bool) {
	t := strings.ToLower(text)
	switch {
	case strings.Contains(t, "snow"):
		return AlertSnow, true
	case strings.Contains(t, "rain"):
		return AlertRain, true
	}
	return "", false
}

// AlertMessage текст предупреждения для класса осадков
func AlertMessage(kind AlertKind) string {
	return fmt.Sprintf(alertTemplate, kind)
}

// DeriveAlert ищет первый час с дождем или снегом среди первых 12 часов первого дня.
// Чистая функция: nil, если совпадений нет.
func DeriveAlert(snapshot *models.Snapshot) *string {
	if snapshot == nil || len(snapshot.Forecast.Days) == 0 {
		return nil
	}

	hours := snapshot.Forecast.Days[0].Hours
	if len(hours) > alertWindow {
		hours = hours[:alertWindow]
	}

	for _, h := range hours {
		if kind, ok := ClassifyCondition(h.Condition.Text); ok {
			msg := AlertMessage(kind)
			return &msg
		}
	}
	return nil
}
