package present

import (
	"time"

	"weather-lookup/models"
)

// Report прогноз, приведенный к настройкам пользователя
type Report struct {
	Location  string      `json:"location"`
	LocalTime string      `json:"local_time,omitempty"`
	Current   CurrentView `json:"current"`
	Days      []DayView   `json:"days"`
	Alert     *string     `json:"alert"`
}

type CurrentView struct {
	Temp      string `json:"temp"`
	FeelsLike string `json:"feels_like"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
	Humidity  int    `json:"humidity"`
}

type DayView struct {
	Date      string     `json:"date"`
	Label     string     `json:"label"`
	Min       string     `json:"min"`
	Max       string     `json:"max"`
	Condition string     `json:"condition"`
	Icon      string     `json:"icon"`
	Hours     []HourView `json:"hours,omitempty"`
}

type HourView struct {
	Time      string `json:"time"`
	Temp      string `json:"temp"`
	Condition string `json:"condition"`
	Icon      string `json:"icon"`
}

// Build собирает отчет; loc задает зону для 12-часового формата
func Build(s *models.Snapshot, prefs models.Preferences, alert *string, loc *time.Location) Report {
	useF := prefs.UseFahrenheit
	r := Report{
		Location:  Location(s.Location),
		LocalTime: s.Location.LocalTime,
		Current: CurrentView{
			Temp:      FormatTemp(s.Current.TempC, s.Current.TempF, useF),
			FeelsLike: FormatTemp(s.Current.FeelsLikeC, s.Current.FeelsLikeF, useF),
			Condition: s.Current.Condition.Text,
			Icon:      s.Current.Condition.Icon,
			Humidity:  s.Current.Humidity,
		},
		Days:  make([]DayView, 0, len(s.Forecast.Days)),
		Alert: alert,
	}

	for _, d := range s.Forecast.Days {
		dv := DayView{
			Date:      d.Date,
			Label:     Date(d.Date),
			Min:       FormatTemp(d.MinTempC, d.MinTempF, useF),
			Max:       FormatTemp(d.MaxTempC, d.MaxTempF, useF),
			Condition: d.Condition.Text,
			Icon:      d.Condition.Icon,
			Hours:     make([]HourView, 0, len(d.Hours)),
		}
		for _, h := range d.Hours {
			dv.Hours = append(dv.Hours, HourView{
				Time:      TimeIn(h, prefs.Use24Hour, loc),
				Temp:      FormatTemp(h.TempC, h.TempF, useF),
				Condition: h.Condition.Text,
				Icon:      h.Condition.Icon,
			})
		}
		r.Days = append(r.Days, dv)
	}
	return r
}
