package engine

import (
	"context"
	"testing"

	"weather-lookup/models"
)

func TestToggleDay(t *testing.T) {
	var s Selection

	if _, ok := s.Selected(); ok {
		t.Fatal("expected nothing selected initially")
	}

	s.ToggleDay("2024-05-01")
	if got, ok := s.Selected(); !ok || got != "2024-05-01" {
		t.Fatalf("expected 2024-05-01 selected, got %q %v", got, ok)
	}

	s.ToggleDay("2024-05-01")
	if _, ok := s.Selected(); ok {
		t.Fatal("expected toggling the same day to collapse it")
	}

	s.ToggleDay("2024-05-01")
	s.ToggleDay("2024-05-02")
	if got, ok := s.Selected(); !ok || got != "2024-05-02" {
		t.Fatalf("expected only 2024-05-02 selected, got %q %v", got, ok)
	}
}

func TestSelectionSurvivesFetch(t *testing.T) {
	f := newFakeForecaster()
	f.snapshots["Paris"] = snapshotWithHours("Paris", nil)
	f.snapshots["Rome"] = &models.Snapshot{
		Location: models.Location{Name: "Rome"},
		Forecast: models.Forecast{Days: []models.Day{{Date: "2024-06-10"}}},
	}
	e := newTestEngine(newFakeSearcher(), f)

	e.FetchWeather("Paris")
	e.Wait()
	e.ToggleDay("2024-05-02")

	v := e.View()
	if d, ok := v.ExpandedDay(); !ok || d.Date != "2024-05-02" {
		t.Fatalf("expected expanded 2024-05-02, got %v %v", d, ok)
	}

	e.FetchWeather("Rome")
	e.Wait()

	v = e.View()
	if !v.HasSelected || v.Selected != "2024-05-02" {
		t.Errorf("selection must not be reset by fetch, got %q %v", v.Selected, v.HasSelected)
	}
	if _, ok := v.ExpandedDay(); ok {
		t.Error("expected stale selection to resolve to no expanded day")
	}
}

func TestPreferencesToggles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	e := New(ctx, newFakeSearcher(), newFakeForecaster(), Options{
		Preferences: models.Preferences{Use24Hour: true},
	})

	e.ToggleFahrenheit()
	e.Toggle24Hour()
	e.ToggleDarkMode()

	got := e.View().Preferences
	want := models.Preferences{UseFahrenheit: true, Use24Hour: false, DarkMode: true}
	if got != want {
		t.Errorf("preferences = %+v, want %+v", got, want)
	}
}
