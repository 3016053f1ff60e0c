package engine

import (
	"errors"
	"testing"

	"weather-lookup/models"
)

func TestOnQueryChange_ShortQueryClearsWithoutRequest(t *testing.T) {
	s := newFakeSearcher()
	s.results["Lon"] = []models.Suggestion{{ID: 1, Name: "London", Country: "UK"}}
	e := newTestEngine(s, newFakeForecaster())

	e.OnQueryChange("Lon")
	e.Wait()
	if got := len(e.View().Suggestions); got != 1 {
		t.Fatalf("expected 1 suggestion, got %d", got)
	}

	for _, q := range []string{"Lo", "L", "", "Zü"} {
		e.OnQueryChange(q)
		v := e.View()
		if v.Suggestions != nil {
			t.Errorf("query %q: expected suggestions cleared, got %v", q, v.Suggestions)
		}
		if v.Query != q {
			t.Errorf("query %q: stored query %q", q, v.Query)
		}
	}
	e.Wait()

	if got := s.callCount(); got != 1 {
		t.Errorf("expected 1 search call, got %d", got)
	}
}

func TestOnQueryChange_KeepsProviderOrder(t *testing.T) {
	s := newFakeSearcher()
	s.results["Spring"] = []models.Suggestion{
		{ID: 3, Name: "Springfield", Region: "Illinois", Country: "USA"},
		{ID: 1, Name: "Springfield", Region: "Illinois", Country: "USA"},
		{ID: 2, Name: "Springfield", Region: "Missouri", Country: "USA"},
	}
	e := newTestEngine(s, newFakeForecaster())

	e.OnQueryChange("Spring")
	e.Wait()

	got := e.View().Suggestions
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions verbatim, got %d", len(got))
	}
	for i, want := range []int64{3, 1, 2} {
		if got[i].ID != want {
			t.Errorf("suggestion %d: ID %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestOnQueryChange_LastRequestWins(t *testing.T) {
	tests := []struct {
		name         string
		releaseOrder []string
	}{
		{name: "responses in order", releaseOrder: []string{"Par", "Pari"}},
		{name: "stale response arrives last", releaseOrder: []string{"Pari", "Par"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newFakeSearcher()
			s.results["Par"] = []models.Suggestion{{ID: 1, Name: "Parma"}}
			s.results["Pari"] = []models.Suggestion{{ID: 2, Name: "Paris"}}
			gates := map[string]chan struct{}{
				"Par":  s.gate("Par"),
				"Pari": s.gate("Pari"),
			}
			e := newTestEngine(s, newFakeForecaster())

			e.OnQueryChange("Par")
			e.OnQueryChange("Pari")
			waitFor(t, func() bool { return s.callCount() == 2 })

			for _, q := range tt.releaseOrder {
				close(gates[q])
				if q == "Pari" {
					waitFor(t, func() bool { return !e.View().SuggestState.Loading })
				}
			}
			e.Wait()

			got := e.View().Suggestions
			if len(got) != 1 || got[0].Name != "Paris" {
				t.Errorf("expected response of last issued request, got %v", got)
			}
		})
	}
}

func TestOnQueryChange_ShortQueryInvalidatesInFlight(t *testing.T) {
	s := newFakeSearcher()
	s.results["Lon"] = []models.Suggestion{{ID: 1, Name: "London"}}
	gate := s.gate("Lon")
	e := newTestEngine(s, newFakeForecaster())

	e.OnQueryChange("Lon")
	e.OnQueryChange("Lo")
	close(gate)
	e.Wait()

	if got := e.View().Suggestions; got != nil {
		t.Errorf("expected no suggestions after clearing, got %v", got)
	}
}

func TestOnQueryChange_ErrorKeepsLastGoodList(t *testing.T) {
	s := newFakeSearcher()
	s.results["Ber"] = []models.Suggestion{{ID: 1, Name: "Berlin"}}
	s.errs["Berx"] = errors.New("connection reset")
	e := newTestEngine(s, newFakeForecaster())

	e.OnQueryChange("Ber")
	e.Wait()
	e.OnQueryChange("Berx")
	e.Wait()

	v := e.View()
	if len(v.Suggestions) != 1 || v.Suggestions[0].Name != "Berlin" {
		t.Errorf("expected last good list, got %v", v.Suggestions)
	}
	if v.SuggestState.Error != "" {
		t.Errorf("suggestion errors must not surface, got %q", v.SuggestState.Error)
	}
	if v.SuggestState.Loading {
		t.Error("expected loading=false after failed search")
	}
}

func TestSuggestionErrorsDoNotTouchWeather(t *testing.T) {
	s := newFakeSearcher()
	s.errs["Rom"] = errors.New("boom")
	f := newFakeForecaster()
	f.snapshots["Rome"] = snapshotWithHours("Rome", hoursWithText("Sunny"))
	e := newTestEngine(s, f)

	e.FetchWeather("Rome")
	e.Wait()
	e.OnQueryChange("Rom")
	e.Wait()

	v := e.View()
	if v.Weather == nil || v.WeatherState.Error != "" {
		t.Errorf("weather state changed by suggestion failure: %+v", v.WeatherState)
	}
}
