package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"weather-lookup/models"
)

// fakeSearcher отвечает заранее заданными результатами; gate задерживает ответ
type fakeSearcher struct {
	mu      sync.Mutex
	results map[string][]models.Suggestion
	errs    map[string]error
	gates   map[string]chan struct{}
	calls   []string
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: make(map[string][]models.Suggestion),
		errs:    make(map[string]error),
		gates:   make(map[string]chan struct{}),
	}
}

func (f *fakeSearcher) Name() string { return "fake" }

func (f *fakeSearcher) Search(ctx context.Context, text string) ([]models.Suggestion, error) {
	f.mu.Lock()
	f.calls = append(f.calls, text)
	gate := f.gates[text]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.results[text], f.errs[text]
}

func (f *fakeSearcher) gate(text string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[text] = ch
	return ch
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeForecaster аналог fakeSearcher для прогноза
type fakeForecaster struct {
	mu        sync.Mutex
	snapshots map[string]*models.Snapshot
	errs      map[string]error
	gates     map[string]chan struct{}
	calls     []string
	days      []int
}

func newFakeForecaster() *fakeForecaster {
	return &fakeForecaster{
		snapshots: make(map[string]*models.Snapshot),
		errs:      make(map[string]error),
		gates:     make(map[string]chan struct{}),
	}
}

func (f *fakeForecaster) Name() string { return "fake" }

func (f *fakeForecaster) Forecast(ctx context.Context, query string, days int) (*models.Snapshot, error) {
	f.mu.Lock()
	f.calls = append(f.calls, query)
	f.days = append(f.days, days)
	gate := f.gates[query]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshots[query], f.errs[query]
}

func (f *fakeForecaster) gate(query string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[query] = ch
	return ch
}

func newTestEngine(s *fakeSearcher, f *fakeForecaster) *Engine {
	return New(context.Background(), s, f, Options{})
}

// waitFor опрашивает условие, пока оно не выполнится
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func hoursWithText(texts ...string) []models.Hour {
	hours := make([]models.Hour, len(texts))
	for i, text := range texts {
		hours[i] = models.Hour{
			TimeEpoch: int64(1700000000 + i*3600),
			Condition: models.Condition{Text: text},
		}
	}
	return hours
}

func snapshotWithHours(name string, hours []models.Hour) *models.Snapshot {
	return &models.Snapshot{
		Location: models.Location{Name: name, Country: "France"},
		Current: models.Current{
			TempC:     20,
			TempF:     68,
			Condition: models.Condition{Text: "Sunny"},
		},
		Forecast: models.Forecast{Days: []models.Day{
			{Date: "2024-05-01", Hours: hours},
			{Date: "2024-05-02"},
		}},
	}
}
