package engine

import (
	"context"
	"log/slog"
	"sync"
	"unicode/utf8"

	"weather-lookup/models"
	"weather-lookup/observability"
	"weather-lookup/providers"
)

// MinQueryLength запросы такой длины и короче не уходят в поиск
const MinQueryLength = 2

// SuggestionController превращает текст запроса в список подсказок.
// Применяется только ответ на последний выданный запрос.
type SuggestionController struct {
	searcher providers.Searcher
	ctx      context.Context
	logger   *slog.Logger
	notify   func()
	wg       *sync.WaitGroup

	mu          sync.Mutex
	query       string
	seq         uint64
	suggestions []models.Suggestion
	state       models.RequestState
}

// OnQueryChange запоминает текст и запускает поиск в фоне.
// Короткий текст синхронно очищает список, и все запросы в полете устаревают.
func (c *SuggestionController) OnQueryChange(text string) {
	c.mu.Lock()
	c.query = text
	c.seq++
	seq := c.seq

	if utf8.RuneCountInString(text) <= MinQueryLength {
		c.suggestions = nil
		c.state.Loading = false
		c.mu.Unlock()
		c.notify()
		return
	}

	c.state.Loading = true
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.search(seq, text)
}

// Clear очищает подсказки, не трогая текст запроса
func (c *SuggestionController) Clear() {
	c.mu.Lock()
	c.seq++
	c.suggestions = nil
	c.state.Loading = false
	c.mu.Unlock()
	c.notify()
}

// SetQuery меняет текст без поиска
func (c *SuggestionController) SetQuery(text string) {
	c.mu.Lock()
	c.query = text
	c.mu.Unlock()
}

func (c *SuggestionController) search(seq uint64, text string) {
	defer c.wg.Done()

	suggestions, err := c.searcher.Search(c.ctx, text)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		observability.StaleSuggestions.Inc()
		c.logger.Debug("устаревший ответ поиска отброшен", "query", text, "seq", seq)
		return
	}

	c.state.Loading = false
	if err != nil {
		// подсказки деградируют молча: остается последний удачный список
		c.mu.Unlock()
		c.logger.Debug("ошибка поиска подсказок", "query", text, "error", err)
		c.notify()
		return
	}

	c.suggestions = suggestions
	c.mu.Unlock()
	c.notify()
}

// Query текущий текст запроса
func (c *SuggestionController) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Suggestions копия текущего списка
func (c *SuggestionController) Suggestions() []models.Suggestion {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suggestions == nil {
		return nil
	}
	out := make([]models.Suggestion, len(c.suggestions))
	copy(out, c.suggestions)
	return out
}

func (c *SuggestionController) State() models.RequestState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}
