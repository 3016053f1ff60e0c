package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"weather-lookup/models"
	"weather-lookup/observability"
	"weather-lookup/providers"
)

// Backend второй уровень кеша (например, SQLite). Get возвращает момент истечения записи.
type Backend interface {
	Get(key string) (*models.Snapshot, time.Time, bool, error)
	Set(key string, snapshot *models.Snapshot, ttl time.Duration) error
	Clear() error
}

// Forecaster кеширует прогнозы поверх провайдера. Ошибки не кешируются.
type Forecaster struct {
	source  providers.Forecaster
	backend Backend
	ttl     time.Duration
	now     func() time.Time

	cacheMu sync.Mutex
	cache   map[string]cacheEntry
}

type cacheEntry struct {
	data      *models.Snapshot
	expiresAt time.Time
}

// New создает кеш; backend может быть nil, ttl <= 0 отключает кеширование
func New(source providers.Forecaster, backend Backend, ttl time.Duration) *Forecaster {
	return &Forecaster{
		source:  source,
		backend: backend,
		ttl:     ttl,
		now:     time.Now,
		cache:   make(map[string]cacheEntry),
	}
}

func (f *Forecaster) Name() string {
	return f.source.Name()
}

// Forecast отдает прогноз из кеша или запрашивает провайдера
func (f *Forecaster) Forecast(ctx context.Context, query string, days int) (*models.Snapshot, error) {
	if f.ttl <= 0 {
		return f.source.Forecast(ctx, query, days)
	}

	key := cacheKey(query, days)

	// Пробуем получить из кеша
	if cached, found := f.getFromCache(key); found {
		observability.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return cached, nil
	}
	observability.CacheLookups.WithLabelValues("memory", "miss").Inc()

	if f.backend != nil {
		cached, expiresAt, found, err := f.backend.Get(key)
		switch {
		case err != nil:
			slog.Warn("ошибка чтения кеша", "key", key, "error", err)
		case found:
			observability.CacheLookups.WithLabelValues("backend", "hit").Inc()
			// запись в памяти живет не дольше строки в базе
			f.saveToCache(key, cached, expiresAt)
			return cached, nil
		default:
			observability.CacheLookups.WithLabelValues("backend", "miss").Inc()
		}
	}

	snapshot, err := f.source.Forecast(ctx, query, days)
	if err != nil {
		return nil, err
	}

	// Сохраняем в кеш
	f.saveToCache(key, snapshot, f.now().Add(f.ttl))
	if f.backend != nil {
		if err := f.backend.Set(key, snapshot, f.ttl); err != nil {
			slog.Warn("не удалось обновить кеш", "key", key, "error", err)
		}
	}

	return snapshot, nil
}

func cacheKey(query string, days int) string {
	return fmt.Sprintf("%s|%d", strings.ToLower(strings.TrimSpace(query)), days)
}

// getFromCache получает данные из кеша; просроченная запись удаляется
func (f *Forecaster) getFromCache(key string) (*models.Snapshot, bool) {
	f.cacheMu.Lock()
	defer f.cacheMu.Unlock()

	entry, found := f.cache[key]
	if !found {
		return nil, false
	}

	// Проверяем TTL
	if f.now().After(entry.expiresAt) {
		delete(f.cache, key)
		return nil, false
	}

	return entry.data, true
}

// saveToCache сохраняет данные в кеш и выметает просроченные записи
func (f *Forecaster) saveToCache(key string, data *models.Snapshot, expiresAt time.Time) {
	f.cacheMu.Lock()
	defer f.cacheMu.Unlock()

	now := f.now()
	for k, entry := range f.cache {
		if now.After(entry.expiresAt) {
			delete(f.cache, k)
		}
	}

	f.cache[key] = cacheEntry{
		data:      data,
		expiresAt: expiresAt,
	}
}

// Clear очищает оба уровня кеша
func (f *Forecaster) Clear() error {
	f.cacheMu.Lock()
	f.cache = make(map[string]cacheEntry)
	f.cacheMu.Unlock()

	if f.backend != nil {
		return f.backend.Clear()
	}
	return nil
}
