package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"weather-lookup/models"
)

// Store постоянный кеш прогнозов в SQLite
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open открывает (или создает) базу по пути; ":memory:" дает временную базу
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу: %w", err)
	}
	// in-memory база живет в одном соединении
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, now: time.Now}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS forecast_cache (
			cache_key  TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("не удалось создать схему: %w", err)
	}
	return nil
}

// Get возвращает непросроченный снимок по ключу и момент его истечения
func (s *Store) Get(key string) (*models.Snapshot, time.Time, bool, error) {
	var data string
	var expiresAt time.Time
	err := s.db.QueryRow(
		"SELECT data, expires_at FROM forecast_cache WHERE cache_key = ?", key,
	).Scan(&data, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("ошибка чтения кеша: %w", err)
	}
	if s.now().After(expiresAt) {
		return nil, time.Time{}, false, nil
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("поврежденная запись кеша %q: %w", key, err)
	}
	return &snapshot, expiresAt, true, nil
}

// Set сохраняет снимок на ttl
func (s *Store) Set(key string, snapshot *models.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("ошибка сериализации: %w", err)
	}

	now := s.now()
	_, err = s.db.Exec(`
		INSERT INTO forecast_cache (cache_key, data, created_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			data = excluded.data,
			created_at = excluded.created_at,
			expires_at = excluded.expires_at`,
		key, string(data), now.UTC(), now.Add(ttl).UTC(),
	)
	if err != nil {
		return fmt.Errorf("ошибка записи кеша: %w", err)
	}
	return nil
}

// Purge удаляет просроченные записи
func (s *Store) Purge() (int64, error) {
	res, err := s.db.Exec("DELETE FROM forecast_cache WHERE expires_at < ?", s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки кеша: %w", err)
	}
	return res.RowsAffected()
}

// Clear удаляет все записи
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM forecast_cache"); err != nil {
		return fmt.Errorf("ошибка очистки кеша: %w", err)
	}
	return nil
}

// SetClock подменяет источник времени (используется в тестах)
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Close() error {
	return s.db.Close()
}
