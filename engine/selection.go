package engine

import "sync"

// Selection день прогноза, раскрытый в представлении. Не больше одного.
type Selection struct {
	mu       sync.Mutex
	selected string
	has      bool
}

// ToggleDay сворачивает день, если он уже выбран, иначе выбирает его вместо текущего
func (s *Selection) ToggleDay(dateKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.has && s.selected == dateKey {
		s.selected, s.has = "", false
		return
	}
	s.selected, s.has = dateKey, true
}

func (s *Selection) Selected() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected, s.has
}
