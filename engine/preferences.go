package engine

import (
	"sync"

	"weather-lookup/models"
)

// Preferences хранит настройки отображения. Меняется только явными переключениями.
type Preferences struct {
	mu    sync.RWMutex
	prefs models.Preferences
}

func (p *Preferences) Get() models.Preferences {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.prefs
}

func (p *Preferences) Set(prefs models.Preferences) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefs = prefs
}

func (p *Preferences) ToggleFahrenheit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefs.UseFahrenheit = !p.prefs.UseFahrenheit
}

func (p *Preferences) Toggle24Hour() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefs.Use24Hour = !p.prefs.Use24Hour
}

func (p *Preferences) ToggleDarkMode() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prefs.DarkMode = !p.prefs.DarkMode
}
