package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"weather-lookup/engine"
	"weather-lookup/present"
)

// changedMsg движок сообщил об изменении состояния
type changedMsg struct{}

// waitForChange ждет следующего сигнала движка
func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

// Model представление поверх движка. Состояние погоды и настроек живет в движке,
// здесь только курсоры и поле ввода.
type Model struct {
	eng   *engine.Engine
	input textinput.Model
	loc   *time.Location

	suggestionCursor int
	dayCursor        int
	width            int
}

// New создает модель; loc задает зону для 12-часового формата
func New(eng *engine.Engine, loc *time.Location) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter city name..."
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 40

	if loc == nil {
		loc = time.Local
	}

	return Model{
		eng:              eng,
		input:            ti,
		loc:              loc,
		suggestionCursor: -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForChange(m.eng.Changes()))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case changedMsg:
		m.clampCursors()
		return m, waitForChange(m.eng.Changes())

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.eng.View()

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "ctrl+f":
		m.eng.ToggleFahrenheit()
		return m, nil
	case "ctrl+t":
		m.eng.Toggle24Hour()
		return m, nil
	case "ctrl+d":
		m.eng.ToggleDarkMode()
		return m, nil

	case "up":
		if m.suggestionCursor >= 0 {
			m.suggestionCursor--
		}
		return m, nil
	case "down":
		if m.suggestionCursor < len(view.Suggestions)-1 {
			m.suggestionCursor++
		}
		return m, nil

	case "enter":
		if m.suggestionCursor >= 0 && m.suggestionCursor < len(view.Suggestions) {
			s := view.Suggestions[m.suggestionCursor]
			m.input.SetValue(s.Label())
			m.input.CursorEnd()
			m.eng.SelectSuggestion(s)
		} else {
			m.eng.FetchWeather(m.input.Value())
		}
		m.suggestionCursor = -1
		m.dayCursor = 0
		return m, nil

	case "tab", "shift+tab":
		if view.Weather == nil || len(view.Weather.Forecast.Days) == 0 {
			return m, nil
		}
		n := len(view.Weather.Forecast.Days)
		if msg.String() == "tab" {
			m.dayCursor = (m.dayCursor + 1) % n
		} else {
			m.dayCursor = (m.dayCursor + n - 1) % n
		}
		return m, nil

	case "ctrl+e":
		if view.Weather != nil && m.dayCursor < len(view.Weather.Forecast.Days) {
			m.eng.ToggleDay(view.Weather.Forecast.Days[m.dayCursor].Date)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.suggestionCursor = -1
		m.eng.OnQueryChange(after)
	}
	return m, cmd
}

func (m *Model) clampCursors() {
	view := m.eng.View()
	if m.suggestionCursor >= len(view.Suggestions) {
		m.suggestionCursor = len(view.Suggestions) - 1
	}
	days := 0
	if view.Weather != nil {
		days = len(view.Weather.Forecast.Days)
	}
	if m.dayCursor >= days {
		m.dayCursor = 0
	}
}

func (m Model) View() string {
	view := m.eng.View()
	th := newTheme(view.Preferences.DarkMode)

	var b strings.Builder
	b.WriteString(th.title.Render("Weather App"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	for i, s := range view.Suggestions {
		line := "  " + s.Label()
		if i == m.suggestionCursor {
			line = th.selected.Render("› " + s.Label())
		} else {
			line = th.text.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	switch {
	case view.WeatherState.Loading:
		b.WriteString(th.skeleton.Render("░░░░░░░░░░░░  ░░░░░░\n░░░░░░░░  ░░░░░░░░░░░░░░"))
		b.WriteString("\n")
	case view.WeatherState.Error != "":
		b.WriteString(th.errorText.Render(view.WeatherState.Error))
		b.WriteString("\n")
	case view.Weather != nil:
		b.WriteString(m.renderWeather(view, th))
	}

	b.WriteString("\n")
	b.WriteString(renderHelp(view, th))
	return b.String()
}

func (m Model) renderWeather(view engine.View, th theme) string {
	s := view.Weather
	prefs := view.Preferences

	var b strings.Builder
	current := fmt.Sprintf("%s\n%s  %s",
		th.text.Bold(true).Render(present.Location(s.Location)),
		th.temp.Render(present.FormatTemp(s.Current.TempC, s.Current.TempF, prefs.UseFahrenheit)),
		th.text.Render(s.Current.Condition.Text),
	)
	b.WriteString(th.panel.Render(current))
	b.WriteString("\n")

	if view.Alert != nil {
		b.WriteString(th.alert.Render("⚠ " + *view.Alert))
		b.WriteString("\n")
	}

	expanded, hasExpanded := view.ExpandedDay()
	for i, d := range s.Forecast.Days {
		marker := "  "
		if i == m.dayCursor {
			marker = th.dayCursor.Render("▸ ")
		}
		line := fmt.Sprintf("%-24s %6s / %-6s %s",
			present.Date(d.Date),
			present.FormatTemp(d.MinTempC, d.MinTempF, prefs.UseFahrenheit),
			present.FormatTemp(d.MaxTempC, d.MaxTempF, prefs.UseFahrenheit),
			d.Condition.Text,
		)
		b.WriteString(marker + th.text.Render(line) + "\n")

		if hasExpanded && expanded.Date == d.Date {
			for _, h := range d.Hours {
				b.WriteString(th.muted.Render(fmt.Sprintf("      %-8s %6s  %s",
					present.TimeIn(h, prefs.Use24Hour, m.loc),
					present.FormatTemp(h.TempC, h.TempF, prefs.UseFahrenheit),
					h.Condition.Text,
				)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func renderHelp(view engine.View, th theme) string {
	unit := "°C"
	if view.Preferences.UseFahrenheit {
		unit = "°F"
	}
	clock := "12h"
	if view.Preferences.Use24Hour {
		clock = "24h"
	}
	mode := "light"
	if view.Preferences.DarkMode {
		mode = "dark"
	}

	items := [][2]string{
		{"↑/↓", "suggestion"},
		{"enter", "search"},
		{"tab", "day"},
		{"ctrl+e", "expand"},
		{"ctrl+f", unit},
		{"ctrl+t", clock},
		{"ctrl+d", mode},
		{"esc", "quit"},
	}
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, th.helpKey.Render(it[0])+" "+th.helpAction.Render(it[1]))
	}
	return strings.Join(parts, "  ")
}
