package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"weather-lookup/cache"
	"weather-lookup/config"
	"weather-lookup/engine"
	"weather-lookup/logging"
	"weather-lookup/models"
	"weather-lookup/present"
	"weather-lookup/providers"
	"weather-lookup/server"
	"weather-lookup/store"
	"weather-lookup/tui"
)

var (
	cfg        *config.Config
	searcher   providers.Searcher
	forecaster *cache.Forecaster
	cacheStore *store.Store
)

func main() {
	// Загружаем конфигурацию
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(1)
	}

	slog.SetDefault(logging.New(cfg.LogLevel, os.Stderr))

	if err := setupProviders(); err != nil {
		slog.Error("не удалось настроить провайдеры", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cacheStore != nil {
			cacheStore.Close()
		}
	}()

	// Создаем CLI команды
	var rootCmd = &cobra.Command{
		Use:   "weather",
		Short: "Погода и прогноз по названию места",
		Long:  "Поиск мест с подсказками, текущая погода и прогноз с предупреждением об осадках",
	}

	var tuiCmd = &cobra.Command{
		Use:   "tui",
		Short: "Интерактивный режим в терминале",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd)
		},
	}
	tuiCmd.Flags().Bool("fahrenheit", false, "Показывать температуру в °F")
	tuiCmd.Flags().Bool("24h", false, "24-часовой формат времени")
	tuiCmd.Flags().Bool("dark", false, "Темная тема")

	var getCmd = &cobra.Command{
		Use:   "get [место]",
		Short: "Получить погоду для места",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getWeatherCLI(cmd, strings.Join(args, " "))
		},
	}
	getCmd.Flags().StringP("output", "o", "text", "Формат вывода (text, json)")
	getCmd.Flags().Bool("fahrenheit", false, "Показывать температуру в °F")
	getCmd.Flags().Bool("24h", false, "24-часовой формат времени")
	getCmd.Flags().BoolP("hours", "H", false, "Показать почасовой прогноз на первый день")

	var searchCmd = &cobra.Command{
		Use:   "search [текст]",
		Short: "Показать подсказки мест",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			searchCLI(strings.Join(args, " "))
		},
	}

	// Команда для запуска сервера
	var serverCmd = &cobra.Command{
		Use:   "server",
		Short: "Запуск HTTP сервера",
		Run: func(cmd *cobra.Command, args []string) {
			startServer()
		},
	}

	// Команда для проверки провайдеров
	var providersCmd = &cobra.Command{
		Use:   "providers",
		Short: "Показать список доступных провайдеров",
		Run: func(cmd *cobra.Command, args []string) {
			showProviders()
		},
	}

	// Команда для очистки кеша
	var clearCacheCmd = &cobra.Command{
		Use:   "clear-cache",
		Short: "Очистить кеш",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := forecaster.Clear(); err != nil {
				return err
			}
			fmt.Println("✅ Кеш очищен")
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, getCmd, searchCmd, serverCmd, providersCmd, clearCacheCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupProviders собирает цепочку: провайдер -> лимит запросов -> кеш
func setupProviders() error {
	weatherAPI := providers.NewWeatherAPIProvider(cfg.WeatherAPIKey)
	limited := providers.NewRateLimited(weatherAPI, weatherAPI, cfg.RateLimitRPS, cfg.RateLimitBurst)

	searcher = limited
	if cfg.SuggestProvider == config.SuggestOpenWeather {
		ow := providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey)
		searcher = providers.NewRateLimited(ow, nil, cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	var backend cache.Backend
	if cfg.CacheDB != "" {
		st, err := store.Open(cfg.CacheDB)
		if err != nil {
			return err
		}
		if n, err := st.Purge(); err != nil {
			slog.Warn("не удалось удалить просроченные записи", "error", err)
		} else if n > 0 {
			slog.Debug("удалены просроченные записи кеша", "count", n)
		}
		cacheStore = st
		backend = st
	}

	forecaster = cache.New(limited, backend, cfg.CacheTTL())
	return nil
}

func newEngine(ctx context.Context, prefs models.Preferences, logger *slog.Logger) *engine.Engine {
	return engine.New(ctx, searcher, forecaster, engine.Options{
		ForecastDays: cfg.ForecastDays,
		Preferences:  prefs,
		Logger:       logger,
	})
}

func preferencesFromFlags(cmd *cobra.Command) models.Preferences {
	var prefs models.Preferences
	prefs.UseFahrenheit, _ = cmd.Flags().GetBool("fahrenheit")
	prefs.Use24Hour, _ = cmd.Flags().GetBool("24h")
	if cmd.Flags().Lookup("dark") != nil {
		prefs.DarkMode, _ = cmd.Flags().GetBool("dark")
	}
	return prefs
}

// runTUI запускает интерактивный режим. Stdout занят интерфейсом, поэтому логи идут в LOG_FILE или никуда.
func runTUI(cmd *cobra.Command) error {
	var logOut io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("не удалось открыть файл логов: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := logging.New(cfg.LogLevel, logOut)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng := newEngine(ctx, preferencesFromFlags(cmd), logger)
	_, err := tea.NewProgram(tui.New(eng, time.Local), tea.WithAltScreen()).Run()
	return err
}

// getWeatherCLI получает погоду через CLI
func getWeatherCLI(cmd *cobra.Command, place string) error {
	output, _ := cmd.Flags().GetString("output")
	showHours, _ := cmd.Flags().GetBool("hours")

	eng := newEngine(context.Background(), preferencesFromFlags(cmd), slog.Default())
	eng.FetchWeather(place)
	eng.Wait()

	view := eng.View()
	if view.WeatherState.Error != "" {
		return fmt.Errorf("%s", view.WeatherState.Error)
	}
	if view.Weather == nil {
		return fmt.Errorf("нет данных о погоде")
	}

	report := present.Build(view.Weather, view.Preferences, view.Alert, time.Local)

	if output == "json" {
		data, _ := json.MarshalIndent(report, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	// Текстовый вывод
	fmt.Printf("🌤️  %s\n", report.Location)
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("%s, %s (feels like %s)\n", report.Current.Temp, report.Current.Condition, report.Current.FeelsLike)
	if report.Alert != nil {
		fmt.Printf("⚠️  %s\n", *report.Alert)
	}
	fmt.Println()
	for i, d := range report.Days {
		fmt.Printf("%-24s %6s / %-6s %s\n", d.Label, d.Min, d.Max, d.Condition)
		if showHours && i == 0 {
			for _, h := range d.Hours {
				fmt.Printf("    %-8s %6s  %s\n", h.Time, h.Temp, h.Condition)
			}
		}
	}
	return nil
}

func searchCLI(text string) {
	eng := newEngine(context.Background(), models.Preferences{}, slog.Default())
	eng.OnQueryChange(text)
	eng.Wait()

	suggestions := eng.View().Suggestions
	if len(suggestions) == 0 {
		fmt.Println("Ничего не найдено")
		return
	}
	for _, s := range suggestions {
		fmt.Printf("%-40s %s\n", s.Label(), s.Query())
	}
}

// startServer запускает HTTP сервер
func startServer() {
	srv := server.New(searcher, forecaster, cfg.ForecastDays)

	// Настройка сервера
	httpSrv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("сервер запущен", "port", cfg.ServerPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("ошибка сервера", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("завершение работы сервера")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("ошибка при завершении работы сервера", "error", err)
		return
	}

	slog.Info("сервер остановлен")
}

// showProviders показывает список доступных провайдеров
func showProviders() {
	fmt.Println("📡 Доступные провайдеры погоды:")
	fmt.Println(strings.Repeat("-", 30))

	fmt.Printf("✓ WeatherAPI (прогноз)\n")
	if cfg.SuggestProvider == config.SuggestOpenWeather {
		fmt.Println("✓ OpenWeatherMap (подсказки)")
	} else {
		fmt.Println("✓ WeatherAPI (подсказки)")
		if cfg.OpenWeatherAPIKey == "" {
			fmt.Println("✗ OpenWeatherMap (не настроен)")
		}
	}

	if cfg.CacheDuration > 0 {
		where := "память"
		if cfg.CacheDB != "" {
			where = "память + " + cfg.CacheDB
		}
		fmt.Printf("Кеш: %d мин (%s)\n", cfg.CacheDuration, where)
	} else {
		fmt.Println("Кеш: отключен")
	}
}
