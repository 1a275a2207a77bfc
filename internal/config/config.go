package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	_ "time/tzdata" // TIMEZONE должен работать и в образе без системной tzdata

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	APIURL         string
	Location       *time.Location
	CancelCutoff   time.Duration
	WeekStart      time.Weekday
	ReminderCron   string
	MigrationsPath string
	HTTPTimeout    time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных окружения
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		TelegramToken:  get("TELEGRAM_TOKEN", ""),
		DBDSN:          get("DB_DSN", ""),
		Environment:    get("ENV", "development"),
		APIURL:         strings.TrimRight(get("API_URL", "http://localhost:3000"), "/"),
		ReminderCron:   get("REMINDER_CRON", "0 6 * * *"),
		MigrationsPath: get("MIGRATIONS_PATH", "migrations"),
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	loc, err := time.LoadLocation(get("TIMEZONE", "Asia/Ho_Chi_Minh"))
	if err != nil {
		return nil, fmt.Errorf("parse TIMEZONE: %w", err)
	}
	cfg.Location = loc

	hours, err := strconv.ParseFloat(get("CANCEL_CUTOFF_HOURS", "24"), 64)
	if err != nil {
		return nil, fmt.Errorf("parse CANCEL_CUTOFF_HOURS: %w", err)
	}
	if hours < 0 {
		return nil, fmt.Errorf("CANCEL_CUTOFF_HOURS must be >= 0, got %v", hours)
	}
	cfg.CancelCutoff = time.Duration(hours * float64(time.Hour))

	switch strings.ToLower(get("WEEK_START", "sunday")) {
	case "sunday":
		cfg.WeekStart = time.Sunday
	case "monday":
		cfg.WeekStart = time.Monday
	default:
		return nil, fmt.Errorf("WEEK_START must be monday or sunday, got %q", getenv("WEEK_START"))
	}

	if _, err := cron.ParseStandard(cfg.ReminderCron); err != nil {
		return nil, fmt.Errorf("parse REMINDER_CRON: %w", err)
	}

	cfg.HTTPTimeout, err = time.ParseDuration(get("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("parse HTTP_TIMEOUT: %w", err)
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	return cfg, nil
}

// IsProduction сообщает, что бот запущен в боевом окружении
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
