package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server     ServerConfig     `toml:"server"`
	Database   DatabaseConfig   `toml:"database"`
	Logs       LogsConfig       `toml:"logs"`
	Metrics    MetricsConfig    `toml:"metrics"`
	Scheduling SchedulingConfig `toml:"scheduling"`
	PaymentSvc PaymentConfig    `toml:"payment_service"`
	NotifySvc  NotifyConfig     `toml:"notify_service"`
	Reminders  RemindersConfig  `toml:"reminders"`
}

// ServerConfig настройки HTTP-сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SchedulingConfig бизнес-параметры вычисления слотов.
// Все даты и времена трактуются в часовом поясе клиники.
type SchedulingConfig struct {
	Timezone                string `toml:"timezone"`
	SlotGranularityMinutes  int    `toml:"slot_granularity_minutes"`
	MinBookingNoticeMinutes int    `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int    `toml:"advance_booking_days"`
}

// Location возвращает часовой пояс клиники
func (s SchedulingConfig) Location() (*time.Location, error) {
	if s.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(s.Timezone)
}

// PaymentConfig настройки платёжного сервиса (Stripe)
type PaymentConfig struct {
	APIKey   string `toml:"api_key"`
	Currency string `toml:"currency"`
}

// NotifyConfig настройки сервиса уведомлений
type NotifyConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// RemindersConfig настройки cron-задачи напоминаний
type RemindersConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"` // cron-выражение, например "0 18 * * *"
}

// Load читает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("server.http_port must be positive")
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("database.host and database.dbname are required")
	}
	if c.Scheduling.SlotGranularityMinutes < 0 {
		return fmt.Errorf("scheduling.slot_granularity_minutes cannot be negative")
	}
	if c.Scheduling.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("scheduling.min_booking_notice_minutes cannot be negative")
	}
	if c.Scheduling.AdvanceBookingDays < 0 {
		return fmt.Errorf("scheduling.advance_booking_days cannot be negative")
	}
	if _, err := c.Scheduling.Location(); err != nil {
		return fmt.Errorf("scheduling.timezone is invalid: %w", err)
	}
	return nil
}
