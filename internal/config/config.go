package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/fixwise/booking-service/internal/domain"
	"github.com/fixwise/booking-service/internal/scheduling"
	"github.com/fixwise/booking-service/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig        `toml:"server"`
	Database        DatabaseConfig      `toml:"database"`
	Logs            LogsConfig          `toml:"logs"`
	Metrics         MetricsConfig       `toml:"metrics"`
	Booking         BookingConfig       `toml:"booking"`
	NotifyService   ServiceClientConfig `toml:"notify_service"`
	CalendarService ServiceClientConfig `toml:"calendar_service"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig политика календаря и бронирований
type BookingConfig struct {
	OpenTime          string `toml:"open_time"`           // "09:00"
	CloseTime         string `toml:"close_time"`          // "17:00"
	SlotMinutes       int    `toml:"slot_minutes"`        // шаг сетки слотов
	OpenWeekends      bool   `toml:"open_weekends"`       // работать ли по выходным
	CutoffHours       int    `toml:"cutoff_hours"`        // запрет переноса/отмены ближе к началу
	SearchHorizonDays int    `toml:"search_horizon_days"` // горизонт поиска следующего слота
}

// BusinessHours конвертирует конфигурацию в рабочие часы движка
func (b BookingConfig) BusinessHours() scheduling.BusinessHours {
	return scheduling.BusinessHours{
		Open:         types.TimeString(b.OpenTime),
		Close:        types.TimeString(b.CloseTime),
		SlotMinutes:  b.SlotMinutes,
		OpenWeekends: b.OpenWeekends,
	}
}

// ServiceClientConfig настройки HTTP клиента внешнего сервиса (таймаут в секундах)
type ServiceClientConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "booking-service",
		},
		Booking: BookingConfig{
			OpenTime:          domain.DefaultOpenTime,
			CloseTime:         domain.DefaultCloseTime,
			SlotMinutes:       domain.DefaultSlotMinutes,
			CutoffHours:       domain.DefaultCutoffHours,
			SearchHorizonDays: domain.DefaultSearchHorizonDays,
		},
		NotifyService: ServiceClientConfig{
			Timeout: 5,
		},
		CalendarService: ServiceClientConfig{
			Timeout: 5,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.DBName == "" {
		return fmt.Errorf("config: database.dbname is required")
	}
	if err := (types.TimeString(c.Booking.OpenTime)).Validate(); err != nil {
		return fmt.Errorf("config: invalid booking.open_time: %w", err)
	}
	if err := (types.TimeString(c.Booking.CloseTime)).Validate(); err != nil {
		return fmt.Errorf("config: invalid booking.close_time: %w", err)
	}
	if c.Booking.SlotMinutes < domain.MinDurationMinutes || c.Booking.SlotMinutes > domain.MaxDurationMinutes {
		return fmt.Errorf("config: booking.slot_minutes must be between %d and %d",
			domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}
	if c.Booking.CutoffHours < 0 {
		return fmt.Errorf("config: booking.cutoff_hours must not be negative")
	}
	if c.Booking.SearchHorizonDays <= 0 {
		return fmt.Errorf("config: booking.search_horizon_days must be positive")
	}
	return nil
}
