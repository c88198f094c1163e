package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-TrainingService/internal/domain"
)

// Config конфигурация сервиса
type Config struct {
	Server              ServerConfig      `toml:"server"`
	Database            DatabaseConfig    `toml:"database"`
	Logs                LogsConfig        `toml:"logs"`
	Metrics             MetricsConfig     `toml:"metrics"`
	UserService         IntegrationConfig `toml:"user_service"`
	NotificationService IntegrationConfig `toml:"notification_service"`
	Scheduling          SchedulingConfig  `toml:"scheduling"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig параметры логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig параметры Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig адрес внешнего сервиса и таймаут в секундах
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// SchedulingConfig параметры расписания
type SchedulingConfig struct {
	SlotStepMinutes     int `toml:"slot_step_minutes"`
	SerializableRetries int `toml:"serializable_retries"`
}

// Load читает .env (если есть), TOML файл и переопределения из SMC_* переменных окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "smc_training_service",
		},
		UserService:         IntegrationConfig{Timeout: 5},
		NotificationService: IntegrationConfig{Timeout: 5},
		Scheduling: SchedulingConfig{
			SlotStepMinutes:     domain.DefaultSlotStepMinutes,
			SerializableRetries: 3,
		},
	}
}

// applyEnv переопределяет значения из окружения (секреты и адреса не храним в TOML)
func applyEnv(cfg *Config) error {
	strVars := map[string]*string{
		"SMC_DB_HOST":                  &cfg.Database.Host,
		"SMC_DB_USER":                  &cfg.Database.User,
		"SMC_DB_PASSWORD":              &cfg.Database.Password,
		"SMC_DB_NAME":                  &cfg.Database.DBName,
		"SMC_DB_SSLMODE":               &cfg.Database.SSLMode,
		"SMC_LOG_LEVEL":                &cfg.Logs.Level,
		"SMC_USER_SERVICE_URL":         &cfg.UserService.URL,
		"SMC_NOTIFICATION_SERVICE_URL": &cfg.NotificationService.URL,
	}
	for name, target := range strVars {
		if v, ok := os.LookupEnv(name); ok {
			*target = v
		}
	}

	intVars := map[string]*int{
		"SMC_HTTP_PORT": &cfg.Server.HTTPPort,
		"SMC_DB_PORT":   &cfg.Database.Port,
	}
	for name, target := range intVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s=%q: %w", name, v, err)
		}
		*target = n
	}

	return nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be between 1 and 65535, got %d", c.Server.HTTPPort)
	}
	if c.Database.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.UserService.URL == "" {
		return errors.New("user_service.url is required")
	}
	if c.NotificationService.URL == "" {
		return errors.New("notification_service.url is required")
	}
	if c.Scheduling.SlotStepMinutes < domain.MinSessionMinutes || 60%c.Scheduling.SlotStepMinutes != 0 {
		return fmt.Errorf("scheduling.slot_step_minutes must divide an hour and be at least %d, got %d",
			domain.MinSessionMinutes, c.Scheduling.SlotStepMinutes)
	}
	if c.Scheduling.SerializableRetries < 1 {
		return errors.New("scheduling.serializable_retries must be positive")
	}
	return nil
}
