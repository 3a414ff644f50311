package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Поддерживаемые драйверы хранилища
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config содержит настройки приложения
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Seed    SeedConfig    `yaml:"seed"`
	Query   QueryConfig   `yaml:"query"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Port string `yaml:"port"`
}

// StorageConfig - где хранится снимок списка сотрудников
type StorageConfig struct {
	Driver     string         `yaml:"driver"`
	Key        string         `yaml:"key"`
	SQLitePath string         `yaml:"sqlite_path"`
	Postgres   DatabaseConfig `yaml:"postgres"`
}

// DatabaseConfig - настройки подключения к БД
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// SeedConfig - генерация данных при первом запуске
type SeedConfig struct {
	Count int `yaml:"count"`
}

// QueryConfig - параметры выборок
type QueryConfig struct {
	PageSize int    `yaml:"page_size"`
	Locale   string `yaml:"locale"`
}

// LogConfig - настройки логирования
type LogConfig struct {
	Level string `yaml:"level"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// SlogLevel возвращает уровень логирования для slog
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Storage: StorageConfig{
			Driver:     DriverSQLite,
			Key:        "employees",
			SQLitePath: "employees.db",
			Postgres: DatabaseConfig{
				Host:     "localhost",
				Port:     "5432",
				User:     "postgres",
				Password: "postgres",
				DBName:   "employees",
				SSLMode:  "disable",
			},
		},
		Seed:  SeedConfig{Count: 100},
		Query: QueryConfig{PageSize: 10, Locale: "en"},
		Log:   LogConfig{Level: "info"},
	}
}

// Load загружает конфигурацию: значения по умолчанию, затем YAML-файл
// из CONFIG_PATH (если задан), затем переменные окружения
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)

	c.Storage.Driver = strings.ToLower(getEnv("STORAGE_DRIVER", c.Storage.Driver))
	c.Storage.Key = getEnv("STORAGE_KEY", c.Storage.Key)
	c.Storage.SQLitePath = getEnv("SQLITE_PATH", c.Storage.SQLitePath)

	pg := &c.Storage.Postgres
	pg.Host = getEnv("DB_HOST", pg.Host)
	pg.Port = getEnv("DB_PORT", pg.Port)
	pg.User = getEnv("DB_USER", pg.User)
	pg.Password = getEnv("DB_PASSWORD", pg.Password)
	pg.DBName = getEnv("DB_NAME", pg.DBName)
	pg.SSLMode = getEnv("DB_SSLMODE", pg.SSLMode)

	var err error
	if c.Seed.Count, err = getEnvInt("SEED_COUNT", c.Seed.Count); err != nil {
		return err
	}
	if c.Query.PageSize, err = getEnvInt("QUERY_PAGE_SIZE", c.Query.PageSize); err != nil {
		return err
	}
	c.Query.Locale = getEnv("QUERY_LOCALE", c.Query.Locale)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is required"))
	}

	switch c.Storage.Driver {
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("sqlite path is required for the sqlite driver"))
		}
	case DriverPostgres:
		if c.Storage.Postgres.Host == "" || c.Storage.Postgres.DBName == "" {
			errs = append(errs, errors.New("postgres host and dbname are required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}

	if c.Storage.Key == "" {
		errs = append(errs, errors.New("storage key is required"))
	}
	if c.Seed.Count < 0 {
		errs = append(errs, fmt.Errorf("seed count must not be negative, got %d", c.Seed.Count))
	}
	if c.Query.PageSize < 1 || c.Query.PageSize > 100 {
		errs = append(errs, fmt.Errorf("query page size must be between 1 and 100, got %d", c.Query.PageSize))
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Log.Level))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
