package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/employee-roster-api/internal/config"
	"github.com/employee-roster-api/internal/domain"
	"github.com/employee-roster-api/internal/handler"
	"github.com/employee-roster-api/internal/migrations"
	"github.com/employee-roster-api/internal/query"
	"github.com/employee-roster-api/internal/repository"
	"github.com/employee-roster-api/internal/service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	// Инициализация логгера
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	// Подключение к хранилищу
	repo, closeStorage, err := openStorage(cfg.Storage, logger)
	if err != nil {
		logger.Error("failed to open storage",
			slog.String("driver", cfg.Storage.Driver),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
	defer closeStorage()

	engine, err := query.NewEngine(cfg.Query.Locale, cfg.Query.PageSize)
	if err != nil {
		logger.Error("failed to create query engine", slog.Any("error", err))
		os.Exit(1)
	}

	empService := service.NewEmployeeService(repo, engine, logger, service.Options{
		StorageKey: cfg.Storage.Key,
		SeedCount:  cfg.Seed.Count,
	})

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	err = empService.Load(loadCtx)
	cancelLoad()
	switch {
	case errors.Is(err, domain.ErrPersistence):
		logger.Warn("seeded employee list is not persisted", slog.Any("error", err))
	case err != nil:
		logger.Error("failed to load employee list", slog.Any("error", err))
		os.Exit(1)
	}

	empService.Subscribe(func(c service.Change) {
		logger.Debug("employee list changed",
			slog.String("intent", c.Intent.Kind()),
			slog.Int("count", len(c.Employees)),
		)
	})

	// Инициализация хендлеров
	empHandler := handler.NewEmployeeHandler(empService, logger)

	// Настройка роутера
	router := handler.NewRouter(empHandler, logger)
	httpHandler := router.Setup()

	// Настройка HTTP сервера
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown the server", slog.Any("error", err))
		}
		close(done)
	}()

	logger.Info("server is starting",
		slog.String("port", cfg.Server.Port),
		slog.String("storage", cfg.Storage.Driver),
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("could not listen on port", slog.String("port", cfg.Server.Port), slog.Any("error", err))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

// openStorage открывает хранилище снимков выбранного драйвера и применяет миграции
func openStorage(cfg config.StorageConfig, logger *slog.Logger) (repository.SnapshotRepository, func(), error) {
	var (
		db      *gorm.DB
		dialect string
		err     error
	)

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage, changes are lost on restart")
		return repository.NewMemorySnapshotRepository(), func() {}, nil

	case config.DriverSQLite:
		dialect = "sqlite3"
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}

	case config.DriverPostgres:
		dialect = "postgres"
		db, err = connectPostgres(cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	// Запуск миграций
	if err := migrations.Up(sqlDB, dialect); err != nil {
		sqlDB.Close()
		return nil, nil, err
	}

	return repository.NewSnapshotRepository(db), func() { sqlDB.Close() }, nil
}

func connectPostgres(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for range 30 {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			var sqlDB *sql.DB
			if sqlDB, err = db.DB(); err == nil {
				if err = pingOrClose(sqlDB); err == nil {
					return db, nil
				}
			}
		}
		time.Sleep(time.Second)
	}

	return nil, fmt.Errorf("failed to connect to database after 30 attempts: %w", err)
}

// pingOrClose проверяет соединение и закрывает пул, если база недоступна
func pingOrClose(sqlDB *sql.DB) error {
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return err
	}
	return nil
}
