package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // Postgres driver
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver
)

//go:embed migrations
var embedMigrations embed.FS

// Config описывает подключение к БД и параметры connection pool
type Config struct {
	Driver          string        // "sqlite" или "postgres"
	DSN             string        // путь к файлу SQLite (":memory:" для тестов) или Postgres URL
	MaxOpenConns    int           // верхняя граница пула (Postgres)
	MaxIdleConns    int           // количество простаивающих соединений (Postgres)
	ConnMaxLifetime time.Duration // время жизни соединения (Postgres)
}

// Storage represents SQL storage implementation over a single connection pool
// It implements UserStorage, ChallengeStorage, SessionStorage, DataStorage and Transactor
type Storage struct {
	db      *sql.DB
	dialect dialect
}

// New creates a new storage instance, applies pool settings and runs migrations
func New(ctx context.Context, cfg Config) (*Storage, error) {
	d, err := parseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if cfg.DSN == "" {
		return nil, errors.New("database dsn is required")
	}

	// Открываем соединение с БД
	db, err := sql.Open(d.driverName(), cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	switch d {
	case dialectSQLite:
		// SQLite с WAL mode может поддерживать несколько читателей, но только одного писателя.
		// Одно соединение сериализует транзакции и сохраняет :memory: базу между запросами
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	case dialectPostgres:
		if cfg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		if cfg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
		}
	}

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if d == dialectSQLite {
		// Включаем WAL mode и другие оптимизации
		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		}

		for _, pragma := range pragmas {
			if _, err := db.ExecContext(ctx, pragma); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	}

	storage := &Storage{db: db, dialect: d}

	// Запускаем миграции
	if err := storage.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return storage, nil
}

// Close closes the database connection pool
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB returns the underlying database connection for testing purposes
func (s *Storage) DB() *sql.DB {
	return s.db
}

// runMigrations выполняет миграции из embedded FS для текущего диалекта
func (s *Storage) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(s.dialect.gooseDialect()); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, s.db, s.dialect.migrationsDir()); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}
