package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// pgUniqueViolation SQLSTATE для нарушения уникального ограничения
const pgUniqueViolation = "23505"

type dialect int

const (
	dialectSQLite dialect = iota + 1
	dialectPostgres
)

func parseDialect(driver string) (dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite", "sqlite3":
		return dialectSQLite, nil
	case "postgres", "postgresql", "pgx":
		return dialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func (d dialect) driverName() string {
	if d == dialectPostgres {
		return "pgx"
	}
	return "sqlite"
}

func (d dialect) gooseDialect() string {
	if d == dialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

func (d dialect) migrationsDir() string {
	if d == dialectPostgres {
		return "migrations/postgres"
	}
	return "migrations/sqlite"
}

// rebind заменяет плейсхолдеры ? на $N для Postgres
// Запросы не содержат литералов со знаком вопроса
func (d dialect) rebind(query string) string {
	if d != dialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// lockClause блокирует выбранную строку challenge до конца транзакции.
// В SQLite транзакции уже сериализованы единственным соединением пула
func (d dialect) lockClause(table string) string {
	if d == dialectPostgres {
		return " FOR UPDATE OF " + table
	}
	return ""
}

// isUniqueViolation проверяет, что ошибка драйвера - нарушение UNIQUE/PRIMARY KEY
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		// Без extended result codes остается только текст ошибки
		return strings.Contains(sqliteErr.Error(), "UNIQUE constraint failed")
	}

	return false
}
