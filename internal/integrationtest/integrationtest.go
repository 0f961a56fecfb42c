// Package integrationtest wires real databases and servers for integration tests.
package integrationtest

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-petr/bookstore/cmd/httpserver"
	"github.com/go-petr/bookstore/internal/middleware"
	"github.com/go-petr/bookstore/pkg/configpkg"
	"github.com/go-petr/bookstore/pkg/dbpkg"
	"github.com/rs/zerolog"

	_ "github.com/lib/pq"
)

// NewServer builds a quiet release mode server from the config found at
// configPath. The caller owns server.DB.
func NewServer(configPath string) (*httpserver.Server, error) {
	config, err := configpkg.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", configPath, err)
	}

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		return nil, fmt.Errorf("setup db: %w", err)
	}

	return newServer(db, config)
}

func newServer(db *sql.DB, config configpkg.Config) (*httpserver.Server, error) {
	zerolog.SetGlobalLevel(zerolog.FatalLevel)
	gin.SetMode(gin.ReleaseMode)

	return httpserver.New(db, middleware.CreateLogger(config), config)
}

// SetupServer is NewServer bound to t. Every table is flushed once t is done.
func SetupServer(t *testing.T, configPath string) *httpserver.Server {
	t.Helper()

	config, err := configpkg.Load(configPath)
	if err != nil {
		t.Fatalf(`configpkg.Load(%q) returned error: %v`, configPath, err)
	}

	server, err := newServer(SetupDB(t, config.DBDriver, config.DBSource), config)
	if err != nil {
		t.Fatalf(`httpserver.New(db, logger, config) returned error: %v`, err)
	}

	return server
}

const listTables = `
SELECT string_agg(quote_ident(table_name), ', ')
FROM information_schema.tables
WHERE table_schema = 'public' AND table_name <> 'schema_migrations'`

// Flush empties every application table and resets their sequences.
func Flush(t *testing.T, db *sql.DB) {
	t.Helper()

	var tables sql.NullString
	if err := db.QueryRow(listTables).Scan(&tables); err != nil {
		t.Fatalf("list tables: %v", err)
	}

	if !tables.Valid {
		return
	}

	if _, err := db.Exec("TRUNCATE TABLE " + tables.String + " RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("truncate %s: %v", tables.String, err)
	}
}

func open(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db, err := dbpkg.Setup(driver, source)
	if err != nil {
		t.Fatalf("dbpkg.Setup(%q, source) returned error: %v", driver, err)
	}

	return db
}

// SetupDB connects to the test database. Everything written through it is
// flushed once t is done, so use it where a statement may abort a transaction.
func SetupDB(t *testing.T, driver, source string) *sql.DB {
	t.Helper()

	db := open(t, driver, source)

	t.Cleanup(func() {
		Flush(t, db)

		if err := db.Close(); err != nil {
			t.Errorf("db.Close() returned error: %v", err)
		}
	})

	return db
}

// SetupTX opens a transaction that is rolled back once t is done.
func SetupTX(t *testing.T, driver, source string) *sql.Tx {
	t.Helper()

	db := open(t, driver, source)

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("db.Begin() returned error: %v", err)
	}

	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil {
			t.Errorf("tx.Rollback() returned error: %v", err)
		}

		if err := db.Close(); err != nil {
			t.Errorf("db.Close() returned error: %v", err)
		}
	})

	return tx
}
