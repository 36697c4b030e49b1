package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DB struct {
	connection *sql.DB
	driver     string
	now        func() time.Time
}

// NewDB opens the production Postgres database.
func NewDB(dataSourceName string) (*DB, error) {
	return Open(DriverPostgres, dataSourceName)
}

// Open opens a database with the given driver ("postgres" or "sqlite").
func Open(driver, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driver, dataSourceName)
	if err != nil {
		return nil, err
	}

	// Connection pool tuning
	switch driver {
	case DriverSQLite:
		// sqlite wants a single writer; also keeps :memory: on one connection
		db.SetMaxOpenConns(1)
	default:
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &DB{connection: db, driver: driver, now: time.Now}, nil
}

func (db *DB) Close() {
	if err := db.connection.Close(); err != nil {
		log.Println("Error closing the database connection:", err)
	}
}

// Migrate creates the tables the service needs if they are missing.
func (db *DB) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if db.driver == DriverSQLite {
		schema = sqliteSchema
	}
	for i, stmt := range schema {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i, err)
		}
	}
	return nil
}

// GetConnection returns the underlying database connection for advanced queries
func (db *DB) GetConnection() *sql.DB {
	return db.connection
}

// isUniqueViolation reports a Postgres unique_violation. The inserts use
// ON CONFLICT already; this covers races between concurrent writers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}
