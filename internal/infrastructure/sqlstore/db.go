package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS clients (
	id_client INTEGER PRIMARY KEY AUTOINCREMENT,
	c_name TEXT NOT NULL,
	c_lastname TEXT NOT NULL,
	email TEXT NOT NULL UNIQUE,
	register DATE NOT NULL DEFAULT CURRENT_DATE,
	c_state BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS phones (
	id_phone INTEGER PRIMARY KEY AUTOINCREMENT,
	id_client INTEGER NOT NULL,
	phone_number TEXT NOT NULL,
	FOREIGN KEY (id_client) REFERENCES clients(id_client)
);

CREATE INDEX IF NOT EXISTS idx_phones_id_client ON phones(id_client);
CREATE INDEX IF NOT EXISTS idx_clients_register ON clients(register);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS clients (
	id_client SERIAL PRIMARY KEY,
	c_name VARCHAR(100) NOT NULL,
	c_lastname VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	register DATE NOT NULL DEFAULT CURRENT_DATE,
	c_state BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS phones (
	id_phone SERIAL PRIMARY KEY,
	id_client INTEGER NOT NULL REFERENCES clients(id_client),
	phone_number VARCHAR(50) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_phones_id_client ON phones(id_client);
CREATE INDEX IF NOT EXISTS idx_clients_register ON clients(register);
`

// sqlitePragmas are applied by the driver to every pooled connection.
const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// sqliteTxLock makes BEGIN take the write lock up front, so read-then-write
// transactions wait on busy_timeout instead of failing with SQLITE_BUSY.
const sqliteTxLock = "_txlock=immediate"

type Options struct {
	MaxOpenConns int
}

type DB struct {
	*sqlx.DB
	driver Driver
}

// New opens the pool for driver and makes sure the schema exists.
func New(driver Driver, dsn string, opts Options) (*DB, error) {
	var (
		db  *sqlx.DB
		err error
	)

	switch driver {
	case DriverSQLite:
		db, err = sqlx.Connect(string(driver), sqliteDSN(dsn))
		if err == nil && isMemoryDSN(dsn) {
			// Every connection to :memory: is a separate database.
			db.SetMaxOpenConns(1)
		} else if err == nil && opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
		}
	case DriverPostgres:
		db, err = sqlx.Connect(string(driver), dsn)
		if err == nil && opts.MaxOpenConns > 0 {
			db.SetMaxOpenConns(opts.MaxOpenConns)
		}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := Wrap(db, driver)
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Wrap adopts an already opened pool without touching the schema.
func Wrap(db *sqlx.DB, driver Driver) *DB {
	return &DB{DB: db, driver: driver}
}

func (db *DB) Driver() Driver {
	return db.driver
}

func (db *DB) Close() error {
	return db.DB.Close()
}

func (db *DB) ensureSchema() error {
	schema := sqliteSchema
	if db.driver == DriverPostgres {
		schema = postgresSchema
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func sqliteDSN(dsn string) string {
	if !strings.Contains(dsn, "?") {
		return dsn + "?" + sqlitePragmas + "&" + sqliteTxLock
	}
	if !strings.Contains(dsn, "_txlock=") {
		return dsn + "&" + sqliteTxLock
	}
	return dsn
}

func isMemoryDSN(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// IsUniqueViolation reports whether err is a unique constraint failure on
// either supported store.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
		}
	}

	return false
}
