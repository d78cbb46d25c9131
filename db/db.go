package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/waveboard-app/waveboard-backend/log"
)

// Config selects the driver and data source for Init. Production runs on
// "postgres" (lib/pq); the test suite opens "sqlite3" in-memory databases.
type Config struct {
	Driver string
	DSN    string
}

type DB struct {
	Db     *sql.DB
	driver string
}

func Init(cfg Config) (*DB, error) {

	if cfg.DSN == "" {
		return nil, errors.New("db: DSN not set")
	}
	if cfg.Driver == "" {
		cfg.Driver = "postgres"
	}

	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite3" {
		// an in-memory sqlite database exists per connection
		db.SetMaxOpenConns(1)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	d := &DB{Db: db, driver: cfg.Driver}

	log.Info.Printf("Creating Tables...\n")
	if err = d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	log.Info.Printf("Tables Created...")

	return d, nil
}

func (d *DB) Close() error {
	return d.Db.Close()
}

func (d *DB) createTables() error {
	serial := "SERIAL PRIMARY KEY"
	if d.driver == "sqlite3" {
		serial = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS users (
			id %s,
			username TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)`, serial),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS posts (
			id %s,
			user_id INTEGER NOT NULL REFERENCES users(id),
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			image TEXT
		)`, serial),
		// Deleting a post takes its comments with it: comment creation relies
		// on this foreign key, so the post delete path needs the cascade to
		// stay a single atomic statement.
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS comments (
			id %s,
			post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			user_id INTEGER NOT NULL REFERENCES users(id),
			content TEXT NOT NULL
		)`, serial),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS messages (
			id %s,
			sender_id INTEGER NOT NULL REFERENCES users(id),
			receiver_id INTEGER NOT NULL REFERENCES users(id),
			content TEXT NOT NULL,
			image TEXT
		)`, serial),
	}

	for _, stmt := range stmts {
		if _, err := d.Db.Exec(stmt); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// nullable turns "" into NULL so optional image columns stay NULL instead of
// holding empty strings.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (d *DB) exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	res, err := d.Db.ExecContext(ctx, query, args...)
	return res, mapError(err)
}
