// Package store keeps saved games in a SQLite database
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"trek/internal/game"
	"trek/internal/log"
)

var (
	// ErrNotOpen is returned by every operation on a closed database
	ErrNotOpen = errors.New("database not open")
	// ErrNoSave is returned when loading from a database without a saved game
	ErrNoSave = errors.New("no saved game")
)

// Database is the save store of the game
type Database interface {
	// Core database operations
	CreateDatabase(filename string) error
	OpenDatabase(filename string) error
	CloseDatabase() error
	GetDatabaseOpen() bool

	// Saved games. A save replaces the previous one as a whole.
	SaveState(st game.State) error
	LoadState() (game.State, error)
	SaveSession(s *game.Session) error
	LoadSession(opts game.Options) (*game.Session, error)
	HasSave() (bool, error)

	// Transactions
	BeginTransaction() error
	CommitTransaction() error
	RollbackTransaction() error

	// Internal access for advanced operations
	GetDB() *sql.DB
}

// SQLiteDatabase implements Database on an SQLite file
type SQLiteDatabase struct {
	db       *sql.DB
	dbOpen   bool
	filename string
	tx       *sql.Tx // Current transaction
}

// NewDatabase creates a closed database
func NewDatabase() *SQLiteDatabase {
	return &SQLiteDatabase{}
}

// dsn turns a file name into a connection string with foreign keys enabled
func dsn(filename string) string {
	return filename + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// OpenDatabase opens an existing save file
func (d *SQLiteDatabase) OpenDatabase(filename string) error {
	if d.dbOpen {
		return fmt.Errorf("database already open")
	}
	if _, err := os.Stat(filename); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	return d.open(filename)
}

// CreateDatabase opens filename, creating the file and the schema as needed
func (d *SQLiteDatabase) CreateDatabase(filename string) error {
	if d.dbOpen {
		return fmt.Errorf("database already open")
	}
	return d.open(filename)
}

func (d *SQLiteDatabase) open(filename string) error {
	db, err := sql.Open("sqlite", dsn(filename))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	d.db = db

	// SQLite allows a single writer
	d.db.SetMaxOpenConns(1)

	if err = d.db.Ping(); err != nil {
		d.db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err = d.createSchema(); err != nil {
		d.db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if err = d.validateSchema(); err != nil {
		d.db.Close()
		return fmt.Errorf("invalid database schema: %w", err)
	}

	d.filename = filename
	d.dbOpen = true
	log.Debug("save database open", "file", filename)
	return nil
}

// CloseDatabase closes the connection, rolling back an unfinished transaction
func (d *SQLiteDatabase) CloseDatabase() error {
	if !d.dbOpen {
		return nil
	}

	if d.tx != nil {
		d.tx.Rollback()
		d.tx = nil
	}

	if d.db != nil {
		if err := d.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	d.dbOpen = false
	d.filename = ""
	return nil
}

func (d *SQLiteDatabase) GetDatabaseOpen() bool {
	return d.dbOpen
}

func (d *SQLiteDatabase) GetDB() *sql.DB {
	return d.db
}

func (d *SQLiteDatabase) BeginTransaction() error {
	if !d.dbOpen {
		return ErrNotOpen
	}
	if d.tx != nil {
		return fmt.Errorf("transaction already active")
	}

	var err error
	d.tx, err = d.db.Begin()
	return err
}

func (d *SQLiteDatabase) CommitTransaction() error {
	if d.tx == nil {
		return fmt.Errorf("no active transaction")
	}

	err := d.tx.Commit()
	d.tx = nil
	return err
}

func (d *SQLiteDatabase) RollbackTransaction() error {
	if d.tx == nil {
		return fmt.Errorf("no active transaction")
	}

	err := d.tx.Rollback()
	d.tx = nil
	return err
}

// runner is what both *sql.DB and *sql.Tx offer
type runner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// conn returns the active transaction, or the database outside of one
func (d *SQLiteDatabase) conn() runner {
	if d.tx != nil {
		return d.tx
	}
	return d.db
}

// HasSave reports whether the database holds a saved game
func (d *SQLiteDatabase) HasSave() (bool, error) {
	if !d.dbOpen {
		return false, ErrNotOpen
	}
	var count int
	if err := d.conn().QueryRow("SELECT COUNT(*) FROM meta").Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check for a save: %w", err)
	}
	return count > 0, nil
}

// SaveSession stores the session, replacing the previous save
func (d *SQLiteDatabase) SaveSession(s *game.Session) error {
	return d.SaveState(s.State())
}

// LoadSession rebuilds the saved session
func (d *SQLiteDatabase) LoadSession(opts game.Options) (*game.Session, error) {
	st, err := d.LoadState()
	if err != nil {
		return nil, err
	}
	return game.Restore(st, opts)
}
