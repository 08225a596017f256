package store

import (
	"fmt"
)

// SchemaVersion is written to the meta table of every save
const SchemaVersion = 1

// Table and column names shared by the save and load paths
const (
	TableMeta       = "meta"
	TablePilots     = "pilots"
	TableNamePools  = "name_pools"
	TablePoolNames  = "pool_names"
	TableStatistics = "statistics"
	TableObjects    = "objects"
	TableSystems    = "systems"

	StatKill  = "kill"
	StatOther = "other"
)

// createSchema creates every table of the save format
func (d *SQLiteDatabase) createSchema() error {
	metaTable := `
	CREATE TABLE IF NOT EXISTS meta (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		version INTEGER NOT NULL,
		player_name TEXT NOT NULL DEFAULT '',
		clock TEXT NOT NULL,
		game_over BOOLEAN NOT NULL DEFAULT FALSE,
		reason TEXT NOT NULL DEFAULT '',
		saved_at DATETIME
	);`

	// Registry order is kept in position; the player's ship is position 0
	objectsTable := `
	CREATE TABLE IF NOT EXISTS objects (
		usi INTEGER PRIMARY KEY,
		position INTEGER NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		image TEXT NOT NULL DEFAULT '',
		team INTEGER NOT NULL,
		hp INTEGER NOT NULL,
		hp_max INTEGER NOT NULL,
		quadrant INTEGER NOT NULL,
		qx INTEGER NOT NULL,
		qy INTEGER NOT NULL,
		rx INTEGER NOT NULL,
		ry INTEGER NOT NULL,
		class TEXT NOT NULL DEFAULT '',

		-- Machine state, NULL for asteroids and stars
		ai BOOLEAN,
		energy INTEGER,
		energy_max INTEGER,
		dodge INTEGER,
		repair_points REAL,
		point_value INTEGER
	);`

	pilotsTable := `
	CREATE TABLE IF NOT EXISTS pilots (
		usi INTEGER PRIMARY KEY,
		ai BOOLEAN NOT NULL,
		funds INTEGER NOT NULL DEFAULT 0,
		experience INTEGER NOT NULL DEFAULT 0,
		level INTEGER NOT NULL DEFAULT 1,
		hacking INTEGER NOT NULL DEFAULT 0,
		mechanic INTEGER NOT NULL DEFAULT 0,
		merchant INTEGER NOT NULL DEFAULT 0,
		piloting INTEGER NOT NULL DEFAULT 0,
		weapons INTEGER NOT NULL DEFAULT 0,
		unassigned INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (usi) REFERENCES objects(usi) ON DELETE CASCADE
	);`

	systemsTable := `
	CREATE TABLE IF NOT EXISTS systems (
		usi INTEGER NOT NULL,
		position INTEGER NOT NULL,
		kind TEXT NOT NULL,
		repair REAL NOT NULL,
		level INTEGER NOT NULL DEFAULT 0,
		capacity INTEGER NOT NULL DEFAULT 0,
		remaining INTEGER NOT NULL DEFAULT 0,
		active BOOLEAN NOT NULL DEFAULT FALSE,
		max_speed REAL NOT NULL DEFAULT 0,
		setting REAL NOT NULL DEFAULT 0,
		count INTEGER NOT NULL DEFAULT 0,
		chart TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (usi, kind),
		FOREIGN KEY (usi) REFERENCES objects(usi) ON DELETE CASCADE
	);`

	namePoolsTable := `
	CREATE TABLE IF NOT EXISTS name_pools (
		category TEXT PRIMARY KEY,
		repeats INTEGER NOT NULL DEFAULT 0
	);`

	poolNamesTable := `
	CREATE TABLE IF NOT EXISTS pool_names (
		category TEXT NOT NULL,
		position INTEGER NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (category, position),
		FOREIGN KEY (category) REFERENCES name_pools(category) ON DELETE CASCADE
	);`

	statisticsTable := `
	CREATE TABLE IF NOT EXISTS statistics (
		kind TEXT NOT NULL,
		label TEXT NOT NULL,
		count INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (kind, label)
	);`

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_objects_region ON objects(quadrant, qx, qy);",
		"CREATE INDEX IF NOT EXISTS idx_objects_kind ON objects(kind);",
	}

	tables := []string{
		metaTable,
		objectsTable,
		pilotsTable,
		systemsTable,
		namePoolsTable,
		poolNamesTable,
		statisticsTable,
	}

	for _, table := range tables {
		if _, err := d.db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := d.db.Exec(index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// validateSchema checks that the core tables carry their key columns
func (d *SQLiteDatabase) validateSchema() error {
	query := `
	SELECT
		(SELECT COUNT(*) FROM pragma_table_info('objects') WHERE name IN ('usi', 'position', 'kind', 'team')) +
		(SELECT COUNT(*) FROM pragma_table_info('meta') WHERE name IN ('version', 'clock'));`

	var count int
	err := d.db.QueryRow(query).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to validate schema: %w", err)
	}

	if count < 6 {
		return fmt.Errorf("database schema is invalid or incomplete")
	}

	return nil
}
