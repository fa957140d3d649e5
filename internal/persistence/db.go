// Package persistence records simulation history in SQLite: yearly totals,
// per-colony and per-state populations, ship departures and events.
// History is written once per year and read back for reporting; a run is
// never resumed from it.
package persistence

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/destiny/internal/engine"
	"github.com/talgya/destiny/internal/government"
)

// DB wraps a SQLite connection for simulation history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS years (
		year INTEGER PRIMARY KEY,
		population INTEGER NOT NULL,
		colonies INTEGER NOT NULL,
		settlements INTEGER NOT NULL,
		pops INTEGER NOT NULL,
		in_flight INTEGER NOT NULL,
		departures INTEGER NOT NULL,
		arrivals INTEGER NOT NULL,
		new_colonies INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS colony_years (
		year INTEGER NOT NULL,
		colony_id TEXT NOT NULL,
		name TEXT NOT NULL,
		planet TEXT NOT NULL,
		population INTEGER NOT NULL,
		science_level INTEGER NOT NULL,
		ships INTEGER NOT NULL,
		faction TEXT,
		PRIMARY KEY (year, colony_id)
	);

	CREATE TABLE IF NOT EXISTS settlement_years (
		year INTEGER NOT NULL,
		settlement_id TEXT NOT NULL,
		colony_id TEXT NOT NULL,
		name TEXT NOT NULL,
		government TEXT NOT NULL,
		philosophy TEXT NOT NULL,
		support REAL NOT NULL,
		population INTEGER NOT NULL,
		PRIMARY KEY (year, settlement_id)
	);

	CREATE TABLE IF NOT EXISTS transits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		ship TEXT NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		cargo INTEGER NOT NULL,
		years INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_year ON events(year);
	CREATE INDEX IF NOT EXISTS idx_transits_year ON transits(year);
	CREATE INDEX IF NOT EXISTS idx_settlement_years_colony ON settlement_years(colony_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordYear writes one year's report and a snapshot of every colony and
// state in a single transaction.
func (db *DB) RecordYear(sim *engine.Simulation, report engine.YearReport) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT OR REPLACE INTO years
		(year, population, colonies, settlements, pops, in_flight, departures, arrivals, new_colonies)
		VALUES (:year, :population, :colonies, :settlements, :pops, :in_flight, :departures, :arrivals, :new_colonies)`,
		yearRow(report))
	if err != nil {
		return fmt.Errorf("insert year %d: %w", report.Year, err)
	}

	if err := recordColonies(tx, report.Year, sim.Colonies); err != nil {
		return err
	}
	if err := recordTransits(tx, report.Transits); err != nil {
		return err
	}
	for _, e := range report.Events {
		_, err := tx.Exec(
			"INSERT INTO events (year, category, description) VALUES (?, ?, ?)",
			e.Year, e.Category, e.Description,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	return tx.Commit()
}

func recordColonies(tx *sqlx.Tx, year int, colonies []*engine.InhabitedPlanet) error {
	colonyStmt, err := tx.Preparex(`INSERT OR REPLACE INTO colony_years
		(year, colony_id, name, planet, population, science_level, ships, faction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer colonyStmt.Close()

	stateStmt, err := tx.Preparex(`INSERT OR REPLACE INTO settlement_years
		(year, settlement_id, colony_id, name, government, philosophy, support, population)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stateStmt.Close()

	for _, c := range colonies {
		var faction *string
		if c.Faction != nil {
			faction = &c.Faction.Name
		}
		_, err := colonyStmt.Exec(year, c.ID.String(), c.Name, c.Planet.Label(),
			c.Population(), c.ScienceLevel, len(c.Ships), faction)
		if err != nil {
			return fmt.Errorf("insert colony %s: %w", c.Name, err)
		}

		for _, s := range c.Settlements {
			_, err := stateStmt.Exec(year, s.ID.String(), c.ID.String(), s.Name(),
				s.Government.Kind().String(), government.Philosophy(s.Government),
				s.GovernmentSupport(), s.Population())
			if err != nil {
				return fmt.Errorf("insert settlement %s: %w", s.Name(), err)
			}
		}
	}
	return nil
}

func recordTransits(tx *sqlx.Tx, transits []engine.Transit) error {
	for _, t := range transits {
		_, err := tx.NamedExec(`INSERT INTO transits (year, ship, origin, destination, cargo, years)
			VALUES (:year, :ship, :origin, :destination, :cargo, :years)`, t)
		if err != nil {
			return fmt.Errorf("insert transit %s: %w", t.Ship, err)
		}
	}
	return nil
}

// SaveMeta stores a key-value pair describing the run.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// SaveRun records the parameters a run was started with.
func (db *DB) SaveRun(seed int64, years, targetSize int) error {
	for k, v := range map[string]string{
		"seed":        strconv.FormatInt(seed, 10),
		"years":       strconv.Itoa(years),
		"target_size": strconv.Itoa(targetSize),
	} {
		if err := db.SaveMeta(k, v); err != nil {
			return fmt.Errorf("save meta %s: %w", k, err)
		}
	}
	slog.Info("run recorded", "seed", seed, "years", years)
	return nil
}

// YearRow is one stored year.
type YearRow struct {
	Year        int `db:"year"`
	Population  int `db:"population"`
	Colonies    int `db:"colonies"`
	Settlements int `db:"settlements"`
	Pops        int `db:"pops"`
	InFlight    int `db:"in_flight"`
	Departures  int `db:"departures"`
	Arrivals    int `db:"arrivals"`
	NewColonies int `db:"new_colonies"`
}

func yearRow(r engine.YearReport) YearRow {
	return YearRow{
		Year:        r.Year,
		Population:  r.Population,
		Colonies:    r.Colonies,
		Settlements: r.Settlements,
		Pops:        r.Pops,
		InFlight:    r.InFlight,
		Departures:  r.Departures,
		Arrivals:    r.Arrivals,
		NewColonies: r.NewColonies,
	}
}

// Years returns every stored year in order.
func (db *DB) Years() ([]YearRow, error) {
	var rows []YearRow
	err := db.conn.Select(&rows, "SELECT * FROM years ORDER BY year")
	return rows, err
}

// ColonyHistory returns a colony's population per recorded year.
func (db *DB) ColonyHistory(name string) ([]int, error) {
	var pops []int
	err := db.conn.Select(&pops,
		"SELECT population FROM colony_years WHERE name = ? ORDER BY year", name)
	return pops, err
}

// Route is the number of departures between two worlds.
type Route struct {
	Origin      string `db:"origin" json:"origin"`
	Destination string `db:"destination" json:"destination"`
	Ships       int    `db:"ships" json:"ships"`
	Cargo       int    `db:"cargo" json:"cargo"`
}

// Routes aggregates every recorded transit by origin and destination,
// busiest first.
func (db *DB) Routes() ([]Route, error) {
	var routes []Route
	err := db.conn.Select(&routes, `SELECT origin, destination, COUNT(*) AS ships, SUM(cargo) AS cargo
		FROM transits GROUP BY origin, destination ORDER BY ships DESC, origin, destination`)
	return routes, err
}

// RecentEvents returns the most recent N events.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT year, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
