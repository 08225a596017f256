package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"trek/internal/entity"
	"trek/internal/factory"
	"trek/internal/galaxy"
	"trek/internal/game"
	"trek/internal/log"
	"trek/internal/pilot"
	"trek/internal/systems"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// exec builds q and runs it on the current connection
func (d *SQLiteDatabase) exec(q squirrel.Sqlizer) error {
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := d.conn().Exec(query, args...); err != nil {
		return fmt.Errorf("failed to run %q: %w", query, err)
	}
	return nil
}

// query builds q and returns its rows
func (d *SQLiteDatabase) query(q squirrel.SelectBuilder) (*sql.Rows, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := d.conn().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run %q: %w", query, err)
	}
	return rows, nil
}

// SaveState writes st in one transaction. The previous save is removed in
// the same transaction, so a failed save leaves it intact.
func (d *SQLiteDatabase) SaveState(st game.State) error {
	if !d.dbOpen {
		return ErrNotOpen
	}
	if len(st.Objects) == 0 {
		return game.ErrNoPlayer
	}

	if err := d.BeginTransaction(); err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	if err := d.writeState(st); err != nil {
		if rbErr := d.RollbackTransaction(); rbErr != nil {
			log.Error("save rollback failed", "error", rbErr)
		}
		return fmt.Errorf("failed to save game: %w", err)
	}
	if err := d.CommitTransaction(); err != nil {
		return fmt.Errorf("failed to commit save: %w", err)
	}

	log.Info("game saved", "file", d.filename, "objects", len(st.Objects), "clock", st.Clock.Format(time.DateTime))
	return nil
}

func (d *SQLiteDatabase) writeState(st game.State) error {
	for _, table := range []string{TableSystems, TablePilots, TableObjects, TablePoolNames, TableNamePools, TableStatistics, TableMeta} {
		if err := d.exec(psql.Delete(table)); err != nil {
			return err
		}
	}

	meta := psql.Insert(TableMeta).
		Columns("id", "version", "player_name", "clock", "game_over", "reason", "saved_at").
		Values(1, SchemaVersion, st.PlayerName, st.Clock.UTC().Format(time.RFC3339), st.Over, st.Reason, time.Now().UTC().Format(time.RFC3339))
	if err := d.exec(meta); err != nil {
		return err
	}

	for i, rec := range st.Objects {
		if err := d.writeObject(i, rec); err != nil {
			return fmt.Errorf("object %d: %w", rec.USI, err)
		}
	}

	if err := d.writeNames(st.Names); err != nil {
		return err
	}

	for kind, counts := range map[string]map[string]int{StatKill: st.Kills, StatOther: st.Other} {
		for label, n := range counts {
			ins := psql.Insert(TableStatistics).
				Columns("kind", "label", "count").
				Values(kind, label, n)
			if err := d.exec(ins); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *SQLiteDatabase) writeObject(position int, rec entity.Record) error {
	values := map[string]any{
		"usi":      rec.USI,
		"position": position,
		"kind":     rec.Kind.String(),
		"name":     rec.Name,
		"image":    rec.Image,
		"team":     int(rec.Team),
		"hp":       rec.HP,
		"hp_max":   rec.HPMax,
		"quadrant": rec.Coord.Quadrant,
		"qx":       rec.Coord.QLoc.X,
		"qy":       rec.Coord.QLoc.Y,
		"rx":       rec.Coord.RLoc.X,
		"ry":       rec.Coord.RLoc.Y,
		"class":    rec.Class,
	}
	m := rec.Machine
	if m != nil {
		values["ai"] = m.AI
		values["energy"] = m.Energy
		values["energy_max"] = m.EnergyMax
		values["dodge"] = m.Dodge
		values["repair_points"] = m.RepairPoints
		values["point_value"] = m.PointValue
	}
	if err := d.exec(psql.Insert(TableObjects).SetMap(values)); err != nil {
		return err
	}
	if m == nil {
		return nil
	}

	if p := m.Pilot; p != nil {
		ins := psql.Insert(TablePilots).SetMap(map[string]any{
			"usi":        rec.USI,
			"ai":         p.AI,
			"funds":      p.Funds,
			"experience": p.Experience,
			"level":      p.Level,
			"hacking":    p.Skills[pilot.Hacking],
			"mechanic":   p.Skills[pilot.Mechanic],
			"merchant":   p.Skills[pilot.Merchant],
			"piloting":   p.Skills[pilot.Piloting],
			"weapons":    p.Skills[pilot.Weapons],
			"unassigned": p.Unassigned,
		})
		if err := d.exec(ins); err != nil {
			return err
		}
	}

	for i, sys := range m.Systems {
		ins := psql.Insert(TableSystems).SetMap(map[string]any{
			"usi":       rec.USI,
			"position":  i,
			"kind":      sys.Kind.String(),
			"repair":    sys.Repair,
			"level":     sys.Level,
			"capacity":  sys.Capacity,
			"remaining": sys.Remaining,
			"active":    sys.On,
			"max_speed": sys.MaxSpeed,
			"setting":   sys.Setting,
			"count":     sys.Count,
			"chart":     encodeChart(sys.Known),
		})
		if err := d.exec(ins); err != nil {
			return err
		}
	}
	return nil
}

func (d *SQLiteDatabase) writeNames(names factory.NamesRecord) error {
	for cat, pool := range names.Pools {
		ins := psql.Insert(TableNamePools).
			Columns("category", "repeats").
			Values(string(cat), names.Repeats[cat])
		if err := d.exec(ins); err != nil {
			return err
		}
		for i, name := range pool {
			ins := psql.Insert(TablePoolNames).
				Columns("category", "position", "name").
				Values(string(cat), i, name)
			if err := d.exec(ins); err != nil {
				return err
			}
		}
	}
	return nil
}

// LoadState reads the saved game
func (d *SQLiteDatabase) LoadState() (game.State, error) {
	if !d.dbOpen {
		return game.State{}, ErrNotOpen
	}

	st, err := d.readMeta()
	if err != nil {
		return game.State{}, err
	}
	if st.Objects, err = d.readObjects(); err != nil {
		return game.State{}, err
	}
	if st.Names, err = d.readNames(); err != nil {
		return game.State{}, err
	}
	if st.Kills, st.Other, err = d.readStatistics(); err != nil {
		return game.State{}, err
	}

	log.Info("game loaded", "file", d.filename, "objects", len(st.Objects))
	return st, nil
}

func (d *SQLiteDatabase) readMeta() (game.State, error) {
	q := psql.Select("version", "player_name", "clock", "game_over", "reason").
		From(TableMeta).
		Where(squirrel.Eq{"id": 1})
	query, args, err := q.ToSql()
	if err != nil {
		return game.State{}, fmt.Errorf("failed to build query: %w", err)
	}

	var (
		st      game.State
		version int
		clock   string
	)
	err = d.conn().QueryRow(query, args...).Scan(&version, &st.PlayerName, &clock, &st.Over, &st.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return game.State{}, ErrNoSave
	}
	if err != nil {
		return game.State{}, fmt.Errorf("failed to read save header: %w", err)
	}
	if version > SchemaVersion {
		return game.State{}, fmt.Errorf("save format %d is newer than supported format %d", version, SchemaVersion)
	}
	if st.Clock, err = time.Parse(time.RFC3339, clock); err != nil {
		return game.State{}, fmt.Errorf("bad clock %q: %w", clock, err)
	}
	return st, nil
}

func (d *SQLiteDatabase) readObjects() ([]entity.Record, error) {
	rows, err := d.query(psql.Select(
		"usi", "kind", "name", "image", "team", "hp", "hp_max",
		"quadrant", "qx", "qy", "rx", "ry", "class",
		"ai", "energy", "energy_max", "dodge", "repair_points", "point_value",
	).From(TableObjects).OrderBy("position"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		records []entity.Record
		byUSI   = make(map[int64]int)
	)
	for rows.Next() {
		var (
			rec        entity.Record
			kind       string
			team       int
			c          galaxy.Coordinate
			ai         sql.NullBool
			energy     sql.NullInt64
			energyMax  sql.NullInt64
			dodge      sql.NullInt64
			repair     sql.NullFloat64
			pointValue sql.NullInt64
		)
		if err := rows.Scan(&rec.USI, &kind, &rec.Name, &rec.Image, &team, &rec.HP, &rec.HPMax,
			&c.Quadrant, &c.QLoc.X, &c.QLoc.Y, &c.RLoc.X, &c.RLoc.Y, &rec.Class,
			&ai, &energy, &energyMax, &dodge, &repair, &pointValue); err != nil {
			return nil, fmt.Errorf("failed to scan object: %w", err)
		}
		if rec.Kind, err = entity.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("object %d: %w", rec.USI, err)
		}
		rec.Team = entity.Team(team)
		rec.Coord = c
		if ai.Valid {
			rec.Machine = &entity.MachineRecord{
				AI:           ai.Bool,
				Energy:       int(energy.Int64),
				EnergyMax:    int(energyMax.Int64),
				Dodge:        int(dodge.Int64),
				RepairPoints: repair.Float64,
				PointValue:   int(pointValue.Int64),
			}
		}
		byUSI[rec.USI] = len(records)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read objects: %w", err)
	}

	if err := d.readPilots(records, byUSI); err != nil {
		return nil, err
	}
	if err := d.readSystems(records, byUSI); err != nil {
		return nil, err
	}
	return records, nil
}

// machineOf finds the machine record of the object with identifier usi
func machineOf(records []entity.Record, byUSI map[int64]int, usi int64) (*entity.MachineRecord, error) {
	i, ok := byUSI[usi]
	if !ok {
		return nil, fmt.Errorf("unknown object %d", usi)
	}
	if records[i].Machine == nil {
		return nil, fmt.Errorf("object %d is not a machine", usi)
	}
	return records[i].Machine, nil
}

func (d *SQLiteDatabase) readPilots(records []entity.Record, byUSI map[int64]int) error {
	rows, err := d.query(psql.Select(
		"usi", "ai", "funds", "experience", "level",
		"hacking", "mechanic", "merchant", "piloting", "weapons", "unassigned",
	).From(TablePilots))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			usi int64
			p   pilot.Record
		)
		if err := rows.Scan(&usi, &p.AI, &p.Funds, &p.Experience, &p.Level,
			&p.Skills[pilot.Hacking], &p.Skills[pilot.Mechanic], &p.Skills[pilot.Merchant],
			&p.Skills[pilot.Piloting], &p.Skills[pilot.Weapons], &p.Unassigned); err != nil {
			return fmt.Errorf("failed to scan pilot: %w", err)
		}
		m, err := machineOf(records, byUSI, usi)
		if err != nil {
			return fmt.Errorf("pilot: %w", err)
		}
		m.Pilot = &p
	}
	return rows.Err()
}

func (d *SQLiteDatabase) readSystems(records []entity.Record, byUSI map[int64]int) error {
	rows, err := d.query(psql.Select(
		"usi", "kind", "repair", "level", "capacity", "remaining",
		"active", "max_speed", "setting", "count", "chart",
	).From(TableSystems).OrderBy("usi", "position"))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			usi   int64
			kind  string
			chart string
			sys   systems.Record
		)
		if err := rows.Scan(&usi, &kind, &sys.Repair, &sys.Level, &sys.Capacity, &sys.Remaining,
			&sys.On, &sys.MaxSpeed, &sys.Setting, &sys.Count, &chart); err != nil {
			return fmt.Errorf("failed to scan system: %w", err)
		}
		if sys.Kind, err = systems.ParseKind(kind); err != nil {
			return fmt.Errorf("object %d: %w", usi, err)
		}
		if sys.Known, err = decodeChart(chart); err != nil {
			return fmt.Errorf("object %d: %w", usi, err)
		}
		m, err := machineOf(records, byUSI, usi)
		if err != nil {
			return fmt.Errorf("system: %w", err)
		}
		m.Systems = append(m.Systems, sys)
	}
	return rows.Err()
}

func (d *SQLiteDatabase) readNames() (factory.NamesRecord, error) {
	rec := factory.NamesRecord{
		Pools:   make(map[factory.Category][]string),
		Repeats: make(map[factory.Category]int),
	}

	rows, err := d.query(psql.Select("category", "repeats").From(TableNamePools))
	if err != nil {
		return rec, err
	}
	for rows.Next() {
		var (
			cat     string
			repeats int
		)
		if err := rows.Scan(&cat, &repeats); err != nil {
			rows.Close()
			return rec, fmt.Errorf("failed to scan name pool: %w", err)
		}
		rec.Pools[factory.Category(cat)] = []string{}
		rec.Repeats[factory.Category(cat)] = repeats
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return rec, err
	}

	rows, err = d.query(psql.Select("category", "name").From(TablePoolNames).OrderBy("category", "position"))
	if err != nil {
		return rec, err
	}
	defer rows.Close()
	for rows.Next() {
		var cat, name string
		if err := rows.Scan(&cat, &name); err != nil {
			return rec, fmt.Errorf("failed to scan pool name: %w", err)
		}
		rec.Pools[factory.Category(cat)] = append(rec.Pools[factory.Category(cat)], name)
	}
	return rec, rows.Err()
}

func (d *SQLiteDatabase) readStatistics() (map[string]int, map[string]int, error) {
	kills := make(map[string]int)
	other := make(map[string]int)

	rows, err := d.query(psql.Select("kind", "label", "count").From(TableStatistics))
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind, label string
			n           int
		)
		if err := rows.Scan(&kind, &label, &n); err != nil {
			return nil, nil, fmt.Errorf("failed to scan statistic: %w", err)
		}
		switch kind {
		case StatKill:
			kills[label] = n
		case StatOther:
			other[label] = n
		default:
			return nil, nil, fmt.Errorf("unknown statistic kind %q", kind)
		}
	}
	return kills, other, rows.Err()
}

// encodeChart writes a computer chart as a string of 0s and 1s
func encodeChart(known []bool) string {
	var b strings.Builder
	b.Grow(len(known))
	for _, k := range known {
		if k {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func decodeChart(s string) ([]bool, error) {
	if s == "" {
		return nil, nil
	}
	known := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			known[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("bad chart cell %q at %d", s[i], i)
		}
	}
	return known, nil
}
