package factory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// CSVColumns is the column count of the legacy ship table
const CSVColumns = 20

// csvHeader starts the header row of the legacy table
const csvHeader = "Ship Class"

// ParseShipCSV reads the legacy comma separated ship table. The header row
// and blank lines are skipped; every other row must have all columns.
func ParseShipCSV(r io.Reader) ([]ShipClass, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var classes []ShipClass
	for line := 1; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ship table line %d: %w", line, err)
		}
		if len(rec) == 0 || strings.HasPrefix(rec[0], csvHeader) {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		class, err := parseShipRow(line, rec)
		if err != nil {
			return nil, err
		}
		classes = append(classes, class)
	}
	return classes, nil
}

func parseShipRow(line int, cols []string) (ShipClass, error) {
	if len(cols) < CSVColumns {
		return ShipClass{}, &DataError{Row: line, Field: "row", Reason: fmt.Sprintf("has %d columns, want %d", len(cols), CSVColumns)}
	}

	var (
		class ShipClass
		err   error
	)
	atoi := func(field, s string) int {
		if err != nil {
			return 0
		}
		v, convErr := strconv.Atoi(strings.TrimSpace(s))
		if convErr != nil {
			err = &DataError{Row: line, Class: class.Name, Field: field, Reason: "is not a whole number"}
		}
		return v
	}
	atof := func(field, s string) float64 {
		if err != nil {
			return 0
		}
		v, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if convErr != nil {
			err = &DataError{Row: line, Class: class.Name, Field: field, Reason: "is not a number"}
		}
		return v
	}

	class.Name = strings.TrimSpace(cols[0])
	class.Image = strings.TrimSpace(cols[1])
	class.MaxEnergy = atoi("max_energy", cols[2])
	class.Dodge = atoi("dodge", cols[3])
	class.HitPoints = atoi("hitpoints", cols[4])
	class.Repair = atof("repair", cols[5])
	class.Computer = atoi("computer", cols[6])
	class.Generator = atoi("generator", cols[7])
	class.LightDrive = atof("light_drive", cols[8])
	class.EnergyWeapon = strings.TrimSpace(cols[9])
	class.LauncherType = strings.TrimSpace(cols[10])
	class.LauncherTubes = atoi("launcher_tubes", cols[11])
	class.LauncherLoad = atoi("launcher_load", cols[12])
	class.LRScanner = atoi("lr_scanner", cols[13])
	class.SRScanner = atoi("sr_scanner", cols[14])
	class.ShieldLevel = atoi("shield_level", cols[15])
	class.ShieldEnergy = atoi("shield_energy", cols[16])
	class.Shuttle = strings.TrimSpace(cols[17])
	class.Teleporter = strings.TrimSpace(cols[18])
	class.Points = atoi("points", cols[19])
	if err != nil {
		return ShipClass{}, err
	}
	return class, nil
}
