package systems

import (
	"fmt"

	"trek/internal/galaxy"
)

// Record is the persisted form of any system. Fields that do not apply to a
// kind are left at their zero value.
type Record struct {
	Kind      Kind    `json:"kind"`
	Repair    float64 `json:"repair"`
	Level     int     `json:"level"`
	Capacity  int     `json:"capacity"`
	Remaining int     `json:"remaining"`
	On        bool    `json:"on"`
	MaxSpeed  float64 `json:"max_speed"`
	Setting   float64 `json:"setting"`
	Count     int     `json:"count"`
	Known     []bool  `json:"known"`
}

// Snapshot captures the full state of a system
func Snapshot(sys System) Record {
	rec := Record{Kind: sys.Kind(), Repair: sys.Repair()}
	switch s := sys.(type) {
	case *Shields:
		rec.Level = s.level
		rec.Capacity = s.capacity
		rec.Remaining = s.remaining
		rec.On = s.on
	case *Generator:
		rec.Capacity = s.capacity
	case *LightDrive:
		rec.MaxSpeed = s.maxSpeed
		rec.Setting = s.setting
	case *Computer:
		rec.Level = s.level
		rec.Known = make([]bool, 0, galaxy.Quadrants*regionsPerQuadrant)
		for q := range s.known {
			rec.Known = append(rec.Known, s.known[q][:]...)
		}
	case *LongRangeScanner:
		rec.Level = s.level
	case *ShortRangeScanner:
		rec.Level = s.level
	case *LaserWeapon:
		rec.Count = s.count
	}
	return rec
}

// FromRecord rebuilds a system from its persisted form
func FromRecord(rec Record) (System, error) {
	var sys System
	switch rec.Kind {
	case KindShields:
		s := NewShields(rec.Level, rec.Capacity)
		s.remaining = clampInt(rec.Remaining, 0, s.capacity)
		s.on = rec.On
		sys = s
	case KindGenerator:
		sys = NewGenerator(rec.Capacity)
	case KindLightDrive:
		ld := NewLightDrive(rec.MaxSpeed)
		ld.setting = rec.Setting
		sys = ld
	case KindComputer:
		c := NewComputer(rec.Level)
		if len(rec.Known) > 0 && len(rec.Known) != galaxy.Quadrants*regionsPerQuadrant {
			return nil, fmt.Errorf("computer chart has %d cells, want %d", len(rec.Known), galaxy.Quadrants*regionsPerQuadrant)
		}
		for i, known := range rec.Known {
			c.known[i/regionsPerQuadrant][i%regionsPerQuadrant] = known
		}
		sys = c
	case KindLongRangeScanner:
		sys = NewLongRangeScanner(rec.Level)
	case KindShortRangeScanner:
		sys = NewShortRangeScanner(rec.Level)
	case KindImpulseDrive:
		sys = NewImpulseDrive()
	case KindLaserWeapon:
		sys = NewLaserWeapon(rec.Count)
	default:
		return nil, fmt.Errorf("unknown system kind %d", int(rec.Kind))
	}
	sys.SetRepair(rec.Repair)
	return sys, nil
}
