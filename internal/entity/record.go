package entity

import (
	"fmt"

	"trek/internal/galaxy"
	"trek/internal/pilot"
	"trek/internal/systems"
)

// Record is the persisted form of any object
type Record struct {
	Kind    Kind              `json:"kind"`
	USI     int64             `json:"usi"`
	Name    string            `json:"name"`
	Image   string            `json:"image"`
	Team    Team              `json:"team"`
	HP      int               `json:"hp"`
	HPMax   int               `json:"hp_max"`
	Coord   galaxy.Coordinate `json:"coord"`
	Class   string            `json:"class,omitempty"`
	Machine *MachineRecord    `json:"machine,omitempty"`
}

// MachineRecord holds the extra state of ships and bases
type MachineRecord struct {
	AI           bool             `json:"ai"`
	Energy       int              `json:"energy"`
	EnergyMax    int              `json:"energy_max"`
	Dodge        int              `json:"dodge"`
	RepairPoints float64          `json:"repair_points"`
	PointValue   int              `json:"point_value"`
	Pilot        *pilot.Record    `json:"pilot,omitempty"`
	Systems      []systems.Record `json:"systems"`
}

func (o *Object) record(k Kind) Record {
	return Record{
		Kind:  k,
		USI:   o.usi,
		Name:  o.name,
		Image: o.image,
		Team:  o.team,
		HP:    o.hp,
		HPMax: o.hpMax,
		Coord: o.coord,
	}
}

func (m *Machine) machineRecord() *MachineRecord {
	rec := &MachineRecord{
		AI:           m.ai,
		Energy:       m.energy,
		EnergyMax:    m.energyMax,
		Dodge:        m.dodge,
		RepairPoints: m.repairPoints,
		PointValue:   m.pointValue,
	}
	if m.pilot != nil {
		p := m.pilot.Record()
		rec.Pilot = &p
	}
	for _, sys := range m.systems.All() {
		rec.Systems = append(rec.Systems, systems.Snapshot(sys))
	}
	return rec
}

func (a *Asteroid) Record() Record { return a.record(KindAsteroid) }
func (s *Star) Record() Record     { return s.record(KindStar) }

func (b *Base) Record() Record {
	rec := b.record(KindBase)
	rec.Machine = b.machineRecord()
	return rec
}

func (s *Ship) Record() Record {
	rec := s.record(KindShip)
	rec.Class = s.class
	rec.Machine = s.machineRecord()
	return rec
}

// FromRecord rebuilds an object with its original identifier and reserves
// that identifier so new objects never collide with it.
func FromRecord(rec Record) (SpaceObject, error) {
	if !rec.Team.Valid() {
		return nil, fmt.Errorf("object %d: %w: %d", rec.USI, ErrInvalidTeam, int(rec.Team))
	}
	if rec.HPMax <= 0 || rec.HPMax > MaxHP || rec.HP > rec.HPMax {
		return nil, fmt.Errorf("object %d: hit points %d/%d out of range", rec.USI, rec.HP, rec.HPMax)
	}
	if err := rec.Coord.Validate(); err != nil {
		return nil, fmt.Errorf("object %d: %w", rec.USI, err)
	}

	obj := Object{
		usi:   rec.USI,
		name:  rec.Name,
		image: rec.Image,
		team:  rec.Team,
		hp:    rec.HP,
		hpMax: rec.HPMax,
		coord: rec.Coord,
	}

	var out SpaceObject
	switch rec.Kind {
	case KindAsteroid:
		out = &Asteroid{Object: obj}
	case KindStar:
		out = &Star{Object: obj}
	case KindBase:
		b := &Base{Machine: newMachine(obj)}
		if err := b.restore(rec.Machine); err != nil {
			return nil, fmt.Errorf("object %d: %w", rec.USI, err)
		}
		out = b
	case KindShip:
		s := &Ship{Machine: newMachine(obj), class: rec.Class}
		if err := s.restore(rec.Machine); err != nil {
			return nil, fmt.Errorf("object %d: %w", rec.USI, err)
		}
		out = s
	default:
		return nil, fmt.Errorf("object %d: unknown kind %d", rec.USI, int(rec.Kind))
	}

	ReserveUSI(rec.USI)
	return out, nil
}

func (m *Machine) restore(rec *MachineRecord) error {
	if rec == nil {
		return nil
	}
	m.ai = rec.AI
	m.SetEnergyMax(rec.EnergyMax)
	m.SetEnergy(rec.Energy)
	m.SetDodge(rec.Dodge)
	m.SetRepairPoints(rec.RepairPoints)
	m.SetPointValue(rec.PointValue)
	if rec.Pilot != nil {
		m.pilot = pilot.FromRecord(*rec.Pilot)
	}
	for _, sr := range rec.Systems {
		sys, err := systems.FromRecord(sr)
		if err != nil {
			return err
		}
		m.Install(sys)
	}
	return nil
}
