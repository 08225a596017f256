package entity

import (
	"errors"
	"math"

	"trek/internal/galaxy"
)

// Movement constants
const (
	LightDriveCostFactor = 6.138
	LightDriveTimeFactor = 15.08
	LocalMoveCost        = 50
	MinImpulseRepair     = 0.7
)

// Rejections for movement commands. The text is shown to the player as is.
var (
	ErrNoLightDrive   = errors.New("no light drive installed")
	ErrNoImpulseDrive = errors.New("no impulse drive installed")
	ErrNotAMove       = errors.New("you are already in that region")
	ErrBlocked        = errors.New("that location is blocked")
	ErrEnginesDamaged = errors.New("your engines are too damaged")
)

// World is what a ship needs from its surroundings to move
type World interface {
	// ObjectAt returns the object occupying c, or nil
	ObjectAt(c galaxy.Coordinate) SpaceObject
	// PassTime advances the world clock by hours
	PassTime(hours int)
}

// Travel is the price of a light drive jump
type Travel struct {
	Distance float64 `json:"distance"`
	Cost     int     `json:"cost"`
	Hours    int     `json:"hours"`
}

// Ship is a mobile machine of a named class
type Ship struct {
	Machine
	class string
}

// NewShip creates a ship with no systems, one unit of energy and an AI pilot
// flag; the ship factory fills in the rest.
func NewShip(name, class, image string, team Team, hp int, coord galaxy.Coordinate) (*Ship, error) {
	obj, err := newObject(name, image, team, hp, coord)
	if err != nil {
		return nil, err
	}
	return &Ship{Machine: newMachine(obj), class: class}, nil
}

func (s *Ship) Kind() Kind    { return KindShip }
func (s *Ship) Class() string { return s.class }

// SetClass changes the ship class; empty names are ignored
func (s *Ship) SetClass(c string) {
	if c != "" {
		s.class = c
	}
}

// PlanLightDrive prices a jump to region q without checking for energy or
// obstacles. The computer discount and the shield penalty are included.
func (s *Ship) PlanLightDrive(q galaxy.Point) (Travel, error) {
	ld := s.systems.LightDrive()
	if ld == nil {
		return Travel{}, ErrNoLightDrive
	}
	setting := ld.Setting()
	if setting <= 0 {
		return Travel{}, ErrEnginesDamaged
	}

	d := s.coord.QLoc.Distance(q)
	cost := int(math.Round(d * LightDriveCostFactor * setting * setting))
	if computer := s.systems.Computer(); computer != nil {
		cost -= int(float64(cost) * computer.Saved())
	}
	if shields := s.systems.Shields(); shields != nil && shields.On() {
		cost *= 2
	}

	return Travel{
		Distance: d,
		Cost:     cost,
		Hours:    int(math.Round(d * LightDriveTimeFactor / setting)),
	}, nil
}

// LightDriveMove jumps to cell r of region q in the current quadrant. On any
// rejection nothing changes. The player's jump passes time in the world
// before the ship arrives; the arrival triggers a long range scan.
func (s *Ship) LightDriveMove(world World, q, r galaxy.Point) (Travel, error) {
	if s.systems.LightDrive() == nil {
		return Travel{}, ErrNoLightDrive
	}
	dest := galaxy.Coordinate{Quadrant: s.coord.Quadrant, QLoc: q, RLoc: r}
	if err := dest.Validate(); err != nil {
		return Travel{}, err
	}
	if q == s.coord.QLoc {
		return Travel{}, ErrNotAMove
	}
	if world.ObjectAt(dest) != nil {
		return Travel{}, ErrBlocked
	}

	travel, err := s.PlanLightDrive(q)
	if err != nil {
		return Travel{}, err
	}
	if travel.Cost > s.energy {
		return travel, ErrNotEnoughEnergy
	}

	s.RemoveEnergy(travel.Cost)
	if !s.ai {
		world.PassTime(travel.Hours)
	}
	s.coord = dest
	s.LongRangeScan()
	return travel, nil
}

// LocalMoveCost is the energy a move inside the region costs right now
func (s *Ship) LocalMoveCost() int {
	if shields := s.systems.Shields(); shields != nil && shields.On() {
		return LocalMoveCost * 2
	}
	return LocalMoveCost
}

// LocalMove moves to cell (x, y) of the current region using the impulse
// drive. It takes no time. On any rejection nothing changes.
func (s *Ship) LocalMove(world World, x, y int) error {
	dest := galaxy.Coordinate{Quadrant: s.coord.Quadrant, QLoc: s.coord.QLoc, RLoc: galaxy.Pt(x, y)}
	if err := dest.Validate(); err != nil {
		return err
	}
	if world.ObjectAt(dest) != nil {
		return ErrBlocked
	}
	drive := s.systems.ImpulseDrive()
	if drive == nil {
		return ErrNoImpulseDrive
	}
	if drive.Repair() < MinImpulseRepair {
		return ErrEnginesDamaged
	}
	if !s.RemoveEnergy(s.LocalMoveCost()) {
		return ErrNotEnoughEnergy
	}
	s.coord = dest
	return nil
}
