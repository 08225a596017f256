package game

import (
	"errors"
	"fmt"

	"trek/internal/entity"
	"trek/internal/factory"
	"trek/internal/galaxy"
	"trek/internal/log"
	"trek/internal/pilot"
	"trek/internal/space"
)

// Command rejections. The text is shown to the player as is.
var (
	ErrInvalidHours    = fmt.Errorf("rest between 1 and %d hours", MaxHours)
	ErrUnknownObject   = errors.New("no such object")
	ErrOutOfRange      = errors.New("that object is not in this region")
	ErrNoComputer      = errors.New("no computer installed")
	ErrNoScanner       = errors.New("no short range scanner installed")
	ErrShieldsDown     = errors.New("the shields cannot be raised")
	ErrNotEnoughPoints = errors.New("not enough unassigned skill points")
	ErrInvalidSetting  = errors.New("light drive setting must be positive")
	ErrInvalidDamage   = errors.New("damage must be positive")
	ErrInvalidCause    = errors.New("unknown damage cause")
	ErrInvalidQuadrant = errors.New("no such quadrant")
)

// Rest lets hours pass with the ship standing still
func (s *Session) Rest(hours int) error {
	if err := s.check(); err != nil {
		return err
	}
	if hours < 1 || hours > MaxHours {
		return reject("rest", ErrInvalidHours)
	}
	s.passTime(hours)
	s.stats.AddOtherN(StatHoursRested, hours)
	return nil
}

// MoveLight jumps the player to cell r of region q with the light drive.
// The jump spends time, so the game may end on the way.
func (s *Session) MoveLight(q, r galaxy.Point) (entity.Travel, error) {
	if err := s.check(); err != nil {
		return entity.Travel{}, err
	}
	travel, err := s.Player().LightDriveMove(s, q, r)
	if err != nil {
		return travel, reject("move light", err)
	}
	s.stats.AddOther(StatJumps)
	log.Debug("light drive jump", "to", s.Player().Coord().String(), "cost", travel.Cost, "hours", travel.Hours)
	return travel, nil
}

// PlanLightDrive prices a jump to region q without making it
func (s *Session) PlanLightDrive(q galaxy.Point) (entity.Travel, error) {
	if err := s.check(); err != nil {
		return entity.Travel{}, err
	}
	return s.Player().PlanLightDrive(q)
}

// MoveLocal moves the player to cell (x, y) of the current region
func (s *Session) MoveLocal(x, y int) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.Player().LocalMove(s, x, y); err != nil {
		return reject("move local", err)
	}
	s.stats.AddOther(StatLocalMoves)
	return nil
}

// SetLightDriveSetting changes the cruising speed of the light drive. The
// drive bounds the value to what it can deliver.
func (s *Session) SetLightDriveSetting(setting float64) (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	ld := s.Player().Systems().LightDrive()
	if ld == nil {
		return 0, reject("light drive setting", entity.ErrNoLightDrive)
	}
	if setting <= 0 {
		return ld.Setting(), reject("light drive setting", ErrInvalidSetting)
	}
	ld.SetSetting(setting)
	return ld.Setting(), nil
}

// SetShields raises or lowers the shields
func (s *Session) SetShields(on bool) error {
	if err := s.check(); err != nil {
		return err
	}
	shields := s.Player().Systems().Shields()
	if shields == nil {
		return reject("shields", entity.ErrNoShields)
	}
	if shields.SetOn(on) != on {
		return reject("shields", ErrShieldsDown)
	}
	return nil
}

// TransferToShields moves n units of main energy into the shields
func (s *Session) TransferToShields(n int) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.Player().TransferToShields(n); err != nil {
		return reject("transfer to shields", err)
	}
	return nil
}

// TransferToMain moves n units of shield energy into main energy
func (s *Session) TransferToMain(n int) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.Player().TransferToMain(n); err != nil {
		return reject("transfer to main", err)
	}
	return nil
}

// MaxEnergy fills main energy from the shields and returns the amount moved
func (s *Session) MaxEnergy() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.Player().Systems().Shields() == nil {
		return 0, reject("max energy", entity.ErrNoShields)
	}
	return s.Player().MaxEnergy(), nil
}

// MaxShields fills the shields from main energy and returns the amount moved
func (s *Session) MaxShields() (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.Player().Systems().Shields() == nil {
		return 0, reject("max shields", entity.ErrNoShields)
	}
	return s.Player().MaxShields(), nil
}

// AssignPoints spends n unassigned points on a skill of the player's pilot
func (s *Session) AssignPoints(skill pilot.Skill, n int) error {
	if err := s.check(); err != nil {
		return err
	}
	if n <= 0 {
		return reject("assign points", entity.ErrInvalidAmount)
	}
	if !s.pilot.AssignPoints(skill, n) {
		return reject("assign points", ErrNotEnoughPoints)
	}
	return nil
}

// AddShip creates a computer-controlled ship of the given class for a team
// somewhere in quadrant, outside the player's region and on a free cell.
// Its pilot is as experienced as the player.
func (s *Session) AddShip(class string, team entity.Team, quadrant int) (*entity.Ship, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if quadrant < 0 || quadrant >= galaxy.Quadrants {
		return nil, fmt.Errorf("%w: %d", ErrInvalidQuadrant, quadrant)
	}

	if !team.Valid() {
		return nil, fmt.Errorf("%w: %d", entity.ErrInvalidTeam, team)
	}
	if _, err := s.catalog.Class(class); err != nil {
		return nil, err
	}
	home := s.Player().Coord()
	coord, err := s.space.RandomFreeCell(quadrant, func(c galaxy.Coordinate) bool {
		return !c.SameRegion(home)
	})
	if err != nil {
		return nil, fmt.Errorf("place %s: %w", class, err)
	}

	// The name is drawn last so a refused ship leaves the pools alone
	name := "No Name"
	if cat, err := factory.ShipCategory(team); err == nil {
		if name, err = s.names.Next(cat); err != nil {
			return nil, err
		}
	}

	ship, err := s.catalog.CreateShip(factory.ShipSpec{
		Class: class,
		Name:  name,
		Team:  team,
		AI:    true,
		Level: s.pilot.Level(),
		Coord: coord,
		Rand:  s.rng,
	})
	if err != nil {
		return nil, err
	}
	if err := s.space.Add(ship); err != nil {
		return nil, err
	}
	s.stats.AddOther(StatShipsMet)
	log.Debug("ship added", "name", ship.Name(), "class", class, "team", team, "location", coord.String())
	return ship, nil
}

// DamageObject deals points of damage of the given cause to the object with
// identifier usi and reports whether it was destroyed. Destroyed objects
// leave the registry and count as kills for the player; the player's own
// destruction ends the game.
func (s *Session) DamageObject(usi int64, points int, cause entity.Cause) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	if points <= 0 {
		return false, reject("damage", ErrInvalidDamage)
	}
	if cause < entity.Energy || cause > entity.Projectile {
		return false, reject("damage", ErrInvalidCause)
	}
	target := s.space.Find(usi)
	if target == nil {
		return false, reject("damage", fmt.Errorf("%w: %d", ErrUnknownObject, usi))
	}

	if target.TakeDamage(points, cause) {
		return false, nil
	}

	if target.USI() == s.Player().USI() {
		s.endGame(ReasonDestroyed)
		return true, nil
	}
	if err := s.space.Remove(target); err != nil {
		return true, err
	}
	s.stats.AddKill(killName(target))

	if v, ok := target.(interface{ PointValue() int }); ok && v.PointValue() > 0 {
		s.stats.AddOtherN(StatKillPoints, v.PointValue())
		if gained := s.pilot.AddExperience(int64(v.PointValue())); gained > 0 {
			log.Info("pilot level up", "player", s.playerName, "level", s.pilot.Level())
		}
	}
	log.Debug("object destroyed", "usi", usi, "name", target.Name(), "kind", target.Kind())
	return true, nil
}

// killName is the statistics key of a destroyed object
func killName(obj entity.SpaceObject) string {
	if ship, ok := obj.(*entity.Ship); ok {
		return ship.Class()
	}
	return obj.Kind().String()
}

// Scan reports what the player's short range scanner sees of the object
// with identifier usi. Only objects in the player's region can be scanned.
func (s *Session) Scan(usi int64) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	target := s.space.Find(usi)
	if target == nil {
		return "", reject("scan", fmt.Errorf("%w: %d", ErrUnknownObject, usi))
	}
	if !target.Coord().SameRegion(s.Player().Coord()) {
		return "", reject("scan", ErrOutOfRange)
	}
	sr := s.Player().Systems().ShortRangeScanner()
	if sr == nil {
		return "", reject("scan", ErrNoScanner)
	}
	return entity.ScanReport(sr, target), nil
}

// Targets lists the objects of other teams in the player's region
func (s *Session) Targets() []entity.SpaceObject {
	c := s.Player().Coord()
	return s.space.InRegion(c.Quadrant, c.QLoc, space.Filter{ExcludeTeam: s.Player().Team()})
}

// ClosestTarget returns the nearest object of another team in the player's
// region, or nil
func (s *Session) ClosestTarget() entity.SpaceObject {
	return s.space.ClosestTarget(s.Player())
}

// PlotCourse asks the player's computer for a route to region q through
// charted regions
func (s *Session) PlotCourse(q galaxy.Point) ([]galaxy.Point, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	computer := s.Player().Systems().Computer()
	if computer == nil {
		return nil, reject("plot course", ErrNoComputer)
	}
	c := s.Player().Coord()
	course, err := computer.PlotCourse(c.Quadrant, c.QLoc, q)
	if err != nil {
		return nil, reject("plot course", err)
	}
	return course, nil
}

// RevealAll charts every region on the player's computer
func (s *Session) RevealAll() error {
	if err := s.check(); err != nil {
		return err
	}
	computer := s.Player().Systems().Computer()
	if computer == nil {
		return reject("reveal", ErrNoComputer)
	}
	computer.SetAll(true)
	return nil
}
