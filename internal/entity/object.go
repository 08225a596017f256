// Package entity defines the objects that populate space: ships, bases,
// asteroids and stars. Every variant embeds Object by value; ships and bases
// also embed Machine, which adds energy, subsystems and a pilot.
package entity

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"trek/internal/galaxy"
)

// MaxHP is the largest hit point maximum any object may have
const MaxHP = 50000

// ErrInvalidTeam is returned when an object is built for an unknown team
var ErrInvalidTeam = errors.New("invalid team")

// Team is the allegiance of an object
type Team int

const (
	Federation Team = iota + 1
	Neutral
	Pirates
	Raiders
)

var teamNames = map[Team]string{
	Federation: "Federation",
	Neutral:    "Neutral",
	Pirates:    "Pirates",
	Raiders:    "Raiders",
}

func (t Team) String() string {
	if name, ok := teamNames[t]; ok {
		return name
	}
	return fmt.Sprintf("team(%d)", int(t))
}

func (t Team) Valid() bool {
	_, ok := teamNames[t]
	return ok
}

// ParseTeam looks a team up by name, ignoring case
func ParseTeam(name string) (Team, error) {
	for t, n := range teamNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTeam, name)
}

// Kind tells the object variants apart
type Kind int

const (
	KindShip Kind = iota + 1
	KindBase
	KindAsteroid
	KindStar
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "Ship"
	case KindBase:
		return "Base"
	case KindAsteroid:
		return "Asteroid"
	case KindStar:
		return "Star"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for _, k := range []Kind{KindShip, KindBase, KindAsteroid, KindStar} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown object kind %q", s)
}

// lastUSI is the process-wide identifier counter. Identifiers are never reused.
var lastUSI atomic.Int64

func init() {
	lastUSI.Store(-1)
}

func nextUSI() int64 {
	return lastUSI.Add(1)
}

// ReserveUSI makes sure no identifier at or below usi is handed out again.
// Loading a saved game calls it for every restored object.
func ReserveUSI(usi int64) {
	for {
		cur := lastUSI.Load()
		if cur >= usi || lastUSI.CompareAndSwap(cur, usi) {
			return
		}
	}
}

// SpaceObject is implemented by every variant
type SpaceObject interface {
	Kind() Kind
	USI() int64
	Name() string
	Image() string
	Team() Team
	HP() int
	HPMax() int
	Coord() galaxy.Coordinate
	SetCoord(c galaxy.Coordinate) error
	Alive() bool
	TakeDamage(points int, cause Cause) bool
	PassTime(hours int)
	Record() Record
}

// Object holds the state shared by all variants
type Object struct {
	usi   int64
	name  string
	image string
	team  Team
	hp    int
	hpMax int
	coord galaxy.Coordinate
}

// newObject validates its inputs and takes the next identifier
func newObject(name, image string, team Team, hp int, coord galaxy.Coordinate) (Object, error) {
	if !team.Valid() {
		return Object{}, fmt.Errorf("%w: %d", ErrInvalidTeam, int(team))
	}
	if hp <= 0 || hp > MaxHP {
		return Object{}, fmt.Errorf("hit points %d out of range (0,%d]", hp, MaxHP)
	}
	if err := coord.Validate(); err != nil {
		return Object{}, err
	}
	return Object{
		usi:   nextUSI(),
		name:  name,
		image: image,
		team:  team,
		hp:    hp,
		hpMax: hp,
		coord: coord,
	}, nil
}

func (o *Object) USI() int64               { return o.usi }
func (o *Object) Name() string             { return o.name }
func (o *Object) Image() string            { return o.image }
func (o *Object) Team() Team               { return o.team }
func (o *Object) HP() int                  { return o.hp }
func (o *Object) HPMax() int               { return o.hpMax }
func (o *Object) Coord() galaxy.Coordinate { return o.coord }
func (o *Object) Alive() bool              { return o.hp > 0 }

// SetName renames the object; empty names are ignored
func (o *Object) SetName(name string) {
	if name != "" {
		o.name = name
	}
}

// SetHP sets the hit points. Values above the maximum are ignored; values at
// or below zero are allowed so that destruction can be detected.
func (o *Object) SetHP(hp int) {
	if hp <= o.hpMax {
		o.hp = hp
	}
}

// SetHPMax changes the maximum, ignoring values outside (0, MaxHP]
func (o *Object) SetHPMax(hp int) {
	if hp <= 0 || hp > MaxHP {
		return
	}
	o.hpMax = hp
	if o.hp > hp {
		o.hp = hp
	}
}

// SetCoord relocates the object
func (o *Object) SetCoord(c galaxy.Coordinate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	o.coord = c
	return nil
}

// LocatedIn reports whether the object is in the given region
func (o *Object) LocatedIn(quad int, qloc galaxy.Point) bool {
	return o.coord.Quadrant == quad && o.coord.QLoc == qloc
}

// TakeDamage removes hull points only. Machines override it with shield and
// system handling.
func (o *Object) TakeDamage(points int, _ Cause) bool {
	if points >= 1 {
		o.SetHP(o.hp - points)
	}
	return o.hp > 0
}

// PassTime does nothing for inert objects
func (o *Object) PassTime(int) {}

// Description is the one-line summary used by scans and logs
func Description(obj SpaceObject) string {
	if s, ok := obj.(*Ship); ok {
		return fmt.Sprintf("%s (%s), %s", s.Name(), s.Team(), s.Class())
	}
	return fmt.Sprintf("%s (%s)", obj.Name(), obj.Team())
}
