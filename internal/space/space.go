// Package space keeps the registry of every object in the game and answers
// spatial questions about it.
package space

import (
	"errors"
	"fmt"
	"math/rand"

	"trek/internal/entity"
	"trek/internal/galaxy"
	"trek/internal/log"
)

const (
	// BasesPerQuadrant is the number of bases placed in each quadrant
	BasesPerQuadrant = 7
	// MaxAsteroidsPerRegion bounds the asteroids placed in one region (exclusive)
	MaxAsteroidsPerRegion = 10
	// MaxStarsPerRegion bounds the stars placed in one region (exclusive)
	MaxStarsPerRegion = 2
	// MaxObjects is the expected upper bound on registry size; going over it only logs a warning
	MaxObjects = 5000
)

var (
	// ErrNotInRegistry is returned when asked to remove an unknown object
	ErrNotInRegistry = errors.New("object is not in the registry")
	// ErrPlayerShip is returned when asked to remove the player's ship
	ErrPlayerShip = errors.New("the player's ship cannot be removed")
	// ErrNoFreeCell is returned when no free cell fits the placement rules
	ErrNoFreeCell = errors.New("no free cell available")
)

// Space owns every object. The player's ship is held by an explicit handle
// and is always the first element of Objects.
type Space struct {
	player  *entity.Ship
	objects []entity.SpaceObject
	rng     *rand.Rand
}

// New creates a registry holding only the player's ship. A nil rng uses the
// global random source.
func New(player *entity.Ship, rng *rand.Rand) *Space {
	s := &Space{rng: rng}
	s.objects = make([]entity.SpaceObject, 0, 256)
	s.objects = append(s.objects, player)
	s.player = player
	return s
}

// Generate fills a fresh registry with asteroids, bases and stars
func (s *Space) Generate() error {
	if err := s.CreateAsteroids(); err != nil {
		return err
	}
	if err := s.CreateBases(); err != nil {
		return err
	}
	return s.CreateStars()
}

func (s *Space) intn(n int) int {
	if s.rng != nil {
		return s.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Rand returns the random source used for placement, possibly nil
func (s *Space) Rand() *rand.Rand { return s.rng }

// Player returns the player's ship
func (s *Space) Player() *entity.Ship { return s.player }

// SetPlayer swaps in a new player ship in the first slot
func (s *Space) SetPlayer(ship *entity.Ship) {
	s.player = ship
	s.objects[0] = ship
}

// Objects returns a copy of the registry, player first
func (s *Space) Objects() []entity.SpaceObject {
	out := make([]entity.SpaceObject, len(s.objects))
	copy(out, s.objects)
	return out
}

// Len returns the number of objects including the player
func (s *Space) Len() int { return len(s.objects) }

// Add registers obj. Objects already present are rejected.
func (s *Space) Add(obj entity.SpaceObject) error {
	if obj == nil {
		return errors.New("cannot add a nil object")
	}
	if s.Find(obj.USI()) != nil {
		return fmt.Errorf("object %d is already registered", obj.USI())
	}
	s.objects = append(s.objects, obj)
	if len(s.objects) > MaxObjects {
		log.Warn("space object count over estimate", "count", len(s.objects), "estimate", MaxObjects)
	}
	return nil
}

// Remove unregisters obj
func (s *Space) Remove(obj entity.SpaceObject) error {
	for i, o := range s.objects {
		if o.USI() != obj.USI() {
			continue
		}
		if i == 0 {
			return ErrPlayerShip
		}
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
		return nil
	}
	return fmt.Errorf("remove %s %d: %w", obj.Kind(), obj.USI(), ErrNotInRegistry)
}

// RemoveAll drops everything except the player's ship
func (s *Space) RemoveAll() {
	s.objects = append(s.objects[:0:0], s.player)
}

// Find returns the object with the given identifier, or nil
func (s *Space) Find(usi int64) entity.SpaceObject {
	for _, o := range s.objects {
		if o.USI() == usi {
			return o
		}
	}
	return nil
}

// ObjectAt returns the first object occupying c, or nil
func (s *Space) ObjectAt(c galaxy.Coordinate) entity.SpaceObject {
	if !c.Valid() {
		return nil
	}
	for _, o := range s.objects {
		if o.Coord() == c {
			return o
		}
	}
	return nil
}

// Filter narrows InRegion. A zero ExcludeTeam keeps every team; a zero Kind
// keeps every variant.
type Filter struct {
	ExcludeTeam entity.Team
	Kind        entity.Kind
}

// InRegion returns the objects in region qloc of quadrant quad, in registry order
func (s *Space) InRegion(quad int, qloc galaxy.Point, f Filter) []entity.SpaceObject {
	if quad < 0 || quad >= galaxy.Quadrants || !qloc.InQuadrant() {
		return nil
	}
	var found []entity.SpaceObject
	for _, o := range s.objects {
		c := o.Coord()
		if c.Quadrant != quad || c.QLoc != qloc {
			continue
		}
		if f.ExcludeTeam != 0 && o.Team() == f.ExcludeTeam {
			continue
		}
		if f.Kind != 0 && o.Kind() != f.Kind {
			continue
		}
		found = append(found, o)
	}
	return found
}

// ClosestTarget returns the nearest object of another team in from's region,
// or nil. Ties go to the object registered first.
func (s *Space) ClosestTarget(from entity.SpaceObject) entity.SpaceObject {
	c := from.Coord()
	var (
		best     entity.SpaceObject
		bestDist float64
	)
	for _, o := range s.InRegion(c.Quadrant, c.QLoc, Filter{ExcludeTeam: from.Team()}) {
		d := c.RLoc.Distance(o.Coord().RLoc)
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	return best
}

// PassTime lets every object pass h hours. It walks a snapshot so that
// objects removed along the way do not disturb the sweep.
func (s *Space) PassTime(h int) {
	if h < 0 {
		h = 0
	}
	for _, o := range s.Objects() {
		o.PassTime(h)
	}
}

func (s *Space) randomCell(quad int, qloc galaxy.Point) galaxy.Coordinate {
	return galaxy.Coordinate{
		Quadrant: quad,
		QLoc:     qloc,
		RLoc:     galaxy.Pt(s.intn(galaxy.RegionWidth), s.intn(galaxy.RegionHeight)),
	}
}

// freeCellIn picks a random unoccupied cell of a region
func (s *Space) freeCellIn(quad int, qloc galaxy.Point) (galaxy.Coordinate, error) {
	free := 0
	for x := 0; x < galaxy.RegionWidth; x++ {
		for y := 0; y < galaxy.RegionHeight; y++ {
			if s.ObjectAt(galaxy.Coordinate{Quadrant: quad, QLoc: qloc, RLoc: galaxy.Pt(x, y)}) == nil {
				free++
			}
		}
	}
	if free == 0 {
		return galaxy.Coordinate{}, fmt.Errorf("region %s: %w", qloc, ErrNoFreeCell)
	}
	for {
		c := s.randomCell(quad, qloc)
		if s.ObjectAt(c) == nil {
			return c, nil
		}
	}
}

// RandomFreeCell picks a random unoccupied cell anywhere in quad that accept
// allows. It gives up after a bounded number of attempts.
func (s *Space) RandomFreeCell(quad int, accept func(galaxy.Coordinate) bool) (galaxy.Coordinate, error) {
	const attempts = 10000
	for i := 0; i < attempts; i++ {
		qloc := galaxy.Pt(s.intn(galaxy.QuadrantWidth), s.intn(galaxy.QuadrantHeight))
		c := s.randomCell(quad, qloc)
		if s.ObjectAt(c) != nil {
			continue
		}
		if accept == nil || accept(c) {
			return c, nil
		}
	}
	return galaxy.Coordinate{}, ErrNoFreeCell
}

// CreateAsteroids places 0 to 9 asteroids in every region, never two on one cell
func (s *Space) CreateAsteroids() error {
	return s.fillRegions(MaxAsteroidsPerRegion, func(c galaxy.Coordinate) (entity.SpaceObject, error) {
		return entity.NewAsteroid(c, s.rng)
	})
}

// CreateStars places 0 or 1 star in every region on a free cell
func (s *Space) CreateStars() error {
	return s.fillRegions(MaxStarsPerRegion, func(c galaxy.Coordinate) (entity.SpaceObject, error) {
		return entity.NewStar(c)
	})
}

func (s *Space) fillRegions(limit int, build func(galaxy.Coordinate) (entity.SpaceObject, error)) error {
	for quad := 0; quad < galaxy.Quadrants; quad++ {
		for qx := 0; qx < galaxy.QuadrantWidth; qx++ {
			for qy := 0; qy < galaxy.QuadrantHeight; qy++ {
				qloc := galaxy.Pt(qx, qy)
				for i, n := 0, s.intn(limit); i < n; i++ {
					c, err := s.freeCellIn(quad, qloc)
					if err != nil {
						return err
					}
					obj, err := build(c)
					if err != nil {
						return err
					}
					if err := s.Add(obj); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// CreateBases places BasesPerQuadrant bases on free cells of every quadrant
func (s *Space) CreateBases() error {
	for quad := 0; quad < galaxy.Quadrants; quad++ {
		for i := 0; i < BasesPerQuadrant; i++ {
			c, err := s.RandomFreeCell(quad, nil)
			if err != nil {
				return err
			}
			base, err := entity.NewBase(c)
			if err != nil {
				return err
			}
			if err := s.Add(base); err != nil {
				return err
			}
		}
	}
	return nil
}
