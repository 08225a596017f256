package space

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trek/internal/entity"
	"trek/internal/galaxy"
)

func at(t *testing.T, qx, qy, rx, ry int) galaxy.Coordinate {
	t.Helper()
	c, err := galaxy.NewCoordinate(0, qx, qy, rx, ry)
	require.NoError(t, err)
	return c
}

func newPlayer(t *testing.T, c galaxy.Coordinate) *entity.Ship {
	t.Helper()
	ship, err := entity.NewShip("Venture", "Venture Starship", "venture.bmp", entity.Federation, 1000, c)
	require.NoError(t, err)
	ship.SetAI(false)
	return ship
}

func TestPlayerIsFirst(t *testing.T) {
	player := newPlayer(t, at(t, 4, 4, 4, 4))
	s := New(player, rand.New(rand.NewSource(1)))
	require.NoError(t, s.Generate())

	objects := s.Objects()
	require.NotEmpty(t, objects)
	assert.Same(t, player, objects[0])
	assert.Same(t, player, s.Player())

	replacement := newPlayer(t, at(t, 1, 1, 1, 1))
	s.SetPlayer(replacement)
	assert.Same(t, replacement, s.Objects()[0])
}

func TestGenerateNeverStacksObjects(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		player := newPlayer(t, at(t, 0, 0, 0, 0))
		s := New(player, rand.New(rand.NewSource(seed)))
		require.NoError(t, s.Generate())

		seen := make(map[galaxy.Coordinate]bool)
		asteroids := make(map[galaxy.Point]int)
		stars := make(map[galaxy.Point]int)
		bases := 0
		for _, obj := range s.Objects() {
			c := obj.Coord()
			require.False(t, seen[c], "seed %d: two objects at %s", seed, c)
			seen[c] = true

			switch obj.Kind() {
			case entity.KindAsteroid:
				asteroids[c.QLoc]++
			case entity.KindStar:
				stars[c.QLoc]++
			case entity.KindBase:
				bases++
			}
		}

		assert.Equal(t, BasesPerQuadrant*galaxy.Quadrants, bases, "seed %d", seed)
		for qloc, n := range asteroids {
			assert.Less(t, n, MaxAsteroidsPerRegion, "seed %d region %s", seed, qloc)
		}
		for qloc, n := range stars {
			assert.Less(t, n, MaxStarsPerRegion, "seed %d region %s", seed, qloc)
		}
	}
}

func TestRemove(t *testing.T) {
	player := newPlayer(t, at(t, 0, 0, 0, 0))
	s := New(player, nil)
	star, err := entity.NewStar(at(t, 0, 0, 1, 1))
	require.NoError(t, err)
	require.NoError(t, s.Add(star))
	assert.Error(t, s.Add(star), "duplicates are rejected")

	require.NoError(t, s.Remove(star))
	assert.Nil(t, s.Find(star.USI()))
	assert.ErrorIs(t, s.Remove(star), ErrNotInRegistry)
	assert.ErrorIs(t, s.Remove(player), ErrPlayerShip)
	assert.Equal(t, 1, s.Len())
}

func TestRemoveAllKeepsPlayer(t *testing.T) {
	player := newPlayer(t, at(t, 0, 0, 0, 0))
	s := New(player, rand.New(rand.NewSource(3)))
	require.NoError(t, s.Generate())
	require.Greater(t, s.Len(), 1)

	s.RemoveAll()
	assert.Equal(t, 1, s.Len())
	assert.Same(t, player, s.Objects()[0])
}

func TestInRegionAndClosestTarget(t *testing.T) {
	player := newPlayer(t, at(t, 2, 2, 0, 0))
	s := New(player, nil)

	friend, err := entity.NewBase(at(t, 2, 2, 1, 0))
	require.NoError(t, err)
	near, err := entity.NewAsteroid(at(t, 2, 2, 3, 3), nil)
	require.NoError(t, err)
	far, err := entity.NewStar(at(t, 2, 2, 9, 9))
	require.NoError(t, err)
	elsewhere, err := entity.NewStar(at(t, 2, 3, 0, 1))
	require.NoError(t, err)
	for _, obj := range []entity.SpaceObject{friend, far, near, elsewhere} {
		require.NoError(t, s.Add(obj))
	}

	all := s.InRegion(0, galaxy.Pt(2, 2), Filter{})
	assert.Len(t, all, 4)

	stars := s.InRegion(0, galaxy.Pt(2, 2), Filter{Kind: entity.KindStar})
	require.Len(t, stars, 1)
	assert.Same(t, far, stars[0])

	others := s.InRegion(0, galaxy.Pt(2, 2), Filter{ExcludeTeam: entity.Federation})
	assert.Len(t, others, 2)

	assert.Same(t, near, s.ClosestTarget(player))
	assert.Nil(t, s.InRegion(0, galaxy.Pt(10, 0), Filter{}))

	assert.Same(t, friend, s.ObjectAt(at(t, 2, 2, 1, 0)))
	assert.Nil(t, s.ObjectAt(at(t, 2, 2, 5, 5)))
}

// saboteur removes a victim from the registry when time passes
type saboteur struct {
	*entity.Star
	space  *Space
	victim entity.SpaceObject
}

func (s *saboteur) PassTime(int) {
	_ = s.space.Remove(s.victim)
}

// counter counts how often time passes for it
type counter struct {
	*entity.Star
	calls int
}

func (c *counter) PassTime(int) { c.calls++ }

func TestPassTimeSweepsASnapshot(t *testing.T) {
	player := newPlayer(t, at(t, 0, 0, 0, 0))
	s := New(player, nil)

	victimStar, err := entity.NewStar(at(t, 0, 0, 2, 2))
	require.NoError(t, err)
	victim := &counter{Star: victimStar}

	saboStar, err := entity.NewStar(at(t, 0, 0, 1, 1))
	require.NoError(t, err)
	sabo := &saboteur{Star: saboStar, space: s, victim: victim}

	require.NoError(t, s.Add(sabo))
	require.NoError(t, s.Add(victim))

	s.PassTime(3)

	assert.Equal(t, 1, victim.calls, "objects removed mid sweep still get their turn")
	assert.Nil(t, s.Find(victim.USI()))
	assert.Equal(t, 2, s.Len())
}

func TestRandomFreeCell(t *testing.T) {
	player := newPlayer(t, at(t, 0, 0, 0, 0))
	s := New(player, rand.New(rand.NewSource(9)))

	c, err := s.RandomFreeCell(0, func(c galaxy.Coordinate) bool {
		return c.QLoc == galaxy.Pt(7, 7)
	})
	require.NoError(t, err)
	assert.Equal(t, galaxy.Pt(7, 7), c.QLoc)
	assert.Nil(t, s.ObjectAt(c))

	_, err = s.RandomFreeCell(0, func(galaxy.Coordinate) bool { return false })
	assert.ErrorIs(t, err, ErrNoFreeCell)
}
