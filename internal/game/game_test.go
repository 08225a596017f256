package game

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trek/internal/entity"
	"trek/internal/factory"
	"trek/internal/galaxy"
	"trek/internal/pilot"
)

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(Options{
		PlayerName: "Tester",
		Rand:       rand.New(rand.NewSource(seed)),
	})
	require.NoError(t, err)
	return s
}

// neighbour returns a region next to the player's and a free cell in it
func neighbour(t *testing.T, s *Session) (galaxy.Point, galaxy.Point) {
	t.Helper()
	c := s.Player().Coord()
	q := galaxy.Pt(c.QLoc.X+1, c.QLoc.Y)
	if !q.InQuadrant() {
		q = galaxy.Pt(c.QLoc.X-1, c.QLoc.Y)
	}
	for x := 0; x < galaxy.RegionWidth; x++ {
		for y := 0; y < galaxy.RegionHeight; y++ {
			dest := galaxy.Coordinate{Quadrant: c.Quadrant, QLoc: q, RLoc: galaxy.Pt(x, y)}
			if s.ObjectAt(dest) == nil {
				return q, dest.RLoc
			}
		}
	}
	t.Fatal("no free cell next door")
	return q, galaxy.Point{}
}

func TestNewSession(t *testing.T) {
	names, err := factory.DefaultNames()
	require.NoError(t, err)
	before := names.Remaining(factory.FederationShip)

	s, err := NewSession(Options{Names: names, Rand: rand.New(rand.NewSource(3))})
	require.NoError(t, err)

	assert.Equal(t, DefaultPlayerName, s.PlayerName())
	assert.Equal(t, Epoch, s.Clock())
	assert.Equal(t, int64(InitialFunds), s.Pilot().Funds())
	assert.Equal(t, pilot.PointsPerLevel, s.Pilot().Unassigned())
	assert.Equal(t, before-1, names.Remaining(factory.FederationShip))

	player := s.Player()
	assert.Equal(t, DefaultPlayerShip, player.Class())
	assert.False(t, player.AI())
	assert.Same(t, s.Pilot(), player.Pilot())
	require.NotNil(t, player.Systems().Shields())
	assert.True(t, player.Systems().Shields().On())

	objects := s.Space().Objects()
	assert.Same(t, player, objects[0])
	assert.Greater(t, len(objects), 1)

	over, _ := s.Over()
	assert.False(t, over)

	_, err = NewSession(Options{PlayerShip: "Dreadnought"})
	assert.ErrorIs(t, err, factory.ErrUnknownClass)
}

func TestPassTime(t *testing.T) {
	s := newTestSession(t, 1)

	s.PassTime(-4)
	assert.Equal(t, Epoch, s.Clock())

	s.PassTime(30)
	assert.Equal(t, Epoch.Add(30*time.Hour), s.Clock())

	require.ErrorIs(t, s.Rest(0), ErrInvalidHours)
	require.NoError(t, s.Rest(5))
	assert.Equal(t, Epoch.Add(35*time.Hour), s.Clock())
	assert.Equal(t, 5, s.Stats().Other(StatHoursRested))
}

func TestRestAtTheLimit(t *testing.T) {
	s := newTestSession(t, 1)
	player := s.Player()
	player.SetEnergy(player.EnergyMax() / 2)

	require.NoError(t, s.Rest(MaxHours))
	assert.Equal(t, Epoch.Add(MaxHours*time.Hour), s.Clock())
	assert.Equal(t, player.EnergyMax(), player.Energy())
	assert.Equal(t, player.HPMax(), player.HP())

	clock := s.Clock()
	assert.ErrorIs(t, s.Rest(MaxHours+1), ErrInvalidHours)
	assert.ErrorIs(t, s.Rest(3_000_000), ErrInvalidHours)
	assert.Equal(t, clock, s.Clock())
	assert.Equal(t, MaxHours, s.Stats().Other(StatHoursRested))

	s.PassTime(math.MaxInt)
	assert.Equal(t, clock.Add(MaxHours*time.Hour), s.Clock())
}

func TestPassTimeRepairsThePlayer(t *testing.T) {
	s := newTestSession(t, 2)
	drive := s.Player().Systems().ImpulseDrive()
	drive.SetRepair(0.5)

	require.NoError(t, s.Rest(10))
	assert.Greater(t, drive.Repair(), 0.5)
}

func TestMoveLight(t *testing.T) {
	s := newTestSession(t, 4)
	start := s.Player().Coord()
	energy := s.Player().Energy()
	q, r := neighbour(t, s)

	plan, err := s.PlanLightDrive(q)
	require.NoError(t, err)

	travel, err := s.MoveLight(q, r)
	require.NoError(t, err)
	assert.Equal(t, plan, travel)
	assert.Equal(t, galaxy.Coordinate{Quadrant: start.Quadrant, QLoc: q, RLoc: r}, s.Player().Coord())
	assert.Equal(t, Epoch.Add(time.Duration(travel.Hours)*time.Hour), s.Clock())
	assert.LessOrEqual(t, s.Player().Energy(), energy)
	assert.Equal(t, 1, s.Stats().Other(StatJumps))

	_, err = s.MoveLight(q, r)
	assert.ErrorIs(t, err, entity.ErrNotAMove)
}

func TestMoveLocal(t *testing.T) {
	s := newTestSession(t, 5)
	c := s.Player().Coord()

	var free galaxy.Point
	found := false
	for x := 0; x < galaxy.RegionWidth && !found; x++ {
		for y := 0; y < galaxy.RegionHeight && !found; y++ {
			p := galaxy.Pt(x, y)
			if s.ObjectAt(galaxy.Coordinate{Quadrant: c.Quadrant, QLoc: c.QLoc, RLoc: p}) == nil {
				free, found = p, true
			}
		}
	}
	require.True(t, found)

	require.NoError(t, s.MoveLocal(free.X, free.Y))
	assert.Equal(t, free, s.Player().Coord().RLoc)
	assert.Equal(t, Epoch, s.Clock(), "impulse moves take no time")

	err := s.MoveLocal(c.RLoc.X, 12)
	var rangeErr *galaxy.RangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestShieldsAndEnergy(t *testing.T) {
	s := newTestSession(t, 6)
	player := s.Player()
	shields := player.Systems().Shields()

	require.NoError(t, s.SetShields(false))
	assert.False(t, shields.On())
	require.NoError(t, s.SetShields(true))

	before := player.Energy() + shields.Remaining()
	moved, err := s.MaxShields()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, moved, 0)
	assert.Equal(t, before, player.Energy()+shields.Remaining())

	moved, err = s.MaxEnergy()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, moved, 0)
	assert.Equal(t, before, player.Energy()+shields.Remaining())

	assert.ErrorIs(t, s.TransferToShields(0), entity.ErrInvalidAmount)
	assert.ErrorIs(t, s.TransferToShields(player.Energy()+1), entity.ErrNotEnoughEnergy)
	assert.Equal(t, before, player.Energy()+shields.Remaining())

	player.Systems().Remove(shields.Kind())
	assert.ErrorIs(t, s.SetShields(true), entity.ErrNoShields)
	_, err = s.MaxEnergy()
	assert.ErrorIs(t, err, entity.ErrNoShields)
}

func TestLightDriveSetting(t *testing.T) {
	s := newTestSession(t, 7)

	got, err := s.SetLightDriveSetting(4)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got)

	got, err = s.SetLightDriveSetting(99)
	require.NoError(t, err)
	assert.Equal(t, 6.0, got)

	_, err = s.SetLightDriveSetting(-1)
	assert.ErrorIs(t, err, ErrInvalidSetting)
}

func TestAssignPoints(t *testing.T) {
	s := newTestSession(t, 8)

	require.NoError(t, s.AssignPoints(pilot.Piloting, 10))
	assert.Equal(t, 10, s.Pilot().Skill(pilot.Piloting))
	assert.Equal(t, pilot.PointsPerLevel-10, s.Pilot().Unassigned())

	assert.ErrorIs(t, s.AssignPoints(pilot.Weapons, 100), ErrNotEnoughPoints)
	assert.ErrorIs(t, s.AssignPoints(pilot.Weapons, 0), entity.ErrInvalidAmount)
}

func TestAddShip(t *testing.T) {
	s := newTestSession(t, 9)
	home := s.Player().Coord()

	ship, err := s.AddShip("Pirate Cutter", entity.Pirates, 0)
	require.NoError(t, err)

	assert.True(t, ship.AI())
	assert.Equal(t, entity.Pirates, ship.Team())
	assert.False(t, ship.Coord().SameRegion(home))
	assert.Equal(t, s.Pilot().Level(), ship.Pilot().Level())
	assert.Same(t, ship, s.Space().Find(ship.USI()))
	assert.Equal(t, 1, s.Stats().Other(StatShipsMet))

	neutral, err := s.AddShip("Raider Skiff", entity.Neutral, 0)
	require.NoError(t, err)
	assert.Equal(t, "No Name", neutral.Name())

	_, err = s.AddShip("Pirate Cutter", entity.Pirates, 3)
	assert.ErrorIs(t, err, ErrInvalidQuadrant)
	_, err = s.AddShip("Dreadnought", entity.Pirates, 0)
	assert.ErrorIs(t, err, factory.ErrUnknownClass)
}

func TestRefusedAddShipKeepsNames(t *testing.T) {
	s := newTestSession(t, 9)
	pirates := s.Names().Remaining(factory.PirateShip)
	objects := s.Space().Len()

	_, err := s.AddShip("No Such Class", entity.Pirates, 0)
	assert.ErrorIs(t, err, factory.ErrUnknownClass)
	_, err = s.AddShip("Pirate Cutter", entity.Pirates, galaxy.Quadrants)
	assert.ErrorIs(t, err, ErrInvalidQuadrant)
	_, err = s.AddShip("Pirate Cutter", entity.Team(99), 0)
	assert.ErrorIs(t, err, entity.ErrInvalidTeam)

	assert.Equal(t, pirates, s.Names().Remaining(factory.PirateShip))
	assert.Equal(t, objects, s.Space().Len())
	assert.Zero(t, s.Stats().Other(StatShipsMet))
}

func TestDamageObject(t *testing.T) {
	t.Run("destroying a ship rewards the player", func(t *testing.T) {
		s := newTestSession(t, 10)
		ship, err := s.AddShip("Raider Skiff", entity.Raiders, 0)
		require.NoError(t, err)
		xp := s.Pilot().Experience()

		destroyed, err := s.DamageObject(ship.USI(), 10, entity.Energy)
		require.NoError(t, err)
		assert.False(t, destroyed)

		destroyed, err = s.DamageObject(ship.USI(), 5000, entity.Projectile)
		require.NoError(t, err)
		assert.True(t, destroyed)

		assert.Nil(t, s.Space().Find(ship.USI()))
		assert.Equal(t, 1, s.Stats().Kill("Raider Skiff"))
		assert.Equal(t, xp+90, s.Pilot().Experience())
		assert.Equal(t, 90, s.Stats().Other(StatKillPoints))
	})

	t.Run("asteroids count by kind", func(t *testing.T) {
		s := newTestSession(t, 11)
		var rock entity.SpaceObject
		for _, o := range s.Space().Objects() {
			if o.Kind() == entity.KindAsteroid {
				rock = o
				break
			}
		}
		require.NotNil(t, rock)

		destroyed, err := s.DamageObject(rock.USI(), entity.AsteroidHP, entity.Energy)
		require.NoError(t, err)
		assert.True(t, destroyed)
		assert.Equal(t, 1, s.Stats().Kill("Asteroid"))
		assert.Equal(t, 1, s.Stats().TotalKills())
	})

	t.Run("bad requests", func(t *testing.T) {
		s := newTestSession(t, 12)
		_, err := s.DamageObject(-5, 10, entity.Energy)
		assert.ErrorIs(t, err, ErrUnknownObject)
		_, err = s.DamageObject(s.Player().USI(), 0, entity.Energy)
		assert.ErrorIs(t, err, ErrInvalidDamage)
		_, err = s.DamageObject(s.Player().USI(), 10, entity.Cause(9))
		assert.ErrorIs(t, err, ErrInvalidCause)
	})
}

func TestGameOver(t *testing.T) {
	s := newTestSession(t, 13)
	player := s.Player()
	require.NoError(t, s.SetShields(false))

	destroyed, err := s.DamageObject(player.USI(), player.HP(), entity.Projectile)
	require.NoError(t, err)
	require.True(t, destroyed)

	over, reason := s.Over()
	assert.True(t, over)
	assert.Equal(t, ReasonDestroyed, reason)
	assert.Equal(t, 1, s.Space().Len(), "the galaxy is cleared")

	clock := s.Clock()
	assert.ErrorIs(t, s.Rest(3), ErrGameOver)
	s.PassTime(3)
	assert.Equal(t, clock, s.Clock())
	_, err = s.MoveLight(galaxy.Pt(0, 0), galaxy.Pt(0, 0))
	assert.ErrorIs(t, err, ErrGameOver)
	_, err = s.AddShip("Pirate Cutter", entity.Pirates, 0)
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGameOverFromPassTime(t *testing.T) {
	s := newTestSession(t, 14)
	s.Player().SetHP(0)

	s.PassTime(1)
	over, reason := s.Over()
	assert.True(t, over)
	assert.Equal(t, ReasonDestroyed, reason)
}

func TestScan(t *testing.T) {
	s := newTestSession(t, 15)
	ship, err := s.AddShip("Pirate Marauder", entity.Pirates, 0)
	require.NoError(t, err)

	_, err = s.Scan(ship.USI())
	assert.ErrorIs(t, err, ErrOutOfRange)

	home := s.Player().Coord()
	var spot galaxy.Coordinate
	found := false
	for x := 0; x < galaxy.RegionWidth && !found; x++ {
		for y := 0; y < galaxy.RegionHeight && !found; y++ {
			spot = galaxy.Coordinate{Quadrant: home.Quadrant, QLoc: home.QLoc, RLoc: galaxy.Pt(x, y)}
			found = s.ObjectAt(spot) == nil
		}
	}
	require.True(t, found)
	require.NoError(t, ship.SetCoord(spot))

	report, err := s.Scan(ship.USI())
	require.NoError(t, err)
	assert.Contains(t, report, ship.Name())
	assert.Contains(t, s.Targets(), entity.SpaceObject(ship))
	assert.NotNil(t, s.ClosestTarget())

	_, err = s.Scan(-1)
	assert.ErrorIs(t, err, ErrUnknownObject)
}

func TestPlotCourse(t *testing.T) {
	s := newTestSession(t, 16)
	here := s.Player().Coord().QLoc
	target := galaxy.Pt(galaxy.QuadrantWidth-1-here.X, galaxy.QuadrantHeight-1-here.Y)

	require.NoError(t, s.RevealAll())
	course, err := s.PlotCourse(target)
	require.NoError(t, err)
	require.NotEmpty(t, course)
	assert.Equal(t, here, course[0])
	assert.Equal(t, target, course[len(course)-1])

	s.Player().Systems().Remove(s.Player().Systems().Computer().Kind())
	_, err = s.PlotCourse(target)
	assert.ErrorIs(t, err, ErrNoComputer)
}

func TestStateRoundTrip(t *testing.T) {
	s := newTestSession(t, 17)
	_, err := s.AddShip("Raider Warship", entity.Raiders, 0)
	require.NoError(t, err)
	require.NoError(t, s.Rest(4))
	require.NoError(t, s.AssignPoints(pilot.Mechanic, 5))

	st := s.State()
	restored, err := Restore(st, Options{Rand: rand.New(rand.NewSource(1))})
	require.NoError(t, err)

	assert.Equal(t, st, restored.State())
	assert.Equal(t, "Tester", restored.PlayerName())
	assert.Equal(t, 5, restored.Pilot().Skill(pilot.Mechanic))
	assert.Same(t, restored.Pilot(), restored.Player().Pilot())

	fresh, err := entity.NewAsteroid(s.Player().Coord(), nil)
	require.NoError(t, err)
	for _, rec := range st.Objects {
		assert.Greater(t, fresh.USI(), rec.USI, "restored identifiers are never handed out again")
	}

	_, err = Restore(State{}, Options{})
	assert.ErrorIs(t, err, ErrNoPlayer)
}

func TestCorruptStateKeepsNames(t *testing.T) {
	s := newTestSession(t, 17)
	_, err := s.AddShip("Pirate Cutter", entity.Pirates, 0)
	require.NoError(t, err)
	st := s.State()
	st.Objects[len(st.Objects)-1].Team = entity.Team(99)

	names, err := factory.DefaultNames()
	require.NoError(t, err)
	before := names.Record()

	_, err = Restore(st, Options{Names: names})
	assert.ErrorIs(t, err, entity.ErrInvalidTeam)
	assert.Equal(t, before, names.Record())
}

func TestStatistics(t *testing.T) {
	st := NewStatistics()
	st.AddKill("Pirate Cutter")
	st.AddKill("Pirate Cutter")
	st.AddOther(StatJumps)
	st.AddOtherN(StatJumps, -3)

	assert.Equal(t, 2, st.Kill("Pirate Cutter"))
	assert.Equal(t, 1, st.Other(StatJumps))

	kills := st.Kills()
	kills["Pirate Cutter"] = 0
	assert.Equal(t, 2, st.Kill("Pirate Cutter"), "copies do not leak")
	assert.Equal(t, []string{"Light drive jumps"}, Labels(st.Others()))
}

func TestStatus(t *testing.T) {
	s := newTestSession(t, 18)
	require.NoError(t, s.Rest(2))

	st := s.Status()
	assert.Equal(t, "Tester", st.Player)
	assert.Equal(t, Epoch.Add(2*time.Hour), st.Clock)
	assert.Equal(t, s.Player().USI(), st.Ship.USI)
	assert.Equal(t, DefaultPlayerShip, st.Ship.Class)
	assert.Equal(t, int64(InitialFunds), st.Pilot.Funds)
	assert.Equal(t, 2, st.Stats.Other[StatHoursRested])
	for _, o := range st.Region {
		assert.NotEqual(t, st.Ship.USI, o.USI, "the player is not listed as a neighbour")
	}
}
