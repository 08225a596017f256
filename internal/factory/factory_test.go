package factory

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trek/internal/entity"
	"trek/internal/galaxy"
	"trek/internal/pilot"
	"trek/internal/systems"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	classes := catalog.Classes()
	assert.Contains(t, classes, "Venture Starship")
	assert.IsNonDecreasing(t, classes)

	_, err = catalog.Class("Dreadnought")
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestCreateShip(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)
	at, err := galaxy.NewCoordinate(0, 3, 3, 4, 4)
	require.NoError(t, err)

	t.Run("player ship", func(t *testing.T) {
		p := pilot.New(false, 10000)
		ship, err := catalog.CreateShip(ShipSpec{
			Class: "Venture Starship",
			Name:  "Endeavour",
			Team:  entity.Federation,
			Pilot: p,
			Coord: at,
		})
		require.NoError(t, err)

		assert.Equal(t, "Venture Starship", ship.Class())
		assert.Equal(t, "/images/ships/venture.bmp", ship.Image())
		assert.False(t, ship.AI())
		assert.Same(t, p, ship.Pilot())
		assert.Equal(t, 5000, ship.Energy())
		assert.Equal(t, 1000, ship.HPMax())
		assert.InDelta(t, 0.25, ship.BaseRepairPoints(), 1e-9)
		assert.Equal(t, 500, ship.PointValue())

		set := ship.Systems()
		require.NotNil(t, set.Shields())
		assert.Equal(t, 3, set.Shields().Level())
		assert.Equal(t, 3000, set.Shields().Remaining())
		assert.Equal(t, 6.0, set.LightDrive().Max())
		assert.Equal(t, 2, set.LaserWeapon().Count())
		assert.Equal(t, 8, set.Len())
	})

	t.Run("npc without shields gets a fresh pilot", func(t *testing.T) {
		ship, err := catalog.CreateShip(ShipSpec{
			Class: "Raider Skiff",
			Name:  "Ruin",
			Team:  entity.Raiders,
			AI:    true,
			Level: 3,
			Coord: at,
			Rand:  rand.New(rand.NewSource(5)),
		})
		require.NoError(t, err)

		assert.Nil(t, ship.Systems().Shields())
		assert.Nil(t, ship.Systems().LaserWeapon())
		require.NotNil(t, ship.Pilot())
		assert.Equal(t, 3, ship.Pilot().Level())
		assert.Equal(t, 15, ship.Pilot().Skill(pilot.Piloting))
		assert.Equal(t, 35+15, ship.Dodge())
	})

	t.Run("errors", func(t *testing.T) {
		_, err := catalog.CreateShip(ShipSpec{Class: "Nope", Team: entity.Federation, Coord: at})
		assert.ErrorIs(t, err, ErrUnknownClass)

		_, err = catalog.CreateShip(ShipSpec{Class: "Raider Skiff", Team: entity.Team(0), Coord: at})
		assert.ErrorIs(t, err, entity.ErrInvalidTeam)
	})
}

func TestCatalogValidation(t *testing.T) {
	good := ShipClass{
		Name: "Tug", Image: "tug.bmp", MaxEnergy: 10, HitPoints: 10, Computer: 1,
		Generator: 1, LightDrive: 1, LRScanner: 1, SRScanner: 1,
	}
	_, err := NewCatalog([]ShipClass{good})
	require.NoError(t, err)

	tests := []struct {
		field  string
		mutate func(c *ShipClass)
	}{
		{"hitpoints", func(c *ShipClass) { c.HitPoints = entity.MaxHP + 1 }},
		{"computer", func(c *ShipClass) { c.Computer = 0 }},
		{"light_drive", func(c *ShipClass) { c.LightDrive = 0.5 }},
		{"shield_energy", func(c *ShipClass) { c.ShieldLevel = 2 }},
		{"class", func(c *ShipClass) { c.Name = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			bad := good
			tt.mutate(&bad)
			_, err := NewCatalog([]ShipClass{bad})

			var dataErr *DataError
			require.ErrorAs(t, err, &dataErr)
			assert.Equal(t, tt.field, dataErr.Field)
			assert.Equal(t, 1, dataErr.Row)
		})
	}

	_, err = NewCatalog([]ShipClass{good, good})
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, 2, dataErr.Row)

	_, err = LoadCatalog([]byte("ships: [oops"))
	assert.Error(t, err)
}

func TestCatalogYAMLRoundTrip(t *testing.T) {
	catalog, err := DefaultCatalog()
	require.NoError(t, err)

	var classes []ShipClass
	for _, name := range catalog.Classes() {
		c, err := catalog.Class(name)
		require.NoError(t, err)
		classes = append(classes, c)
	}

	data, err := EncodeCatalog(classes)
	require.NoError(t, err)
	again, err := LoadCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, catalog.Classes(), again.Classes())
}

func TestParseShipCSV(t *testing.T) {
	table := strings.Join([]string{
		"Ship Class,Image,Max Energy,Dodge,Hit Points,Repair,Computer,Generator,Light Drive,Energy Weapon,Launcher,Tubes,Load,LR,SR,Shield Level,Shield Energy,Shuttle,Teleporter,Points",
		"Tug,tug.bmp,900,3,150,12.5,1,80,2.5,Single Laser,None,0,0,1,1,1,200,no,no,40",
		"",
	}, "\n")

	classes, err := ParseShipCSV(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, classes, 1)

	tug := classes[0]
	assert.Equal(t, "Tug", tug.Name)
	assert.Equal(t, 12.5, tug.Repair)
	assert.Equal(t, 2.5, tug.LightDrive)
	assert.Equal(t, 1, tug.Lasers())
	assert.Equal(t, 40, tug.Points)

	_, err = ParseShipCSV(strings.NewReader("Tug,tug.bmp,lots"))
	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "row", dataErr.Field)

	_, err = ParseShipCSV(strings.NewReader("Tug,tug.bmp,lots,3,150,12.5,1,80,2.5,Single Laser,None,0,0,1,1,1,200,no,no,40"))
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "max_energy", dataErr.Field)
}

func TestNames(t *testing.T) {
	data := []byte(`
federation_person: [Ann]
federation_ship: [Alpha, Beta]
pirate_ship: [Hook]
raider_ship: [Ruin]
`)
	names, err := LoadNames(data)
	require.NoError(t, err)
	names.SetRand(rand.New(rand.NewSource(1)))

	first, err := names.Next(FederationShip)
	require.NoError(t, err)
	second, err := names.Next(FederationShip)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alpha", "Beta"}, []string{first, second})

	third, err := names.Next(FederationShip)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(third, " II"), third)
	assert.Equal(t, 1, names.Repeats(FederationShip))

	names.Next(FederationShip)
	fifth, err := names.Next(FederationShip)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(fifth, " III"), fifth)

	_, err = names.Next(Category("klingon_ship"))
	assert.Error(t, err)

	_, err = LoadNames([]byte("federation_person: [Ann]"))
	assert.Error(t, err, "missing categories are rejected")
}

func TestNamesRecord(t *testing.T) {
	names, err := DefaultNames()
	require.NoError(t, err)
	names.SetRand(rand.New(rand.NewSource(3)))
	for i := 0; i < 12; i++ {
		_, err := names.Next(PirateShip)
		require.NoError(t, err)
	}

	fresh, err := DefaultNames()
	require.NoError(t, err)
	require.NoError(t, fresh.Restore(names.Record()))

	assert.Equal(t, names.Remaining(PirateShip), fresh.Remaining(PirateShip))
	assert.Equal(t, 1, fresh.Repeats(PirateShip))
	assert.Equal(t, names.Record(), fresh.Record())
}

func TestShipCategory(t *testing.T) {
	cat, err := ShipCategory(entity.Pirates)
	require.NoError(t, err)
	assert.Equal(t, PirateShip, cat)

	_, err = ShipCategory(entity.Neutral)
	assert.Error(t, err)
}

func TestRoman(t *testing.T) {
	tests := map[int]string{1: "I", 2: "II", 4: "IV", 9: "IX", 14: "XIV", 40: "XL", 1994: "MCMXCIV", 0: ""}
	for n, want := range tests {
		assert.Equal(t, want, Roman(n), "n=%d", n)
	}
}

func TestLaserNames(t *testing.T) {
	for n := 1; n <= 5; n++ {
		name := systems.NewLaserWeapon(n).Name()
		assert.Equal(t, n, ShipClass{EnergyWeapon: name}.Lasers(), name)
	}
	assert.Equal(t, 0, ShipClass{EnergyWeapon: "None"}.Lasers())
}
