// Package factory builds ships from the ship class catalog and hands out
// names from the name pools.
package factory

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"trek/internal/entity"
	"trek/internal/galaxy"
	"trek/internal/pilot"
	"trek/internal/systems"
)

//go:embed data/ships.yaml
var defaultShips []byte

// ImagePrefix is prepended to every class image
const ImagePrefix = "/images/ships/"

// ErrUnknownClass is returned for a class name missing from the catalog
var ErrUnknownClass = errors.New("unknown ship class")

// DataError reports a malformed catalog entry
type DataError struct {
	Row    int
	Class  string
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("ship data row %d: %s %s", e.Row, e.Field, e.Reason)
	}
	return fmt.Sprintf("ship data row %d (%s): %s %s", e.Row, e.Class, e.Field, e.Reason)
}

// ShipClass is the fixed stat block of one class of ship
type ShipClass struct {
	Name          string  `yaml:"class"`
	Image         string  `yaml:"image"`
	MaxEnergy     int     `yaml:"max_energy"`
	Dodge         int     `yaml:"dodge"`
	HitPoints     int     `yaml:"hitpoints"`
	Repair        float64 `yaml:"repair"`
	Computer      int     `yaml:"computer"`
	Generator     int     `yaml:"generator"`
	LightDrive    float64 `yaml:"light_drive"`
	EnergyWeapon  string  `yaml:"energy_weapon"`
	LauncherType  string  `yaml:"launcher_type"`
	LauncherTubes int     `yaml:"launcher_tubes"`
	LauncherLoad  int     `yaml:"launcher_load"`
	LRScanner     int     `yaml:"lr_scanner"`
	SRScanner     int     `yaml:"sr_scanner"`
	ShieldLevel   int     `yaml:"shield_level"`
	ShieldEnergy  int     `yaml:"shield_energy"`
	Shuttle       string  `yaml:"shuttle"`
	Teleporter    string  `yaml:"teleporter"`
	Points        int     `yaml:"points"`
}

// Lasers returns the laser count named by the energy weapon, 0 for none
func (c ShipClass) Lasers() int {
	switch strings.ToLower(strings.TrimSpace(c.EnergyWeapon)) {
	case "single laser":
		return 1
	case "dual laser":
		return 2
	case "triple laser":
		return 3
	case "quad laser":
		return 4
	case "hyper laser":
		return 5
	}
	return 0
}

func (c ShipClass) validate(row int) error {
	bad := func(field, reason string) error {
		return &DataError{Row: row, Class: c.Name, Field: field, Reason: reason}
	}
	switch {
	case strings.TrimSpace(c.Name) == "":
		return bad("class", "is empty")
	case c.Image == "":
		return bad("image", "is empty")
	case c.MaxEnergy < 1:
		return bad("max_energy", "must be at least 1")
	case c.Dodge < 0:
		return bad("dodge", "must not be negative")
	case c.HitPoints < 1 || c.HitPoints > entity.MaxHP:
		return bad("hitpoints", fmt.Sprintf("must be in [1,%d]", entity.MaxHP))
	case c.Repair < 0:
		return bad("repair", "must not be negative")
	case c.Computer < 1 || c.Computer > systems.MaxComputerLevel:
		return bad("computer", fmt.Sprintf("must be in [1,%d]", systems.MaxComputerLevel))
	case c.Generator < 1 || c.Generator > systems.MaxGeneratorOutput:
		return bad("generator", fmt.Sprintf("must be in [1,%d]", systems.MaxGeneratorOutput))
	case c.LightDrive < systems.MinLightDriveSpeed:
		return bad("light_drive", "must be at least 1")
	case c.LRScanner < 1 || c.LRScanner > systems.MaxScannerLevel:
		return bad("lr_scanner", fmt.Sprintf("must be in [1,%d]", systems.MaxScannerLevel))
	case c.SRScanner < 1 || c.SRScanner > systems.MaxScannerLevel:
		return bad("sr_scanner", fmt.Sprintf("must be in [1,%d]", systems.MaxScannerLevel))
	case c.ShieldLevel < 0 || c.ShieldLevel > systems.MaxShieldLevel:
		return bad("shield_level", fmt.Sprintf("must be in [0,%d]", systems.MaxShieldLevel))
	case c.ShieldLevel > 0 && c.ShieldEnergy < 1:
		return bad("shield_energy", "must be at least 1 when the class has shields")
	case c.LauncherTubes < 0 || c.LauncherLoad < 0:
		return bad("launcher", "counts must not be negative")
	case c.Points < 0:
		return bad("points", "must not be negative")
	}
	return nil
}

type catalogFile struct {
	Ships []ShipClass `yaml:"ships"`
}

// Catalog is the read-only table of ship classes
type Catalog struct {
	classes []ShipClass
	byName  map[string]int
}

// LoadCatalog parses and validates YAML ship data. Any bad entry fails the whole load.
func LoadCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse ship data: %w", err)
	}
	return NewCatalog(file.Ships)
}

// NewCatalog validates classes and indexes them by name
func NewCatalog(classes []ShipClass) (*Catalog, error) {
	if len(classes) == 0 {
		return nil, &DataError{Field: "ships", Reason: "list is empty"}
	}
	c := &Catalog{
		classes: make([]ShipClass, 0, len(classes)),
		byName:  make(map[string]int, len(classes)),
	}
	for i, class := range classes {
		row := i + 1
		if err := class.validate(row); err != nil {
			return nil, err
		}
		if _, dup := c.byName[class.Name]; dup {
			return nil, &DataError{Row: row, Class: class.Name, Field: "class", Reason: "is duplicated"}
		}
		c.byName[class.Name] = len(c.classes)
		c.classes = append(c.classes, class)
	}
	return c, nil
}

// LoadCatalogFile reads ship data from path
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ship data: %w", err)
	}
	return LoadCatalog(data)
}

// DefaultCatalog returns the catalog built into the binary
func DefaultCatalog() (*Catalog, error) {
	return LoadCatalog(defaultShips)
}

// EncodeCatalog renders classes in the catalog YAML format
func EncodeCatalog(classes []ShipClass) ([]byte, error) {
	return yaml.Marshal(catalogFile{Ships: classes})
}

// Classes returns the class names sorted alphabetically
func (c *Catalog) Classes() []string {
	names := make([]string, 0, len(c.classes))
	for _, class := range c.classes {
		names = append(names, class.Name)
	}
	sort.Strings(names)
	return names
}

// Class looks up a class by name
func (c *Catalog) Class(name string) (ShipClass, error) {
	i, ok := c.byName[name]
	if !ok {
		return ShipClass{}, fmt.Errorf("%w: %q", ErrUnknownClass, name)
	}
	return c.classes[i], nil
}

// ShipSpec describes the ship to build
type ShipSpec struct {
	Class string
	Name  string
	Team  entity.Team
	AI    bool
	// Level is the level of the fresh pilot created when Pilot is nil
	Level int
	Pilot *pilot.Pilot
	Coord galaxy.Coordinate
	Rand  *rand.Rand
}

// CreateShip builds a fully equipped ship of the requested class
func (c *Catalog) CreateShip(spec ShipSpec) (*entity.Ship, error) {
	class, err := c.Class(spec.Class)
	if err != nil {
		return nil, err
	}

	ship, err := entity.NewShip(spec.Name, class.Name, ImagePrefix+class.Image, spec.Team, class.HitPoints, spec.Coord)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", class.Name, err)
	}

	p := spec.Pilot
	if p == nil {
		p = pilot.NewAtLevel(spec.AI, spec.Level, 0)
	}

	ship.SetAI(spec.AI)
	ship.SetEnergyMax(class.MaxEnergy)
	ship.SetEnergy(class.MaxEnergy)
	ship.SetRepairPoints(class.Repair / 100)
	ship.SetDodge(class.Dodge)
	ship.SetPointValue(class.Points)
	ship.SetPilot(p)
	if spec.Rand != nil {
		ship.SetRand(spec.Rand)
	}

	ship.Install(systems.NewGenerator(class.Generator))
	ship.Install(systems.NewComputer(class.Computer))
	ship.Install(systems.NewImpulseDrive())
	ship.Install(systems.NewLightDrive(class.LightDrive))
	ship.Install(systems.NewLongRangeScanner(class.LRScanner))
	ship.Install(systems.NewShortRangeScanner(class.SRScanner))
	if class.ShieldLevel > 0 {
		ship.Install(systems.NewShields(class.ShieldLevel, class.ShieldEnergy))
	}
	if n := class.Lasers(); n > 0 {
		ship.Install(systems.NewLaserWeapon(n))
	}
	return ship, nil
}
