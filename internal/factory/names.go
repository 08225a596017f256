package factory

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"trek/internal/entity"
)

//go:embed data/names.yaml
var defaultNames []byte

// Category selects a name pool
type Category string

const (
	FederationPerson Category = "federation_person"
	FederationShip   Category = "federation_ship"
	PirateShip       Category = "pirate_ship"
	RaiderShip       Category = "raider_ship"
)

// Categories lists every pool in a fixed order
var Categories = []Category{FederationPerson, FederationShip, PirateShip, RaiderShip}

// ShipCategory returns the ship name pool for a team
func ShipCategory(team entity.Team) (Category, error) {
	switch team {
	case entity.Federation:
		return FederationShip, nil
	case entity.Pirates:
		return PirateShip, nil
	case entity.Raiders:
		return RaiderShip, nil
	}
	return "", fmt.Errorf("no ship names for team %s", team)
}

// Names hands out names without repeats until a pool runs dry. A dry pool is
// refilled from the source list and later names carry a Roman numeral, "II"
// on the first refill, "III" on the next and so on.
type Names struct {
	source  map[Category][]string
	pools   map[Category][]string
	repeats map[Category]int
	rng     *rand.Rand
}

// LoadNames parses YAML name lists keyed by category. Every category must
// have at least one name.
func LoadNames(data []byte) (*Names, error) {
	var lists map[Category][]string
	if err := yaml.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("parse name data: %w", err)
	}

	n := &Names{
		source:  make(map[Category][]string, len(Categories)),
		pools:   make(map[Category][]string, len(Categories)),
		repeats: make(map[Category]int, len(Categories)),
	}
	for _, cat := range Categories {
		var names []string
		for _, name := range lists[cat] {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		if len(names) == 0 {
			return nil, fmt.Errorf("name data: category %s is empty", cat)
		}
		n.source[cat] = names
		n.pools[cat] = append([]string(nil), names...)
		n.repeats[cat] = 0
	}
	return n, nil
}

// LoadNamesFile reads name lists from path
func LoadNamesFile(path string) (*Names, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read name data: %w", err)
	}
	return LoadNames(data)
}

// DefaultNames returns the name lists built into the binary
func DefaultNames() (*Names, error) {
	return LoadNames(defaultNames)
}

// SetRand sets the random source used to pick names
func (n *Names) SetRand(rng *rand.Rand) {
	n.rng = rng
}

func (n *Names) intn(k int) int {
	if n.rng != nil {
		return n.rng.Intn(k)
	}
	return rand.Intn(k)
}

// Next takes a random name from the pool of cat
func (n *Names) Next(cat Category) (string, error) {
	if _, ok := n.source[cat]; !ok {
		return "", fmt.Errorf("unknown name category %q", cat)
	}
	if len(n.pools[cat]) == 0 {
		n.pools[cat] = append([]string(nil), n.source[cat]...)
		n.repeats[cat]++
	}

	pool := n.pools[cat]
	i := n.intn(len(pool))
	name := pool[i]
	n.pools[cat] = append(pool[:i], pool[i+1:]...)

	if r := n.repeats[cat]; r > 0 {
		name += " " + Roman(r+1)
	}
	return name, nil
}

// Remaining returns how many names are left in the current pass of cat
func (n *Names) Remaining(cat Category) int {
	return len(n.pools[cat])
}

// Repeats returns how often the pool of cat has been refilled
func (n *Names) Repeats(cat Category) int {
	return n.repeats[cat]
}

// NamesRecord is the persisted state of the pools
type NamesRecord struct {
	Pools   map[Category][]string `json:"pools"`
	Repeats map[Category]int      `json:"repeats"`
}

func (n *Names) Record() NamesRecord {
	rec := NamesRecord{
		Pools:   make(map[Category][]string, len(n.pools)),
		Repeats: make(map[Category]int, len(n.repeats)),
	}
	for cat, pool := range n.pools {
		rec.Pools[cat] = append([]string{}, pool...)
	}
	for cat, r := range n.repeats {
		rec.Repeats[cat] = r
	}
	return rec
}

// Restore replaces the pool state with a saved one. Categories missing from
// the record keep a full pool.
func (n *Names) Restore(rec NamesRecord) error {
	for cat := range rec.Pools {
		if _, ok := n.source[cat]; !ok {
			return fmt.Errorf("unknown name category %q", cat)
		}
	}
	for _, cat := range Categories {
		if pool, ok := rec.Pools[cat]; ok {
			n.pools[cat] = append([]string(nil), pool...)
		} else {
			n.pools[cat] = append([]string(nil), n.source[cat]...)
		}
		n.repeats[cat] = max(rec.Repeats[cat], 0)
	}
	return nil
}

var romanTable = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// Roman formats n as a Roman numeral. Values below 1 give an empty string.
func Roman(n int) string {
	var b strings.Builder
	for _, r := range romanTable {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}
