package systems

import (
	"errors"
	"math"
	"math/rand"

	"github.com/dominikbraun/graph"

	"trek/internal/galaxy"
)

// MaxComputerLevel is the most advanced computer available
const MaxComputerLevel = 5

// regionsPerQuadrant is the size of a quadrant's chart
const regionsPerQuadrant = galaxy.QuadrantWidth * galaxy.QuadrantHeight

// ErrNoCourse is returned when no charted route joins two regions
var ErrNoCourse = errors.New("no charted course to that region")

var computerNames = map[int]string{
	1: "Intel Computer",
	2: "AMD Computer",
	3: "Sparc Computer",
	4: "Power4 Computer",
	5: "Power5 Computer",
}

// Computer keeps the chart of known regions and lowers light drive costs
type Computer struct {
	machineSystem
	level int
	known [galaxy.Quadrants][regionsPerQuadrant]bool
	rng   *rand.Rand
}

// NewComputer creates a computer with an empty chart
func NewComputer(level int) *Computer {
	c := &Computer{machineSystem: newMachineSystem()}
	c.SetLevel(level)
	return c
}

func (c *Computer) Kind() Kind { return KindComputer }
func (c *Computer) Level() int { return c.level }

func (c *Computer) Name() string {
	if name, ok := computerNames[c.level]; ok {
		return name
	}
	return InvalidLevel
}

// SetLevel clamps the level to [0, MaxComputerLevel]
func (c *Computer) SetLevel(level int) {
	c.level = clampInt(level, 0, MaxComputerLevel)
}

// SetRand sets the random source used for memory loss; nil uses the global source
func (c *Computer) SetRand(rng *rand.Rand) {
	c.rng = rng
}

func (c *Computer) intn(n int) int {
	if c.rng != nil {
		return c.rng.Intn(n)
	}
	return rand.Intn(n)
}

// ApplyDamage on a computer below level 2 also wipes ceil(100 x d) random
// chart cells, so a bigger hit loses more memory.
func (c *Computer) ApplyDamage(d float64) float64 {
	if d < 0 {
		d = 0
	}
	if c.level < 2 {
		lost := int(math.Ceil(d*100 - 1e-9))
		for i := 0; i < lost; i++ {
			quad := c.intn(galaxy.Quadrants)
			c.known[quad][c.intn(regionsPerQuadrant)] = false
		}
	}
	return c.machineSystem.ApplyDamage(d)
}

// Saved is the fraction of light drive energy saved by the computer
func (c *Computer) Saved() float64 {
	if c.level < 3 {
		return 0
	}
	return float64(c.level) * 0.1
}

func chartIndex(p galaxy.Point) int {
	return p.X + p.Y*galaxy.QuadrantWidth
}

// Known reports whether a region has been charted. Addresses off the grid are never known.
func (c *Computer) Known(quad int, p galaxy.Point) bool {
	if quad < 0 || quad >= galaxy.Quadrants || !p.InQuadrant() {
		return false
	}
	return c.known[quad][chartIndex(p)]
}

// SetKnown charts or forgets a region; addresses off the grid are ignored
func (c *Computer) SetKnown(quad int, p galaxy.Point, known bool) {
	if quad < 0 || quad >= galaxy.Quadrants || !p.InQuadrant() {
		return
	}
	c.known[quad][chartIndex(p)] = known
}

// SetAll charts or forgets every region of every quadrant
func (c *Computer) SetAll(known bool) {
	for q := range c.known {
		for i := range c.known[q] {
			c.known[q][i] = known
		}
	}
}

// KnownCount returns the number of charted regions in a quadrant
func (c *Computer) KnownCount(quad int) int {
	if quad < 0 || quad >= galaxy.Quadrants {
		return 0
	}
	n := 0
	for _, k := range c.known[quad] {
		if k {
			n++
		}
	}
	return n
}

// PlotCourse finds the shortest chain of adjacent charted regions between two
// regions of a quadrant. The endpoints do not need to be charted.
func (c *Computer) PlotCourse(quad int, from, to galaxy.Point) ([]galaxy.Point, error) {
	if quad < 0 || quad >= galaxy.Quadrants {
		return nil, &galaxy.RangeError{Field: "quadrant", Value: quad, Limit: galaxy.Quadrants}
	}
	if !from.InQuadrant() || !to.InQuadrant() {
		return nil, ErrNoCourse
	}
	if from == to {
		return []galaxy.Point{from}, nil
	}

	g := graph.New(chartIndex, graph.Weighted())
	for i, known := range c.known[quad] {
		p := galaxy.Pt(i%galaxy.QuadrantWidth, i/galaxy.QuadrantWidth)
		if known || p == from || p == to {
			_ = g.AddVertex(p)
		}
	}

	adjacency, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	for key := range adjacency {
		p := galaxy.Pt(key%galaxy.QuadrantWidth, key/galaxy.QuadrantWidth)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				n := galaxy.Pt(p.X+dx, p.Y+dy)
				if n == p || !n.InQuadrant() {
					continue
				}
				if _, ok := adjacency[chartIndex(n)]; !ok {
					continue
				}
				err := g.AddEdge(key, chartIndex(n), graph.EdgeWeight(1))
				if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
					return nil, err
				}
			}
		}
	}

	keys, err := graph.ShortestPath(g, chartIndex(from), chartIndex(to))
	if err != nil {
		if errors.Is(err, graph.ErrTargetNotReachable) {
			return nil, ErrNoCourse
		}
		return nil, err
	}

	course := make([]galaxy.Point, 0, len(keys))
	for _, key := range keys {
		course = append(course, galaxy.Pt(key%galaxy.QuadrantWidth, key/galaxy.QuadrantWidth))
	}
	return course, nil
}
