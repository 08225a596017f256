package galaxy

import (
	"fmt"
	"math"
)

// Grid layout. Space is made of quadrants; a quadrant is a 10x10 grid of
// regions and a region is a 10x10 grid of cells.
const (
	Quadrants      = 1
	QuadrantWidth  = 10
	QuadrantHeight = 10
	RegionWidth    = 10
	RegionHeight   = 10
)

// Point is a location inside a quadrant (region address) or inside a region (cell address).
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt is shorthand for Point{x, y}
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// InQuadrant reports whether p addresses a region of a quadrant
func (p Point) InQuadrant() bool {
	return p.X >= 0 && p.X < QuadrantWidth && p.Y >= 0 && p.Y < QuadrantHeight
}

// InRegion reports whether p addresses a cell of a region
func (p Point) InRegion() bool {
	return p.X >= 0 && p.X < RegionWidth && p.Y >= 0 && p.Y < RegionHeight
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(o Point) float64 {
	dx := float64(o.X - p.X)
	dy := float64(o.Y - p.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.X, p.Y)
}

// Coordinate is the full address of a cell in space
type Coordinate struct {
	Quadrant int   `json:"quadrant"`
	QLoc     Point `json:"qloc"`
	RLoc     Point `json:"rloc"`
}

// NewCoordinate validates and builds a coordinate
func NewCoordinate(quad, qx, qy, rx, ry int) (Coordinate, error) {
	c := Coordinate{Quadrant: quad, QLoc: Pt(qx, qy), RLoc: Pt(rx, ry)}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}
	return c, nil
}

// Validate returns a *RangeError naming the first component that is out of range
func (c Coordinate) Validate() error {
	switch {
	case c.Quadrant < 0 || c.Quadrant >= Quadrants:
		return &RangeError{Field: "quadrant", Value: c.Quadrant, Limit: Quadrants}
	case c.QLoc.X < 0 || c.QLoc.X >= QuadrantWidth:
		return &RangeError{Field: "qx", Value: c.QLoc.X, Limit: QuadrantWidth}
	case c.QLoc.Y < 0 || c.QLoc.Y >= QuadrantHeight:
		return &RangeError{Field: "qy", Value: c.QLoc.Y, Limit: QuadrantHeight}
	case c.RLoc.X < 0 || c.RLoc.X >= RegionWidth:
		return &RangeError{Field: "rx", Value: c.RLoc.X, Limit: RegionWidth}
	case c.RLoc.Y < 0 || c.RLoc.Y >= RegionHeight:
		return &RangeError{Field: "ry", Value: c.RLoc.Y, Limit: RegionHeight}
	}
	return nil
}

// Valid reports whether every component is in range
func (c Coordinate) Valid() bool {
	return c.Validate() == nil
}

// SameRegion reports whether both coordinates are in the same region
func (c Coordinate) SameRegion(o Coordinate) bool {
	return c.Quadrant == o.Quadrant && c.QLoc == o.QLoc
}

// ULC combines the five components into a single ordering key.
// It is not a uniqueness constraint: several objects may share a cell.
func (c Coordinate) ULC() int64 {
	value := int64(c.RLoc.X + c.RLoc.Y*RegionWidth)
	value += int64(c.QLoc.X+c.QLoc.Y*QuadrantWidth) * 10_000
	value += int64(c.Quadrant) * 100_000_000
	return value
}

func (c Coordinate) String() string {
	return fmt.Sprintf("Q%d [%s] (%s)", c.Quadrant, c.QLoc, c.RLoc)
}

// RangeError reports a coordinate component outside of the grid
type RangeError struct {
	Field string
	Value int
	Limit int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0,%d)", e.Field, e.Value, e.Limit)
}
