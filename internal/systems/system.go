// Package systems models the repairable subsystems installed in machines.
//
// Every system carries a repair fraction in [0,1] where 1 is pristine and 0 is
// destroyed. Variants scale their visible capability by that fraction.
package systems

import (
	"fmt"
	"math"
)

// InvalidLevel is the name reported by a system whose level is outside its naming table
const InvalidLevel = "Error! Invalid level!"

// Kind identifies a system variant. A machine holds at most one system per kind.
type Kind int

// The declaration order is the fixed order used when iterating a machine's systems.
const (
	KindGenerator Kind = iota
	KindComputer
	KindImpulseDrive
	KindLightDrive
	KindLongRangeScanner
	KindShortRangeScanner
	KindShields
	KindLaserWeapon
	kindCount
)

var kindNames = [kindCount]string{
	KindGenerator:         "generator",
	KindComputer:          "computer",
	KindImpulseDrive:      "impulse_drive",
	KindLightDrive:        "light_drive",
	KindLongRangeScanner:  "lr_scanner",
	KindShortRangeScanner: "sr_scanner",
	KindShields:           "shields",
	KindLaserWeapon:       "laser",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns every kind in iteration order
func Kinds() []Kind {
	kinds := make([]Kind, 0, kindCount)
	for k := Kind(0); k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ParseKind is the inverse of Kind.String
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown system kind %q", s)
}

// System is implemented by every subsystem variant
type System interface {
	Kind() Kind
	Name() string
	Repair() float64
	SetRepair(r float64)
	ApplyDamage(d float64) float64
	RepairDamage(r float64) float64
}

// machineSystem holds the repair state shared by all variants
type machineSystem struct {
	repair float64
}

func newMachineSystem() machineSystem {
	return machineSystem{repair: 1.0}
}

// Repair returns the repair fraction, always in [0,1]
func (m *machineSystem) Repair() float64 {
	return m.repair
}

// SetRepair clamps r to [0,1]. Values within a millionth of a step are snapped
// so that repeated 0.01 repairs land exactly on 1.0.
func (m *machineSystem) SetRepair(r float64) {
	r = math.Round(r*1e6) / 1e6
	if r < 0 {
		r = 0
	}
	if r > 1 {
		r = 1
	}
	m.repair = r
}

// ApplyDamage lowers the repair fraction by d and returns the damage that
// could not be absorbed once the system reached zero.
func (m *machineSystem) ApplyDamage(d float64) float64 {
	if d < 0 {
		d = 0
	}
	m.repair -= d
	if m.repair < 0 {
		overflow := -m.repair
		m.repair = 0
		return overflow
	}
	return 0
}

// RepairDamage raises the repair fraction by r and returns the unused part
func (m *machineSystem) RepairDamage(r float64) float64 {
	if r < 0 {
		r = 0
	}
	m.repair += r
	if m.repair > 1 {
		remainder := m.repair - 1
		m.repair = 1
		return remainder
	}
	return 0
}

// NameValid reports whether the system's level is inside its naming table
func NameValid(s System) bool {
	return s.Name() != InvalidLevel
}

// clampInt bounds v to [lo,hi]
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
