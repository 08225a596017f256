package entity

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"trek/internal/galaxy"
	"trek/internal/pilot"
	"trek/internal/systems"
)

// Cause is the kind of weapon that dealt damage
type Cause int

const (
	Energy Cause = iota + 1
	Ion
	Projectile
)

// IonMultiplier scales ion damage before it is spread over systems
const IonMultiplier = 10

func (c Cause) String() string {
	switch c {
	case Energy:
		return "energy"
	case Ion:
		return "ion"
	case Projectile:
		return "projectile"
	}
	return fmt.Sprintf("cause(%d)", int(c))
}

// ParseCause is the inverse of Cause.String
func ParseCause(s string) (Cause, error) {
	for _, c := range []Cause{Energy, Ion, Projectile} {
		if strings.EqualFold(c.String(), s) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown damage cause %q", s)
}

// lot is the chunk of damage applied to one randomly chosen system
func (c Cause) lot() int {
	if c == Projectile {
		return 1
	}
	return 25
}

var (
	ErrNoShields             = errors.New("no shields installed")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrNotEnoughEnergy       = errors.New("not enough energy")
	ErrNotEnoughShieldEnergy = errors.New("not enough shield energy")
)

// Machine is an object that carries systems and energy
type Machine struct {
	Object
	systems      systems.Set
	ai           bool
	pilot        *pilot.Pilot
	energy       int
	energyMax    int
	dodge        int
	repairPoints float64
	pointValue   int
	rng          *rand.Rand
}

func newMachine(obj Object) Machine {
	return Machine{
		Object:     obj,
		ai:         true,
		energy:     1,
		energyMax:  1,
		pointValue: 1,
	}
}

func (m *Machine) Systems() *systems.Set { return &m.systems }
func (m *Machine) AI() bool              { return m.ai }
func (m *Machine) SetAI(ai bool)         { m.ai = ai }
func (m *Machine) Pilot() *pilot.Pilot   { return m.pilot }
func (m *Machine) SetPilot(p *pilot.Pilot) {
	m.pilot = p
}
func (m *Machine) Energy() int     { return m.energy }
func (m *Machine) EnergyMax() int  { return m.energyMax }
func (m *Machine) PointValue() int { return m.pointValue }

// Install adds a system, replacing any system of the same kind
func (m *Machine) Install(sys systems.System) {
	m.systems.Put(sys)
	if m.rng != nil {
		m.systems.SetRand(m.rng)
	}
}

// SetRand sets the random source for system damage and computer memory loss
func (m *Machine) SetRand(rng *rand.Rand) {
	m.rng = rng
	m.systems.SetRand(rng)
}

func (m *Machine) intn(n int) int {
	if m.rng != nil {
		return m.rng.Intn(n)
	}
	return rand.Intn(n)
}

// SetEnergyMax sets the main energy capacity, minimum 1
func (m *Machine) SetEnergyMax(e int) {
	if e < 1 {
		e = 1
	}
	m.energyMax = e
	if m.energy > e {
		m.energy = e
	}
}

// SetEnergy clamps e to [0, max]
func (m *Machine) SetEnergy(e int) {
	m.energy = clamp(e, 0, m.energyMax)
}

// AddEnergy charges main energy and returns the overflow
func (m *Machine) AddEnergy(e int) int {
	if e < 0 {
		e = 0
	}
	m.energy += e
	if m.energy > m.energyMax {
		overflow := m.energy - m.energyMax
		m.energy = m.energyMax
		return overflow
	}
	return 0
}

// RemoveEnergy drains e units of main energy. Nothing changes when e is
// negative or more than what remains.
func (m *Machine) RemoveEnergy(e int) bool {
	if e < 0 || e > m.energy {
		return false
	}
	m.energy -= e
	return true
}

// SetDodge sets the base dodge rating; negative values are ignored
func (m *Machine) SetDodge(d int) {
	if d >= 0 {
		m.dodge = d
	}
}

// Dodge is the base rating plus the pilot's piloting skill
func (m *Machine) Dodge() int {
	d := m.dodge
	if m.pilot != nil {
		d += m.pilot.Skill(pilot.Piloting)
	}
	return d
}

func (m *Machine) BaseDodge() int { return m.dodge }

// SetRepairPoints sets the base hourly repair rate, minimum 0
func (m *Machine) SetRepairPoints(r float64) {
	m.repairPoints = math.Max(r, 0)
}

func (m *Machine) BaseRepairPoints() float64 { return m.repairPoints }

// RepairPoints is the hourly repair rate including the pilot's mechanic skill
func (m *Machine) RepairPoints() float64 {
	rp := m.repairPoints
	if m.pilot != nil {
		rp += float64(m.pilot.Skill(pilot.Mechanic)) / 100
	}
	return rp
}

// SetPointValue sets the kill reward; negative values become zero
func (m *Machine) SetPointValue(v int) {
	m.pointValue = max(v, 0)
}

// TakeDamage runs a hit through the shields, the hull and the systems and
// reports whether the machine still has hit points.
func (m *Machine) TakeDamage(points int, cause Cause) bool {
	if points < 1 {
		return m.hp > 0
	}

	damage := points
	shields := m.systems.Shields()
	if shields != nil && shields.On() {
		damage = shields.TakeDamage(points)
	}
	if damage > 0 {
		m.SetHP(m.hp - damage)
	}

	switch {
	case cause == Ion:
		m.damageSystems(points*IonMultiplier, Ion)
	case shields != nil && shields.DamageDivider() < 2:
		m.damageSystems(points, cause)
	default:
		m.damageSystems(damage, cause)
	}

	return m.hp > 0
}

// damageSystems spreads damage over randomly chosen systems in lots. Each full
// lot takes lot/100 of repair from one system and the remainder hits one more.
func (m *Machine) damageSystems(damage int, cause Cause) {
	installed := m.systems.All()
	if damage < 1 || len(installed) == 0 {
		return
	}

	lot := cause.lot()
	for i := 0; i < damage/lot; i++ {
		installed[m.intn(len(installed))].ApplyDamage(float64(lot) / 100)
	}
	if rem := damage % lot; rem > 0 {
		installed[m.intn(len(installed))].ApplyDamage(float64(rem) / 100)
	}
}

// needingRepair lists damaged systems in kind order
func (m *Machine) needingRepair() []systems.System {
	var needs []systems.System
	for _, sys := range m.systems.All() {
		if sys.Repair() < 1 {
			needs = append(needs, sys)
		}
	}
	return needs
}

// Repairs spends h hours of repair points. The budget is counted in
// hundredths: each round restores one hit point first, then gives 0.01 to as
// many damaged systems as the budget allows, in kind order.
func (m *Machine) Repairs(h int) {
	if h < 1 {
		return
	}
	budget := int(min(m.RepairPoints()*float64(h)*100+1e-9, maxRepairBudget))

	needs := m.needingRepair()
	for budget >= 1 && (len(needs) > 0 || m.hp < m.hpMax) {
		if m.hp < m.hpMax {
			budget--
			m.hp++
		}
		n := min(budget, len(needs))
		for _, sys := range needs[:n] {
			sys.SetRepair(sys.Repair() + 0.01)
			budget--
		}
		needs = m.needingRepair()
	}
}

// GeneratePower runs the generator for h hours. Up to half of the output tops
// up the shields; the rest goes to main energy and any excess is lost.
func (m *Machine) GeneratePower(h int) {
	gen := m.systems.Generator()
	if h < 1 || gen == nil {
		return
	}

	power := mulSat(gen.Output(), h)
	if shields := m.systems.Shields(); shields != nil {
		if room := shields.Capacity() - shields.Remaining(); room > 0 {
			add := min(power/2, room)
			shields.SetRemaining(shields.Remaining() + add)
			power -= add
		}
	}
	m.SetEnergy(m.energy + min(power, m.energyMax-m.energy))
}

// LongRangeScan charts the regions around the machine's own region
func (m *Machine) LongRangeScan() {
	m.LongRangeScanAt(m.coord.QLoc)
}

// LongRangeScanAt charts every region within the scanner radius of center.
// It needs both a computer and a long range scanner.
func (m *Machine) LongRangeScanAt(center galaxy.Point) {
	if !center.InQuadrant() {
		return
	}
	computer := m.systems.Computer()
	lr := m.systems.LongRangeScanner()
	if computer == nil || lr == nil {
		return
	}
	r := lr.Radius()
	for x := center.X - r; x <= center.X+r; x++ {
		for y := center.Y - r; y <= center.Y+r; y++ {
			computer.SetKnown(m.coord.Quadrant, galaxy.Pt(x, y), true)
		}
	}
}

// MaxEnergy drains the shields into main energy until one is empty or the
// other is full and returns the amount moved.
func (m *Machine) MaxEnergy() int {
	shields := m.systems.Shields()
	if shields == nil {
		return 0
	}
	amount := min(m.energyMax-m.energy, shields.Remaining())
	if amount <= 0 || !shields.RemoveEnergy(amount) {
		return 0
	}
	m.AddEnergy(amount)
	return amount
}

// MaxShields fills the shields from main energy and returns the amount moved
func (m *Machine) MaxShields() int {
	shields := m.systems.Shields()
	if shields == nil {
		return 0
	}
	amount := min(shields.Capacity()-shields.Remaining(), m.energy)
	if amount <= 0 || !m.RemoveEnergy(amount) {
		return 0
	}
	shields.AddEnergy(amount)
	return amount
}

// TransferToShields moves n units from main energy to the shields. Whatever
// the shields cannot hold goes back to main energy.
func (m *Machine) TransferToShields(n int) error {
	shields := m.systems.Shields()
	switch {
	case shields == nil:
		return ErrNoShields
	case n <= 0:
		return ErrInvalidAmount
	case n > m.energy:
		return ErrNotEnoughEnergy
	}
	m.energy -= n
	m.energy += shields.AddEnergy(n)
	return nil
}

// TransferToMain moves n units from the shields to main energy. Whatever main
// energy cannot hold goes back to the shields.
func (m *Machine) TransferToMain(n int) error {
	shields := m.systems.Shields()
	switch {
	case shields == nil:
		return ErrNoShields
	case n <= 0:
		return ErrInvalidAmount
	case !shields.RemoveEnergy(n):
		return ErrNotEnoughShieldEnergy
	}
	shields.AddEnergy(m.AddEnergy(n))
	return nil
}

// PassTime scans, repairs and generates power for h hours
func (m *Machine) PassTime(h int) {
	m.LongRangeScan()
	m.Repairs(h)
	m.GeneratePower(h)
}

// maxRepairBudget bounds one repair call; far more than any machine can use
const maxRepairBudget = float64(math.MaxInt32)

// mulSat multiplies non-negative a and b, saturating at math.MaxInt
func mulSat(a, b int) int {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > math.MaxInt/b {
		return math.MaxInt
	}
	return a * b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
