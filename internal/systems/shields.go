package systems

// MaxShieldLevel is the strongest shield system available
const MaxShieldLevel = 5

var shieldNames = map[int]string{
	1: "Basic Shields",
	2: "Standard Shields",
	3: "Strong Shields",
	4: "Advanced Shields",
	5: "Superior Shields",
}

// Shields absorb incoming damage using a dedicated energy supply
type Shields struct {
	machineSystem
	level     int
	capacity  int
	remaining int
	on        bool
}

// NewShields creates a fully charged, inactive shield system
func NewShields(level, capacity int) *Shields {
	s := &Shields{machineSystem: newMachineSystem()}
	s.SetLevel(level)
	s.SetCapacity(capacity)
	s.SetRemaining(s.capacity)
	return s
}

func (s *Shields) Kind() Kind { return KindShields }

func (s *Shields) Name() string {
	if name, ok := shieldNames[s.level]; ok {
		return name
	}
	return InvalidLevel
}

func (s *Shields) Level() int     { return s.level }
func (s *Shields) Capacity() int  { return s.capacity }
func (s *Shields) Remaining() int { return s.remaining }

// SetLevel clamps the level to [0, MaxShieldLevel]
func (s *Shields) SetLevel(level int) {
	s.level = clampInt(level, 0, MaxShieldLevel)
}

// SetCapacity sets the energy capacity, minimum 1
func (s *Shields) SetCapacity(c int) {
	if c < 1 {
		c = 1
	}
	s.capacity = c
	if s.remaining > c {
		s.remaining = c
	}
}

// SetRemaining clamps r to [0,capacity]; an empty supply switches the shields off
func (s *Shields) SetRemaining(r int) {
	r = clampInt(r, 0, s.capacity)
	if r == 0 {
		s.on = false
	}
	s.remaining = r
}

// AddEnergy charges the shields and returns the overflow
func (s *Shields) AddEnergy(e int) int {
	if e < 0 {
		e = 0
	}
	s.remaining += e
	overflow := 0
	if s.remaining > s.capacity {
		overflow = s.remaining - s.capacity
		s.remaining = s.capacity
	}
	return overflow
}

// RemoveEnergy drains e units. It takes nothing and returns false when e is
// negative or more than what remains.
func (s *Shields) RemoveEnergy(e int) bool {
	if e < 0 || e > s.remaining {
		return false
	}
	s.remaining -= e
	if s.remaining <= 0 {
		s.on = false
	}
	return true
}

// usable reports whether the shields can be active at all
func (s *Shields) usable() bool {
	return s.remaining > 0 && s.Repair() >= 0.01
}

// On reports the shield status. Empty or wrecked shields are forced off.
func (s *Shields) On() bool {
	if !s.usable() {
		s.on = false
	}
	return s.on
}

// SetOn switches the shields. Turning them on is refused when they are empty
// or wrecked; the return value is the resulting status.
func (s *Shields) SetOn(on bool) bool {
	if on && !s.usable() {
		s.on = false
		return false
	}
	s.on = on
	return s.on
}

// DamageDivider is floor(level x repair), never below 1
func (s *Shields) DamageDivider() int {
	divider := int(float64(s.level) * s.Repair())
	if divider < 1 {
		divider = 1
	}
	return divider
}

// TakeDamage divides the incoming damage, absorbs what it can and returns the
// divided damage that got through. At least one point always reaches the shields.
func (s *Shields) TakeDamage(damage int) int {
	if damage < 1 {
		return 0
	}

	damage /= s.DamageDivider()
	if damage < 1 {
		damage = 1
	}

	if damage <= s.remaining {
		s.remaining -= damage
		if s.remaining == 0 {
			s.on = false
		}
		return 0
	}

	damage -= s.remaining
	s.remaining = 0
	s.on = false
	return damage
}
