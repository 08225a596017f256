package systems

// LaserWeapon is a bank of one or more lasers
type LaserWeapon struct {
	machineSystem
	count int
}

// NewLaserWeapon creates a bank of count lasers, minimum 1
func NewLaserWeapon(count int) *LaserWeapon {
	l := &LaserWeapon{machineSystem: newMachineSystem()}
	l.SetCount(count)
	return l
}

func (l *LaserWeapon) Kind() Kind { return KindLaserWeapon }
func (l *LaserWeapon) Count() int { return l.count }

func (l *LaserWeapon) Name() string {
	switch {
	case l.count == 1:
		return "Single Laser"
	case l.count == 2:
		return "Dual Laser"
	case l.count == 3:
		return "Triple Laser"
	case l.count == 4:
		return "Quad Laser"
	case l.count > 4:
		return "Hyper Laser"
	}
	return InvalidLevel
}

func (l *LaserWeapon) SetCount(n int) {
	if n < 1 {
		n = 1
	}
	l.count = n
}

// Usable is the number of working lasers, floor(count x repair), but at least one
func (l *LaserWeapon) Usable() int {
	n := int(float64(l.count) * l.Repair())
	if n < 1 {
		n = 1
	}
	return n
}
