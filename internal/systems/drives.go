package systems

// MinLightDriveSpeed is both the lowest setting and the lowest maximum of a light drive
const MinLightDriveSpeed = 1.0

// LightDrive moves a ship between regions
type LightDrive struct {
	machineSystem
	maxSpeed float64
	setting  float64
}

// NewLightDrive creates a light drive set to the minimum speed
func NewLightDrive(maxSpeed float64) *LightDrive {
	ld := &LightDrive{machineSystem: newMachineSystem(), setting: MinLightDriveSpeed}
	ld.SetMax(maxSpeed)
	return ld
}

func (ld *LightDrive) Kind() Kind   { return KindLightDrive }
func (ld *LightDrive) Name() string { return "Light Drive" }
func (ld *LightDrive) Max() float64 { return ld.maxSpeed }

// SetMax sets the undamaged top speed, minimum 1.0
func (ld *LightDrive) SetMax(s float64) {
	if s < MinLightDriveSpeed {
		s = MinLightDriveSpeed
	}
	ld.maxSpeed = s
}

// Available is the top speed the damaged drive can reach
func (ld *LightDrive) Available() float64 {
	return ld.maxSpeed * ld.Repair()
}

// Setting returns the current speed, lowered to what is available
func (ld *LightDrive) Setting() float64 {
	if lim := ld.Available(); ld.setting > lim {
		ld.setting = lim
	}
	return ld.setting
}

// SetSetting clamps s to the available speed, then raises it to at least 1.0
func (ld *LightDrive) SetSetting(s float64) {
	if lim := ld.Available(); s > lim {
		s = lim
	}
	if s < MinLightDriveSpeed {
		s = MinLightDriveSpeed
	}
	ld.setting = s
}

// ApplyDamage also drops the setting when the available speed falls below it
func (ld *LightDrive) ApplyDamage(d float64) float64 {
	overflow := ld.machineSystem.ApplyDamage(d)
	if lim := ld.Available(); ld.setting > lim {
		ld.setting = lim
	}
	return overflow
}

// ImpulseDrive moves a ship within a region
type ImpulseDrive struct {
	machineSystem
}

// NewImpulseDrive creates an undamaged impulse drive
func NewImpulseDrive() *ImpulseDrive {
	return &ImpulseDrive{machineSystem: newMachineSystem()}
}

func (d *ImpulseDrive) Kind() Kind   { return KindImpulseDrive }
func (d *ImpulseDrive) Name() string { return "Impulse Drive" }
