package systems

// MaxScannerLevel is the most advanced scanner available
const MaxScannerLevel = 5

var longRangeNames = map[int]string{
	1: "Basic LR Scanner",
	2: "Improved LR Scanner",
	3: "Enhanced LR Scanner",
	4: "Advanced LR Scanner",
	5: "Eagle Eye LR Scanner",
}

var shortRangeNames = map[int]string{
	1: "Basic SR Scanner",
	2: "Improved SR Scanner",
	3: "Enhanced SR Scanner",
	4: "Advanced SR Scanner",
	5: "Eagle SR Scanner",
}

// LongRangeScanner charts the regions around a ship
type LongRangeScanner struct {
	machineSystem
	level int
}

// NewLongRangeScanner creates a scanner, level clamped to [1, MaxScannerLevel]
func NewLongRangeScanner(level int) *LongRangeScanner {
	s := &LongRangeScanner{machineSystem: newMachineSystem()}
	s.SetLevel(level)
	return s
}

func (s *LongRangeScanner) Kind() Kind { return KindLongRangeScanner }
func (s *LongRangeScanner) Level() int { return s.level }

func (s *LongRangeScanner) Name() string {
	if name, ok := longRangeNames[s.level]; ok {
		return name
	}
	return InvalidLevel
}

func (s *LongRangeScanner) SetLevel(level int) {
	s.level = clampInt(level, 1, MaxScannerLevel)
}

// Radius is the scan radius in regions, floor(level x repair)
func (s *LongRangeScanner) Radius() int {
	return int(float64(s.level) * s.Repair())
}

// ShortRangeScanner inspects objects within the current region
type ShortRangeScanner struct {
	machineSystem
	level int
}

// NewShortRangeScanner creates a scanner, level clamped to [1, MaxScannerLevel]
func NewShortRangeScanner(level int) *ShortRangeScanner {
	s := &ShortRangeScanner{machineSystem: newMachineSystem()}
	s.SetLevel(level)
	return s
}

func (s *ShortRangeScanner) Kind() Kind { return KindShortRangeScanner }
func (s *ShortRangeScanner) Level() int { return s.level }

func (s *ShortRangeScanner) Name() string {
	if name, ok := shortRangeNames[s.level]; ok {
		return name
	}
	return InvalidLevel
}

func (s *ShortRangeScanner) SetLevel(level int) {
	s.level = clampInt(level, 1, MaxScannerLevel)
}

// EffectiveLevel is floor(level x repair); it decides how much a scan reveals
func (s *ShortRangeScanner) EffectiveLevel() int {
	return int(float64(s.level) * s.Repair())
}
