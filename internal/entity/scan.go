package entity

import (
	"fmt"
	"strings"

	"trek/internal/systems"
)

// ScanFailed is the report of a scanner that is too damaged to work
const ScanFailed = "Short-Range scanner is completely non-functional."

// ScanReport describes target as seen through sr. The effective scanner
// level decides how much is revealed about machines; bases, stars and
// asteroids get a one line summary.
func ScanReport(sr *systems.ShortRangeScanner, target SpaceObject) string {
	level := 0
	if sr != nil {
		level = sr.EffectiveLevel()
	}
	if level < 1 {
		return ScanFailed + "\n"
	}

	switch t := target.(type) {
	case *Ship:
		return scanMachine(&t.Machine, level)
	case *Base:
		return fmt.Sprintf("%s: %d%% hull\n", Description(t), percent(t.HP(), t.HPMax()))
	default:
		return fmt.Sprintf("%s: %s\n", target.Kind(), Description(target))
	}
}

func scanMachine(m *Machine, level int) string {
	var b strings.Builder
	shields := m.systems.Shields()

	fmt.Fprintf(&b, "%s (Team: %s)\n", m.Name(), m.Team())
	fmt.Fprintf(&b, " (Dodge: %d)\n", m.Dodge())

	if level >= 5 {
		if shields != nil {
			fmt.Fprintf(&b, "Shield Type: %s\n", shields.Name())
			fmt.Fprintf(&b, "Shield Energy: %d / %d\n", shields.Remaining(), shields.Capacity())
		}
		fmt.Fprintf(&b, "Main Energy: %d / %d\n", m.energy, m.energyMax)
		fmt.Fprintf(&b, "Hit Points: %d / %d\n", m.hp, m.hpMax)
		return b.String()
	}

	if level >= 2 && shields != nil {
		fmt.Fprintf(&b, "Shield Energy: %d%%\n", percent(shields.Remaining(), shields.Capacity()))
	}
	if level >= 3 {
		fmt.Fprintf(&b, "Hit Points: %d%%\n", percent(m.hp, m.hpMax))
	}
	if level >= 4 {
		fmt.Fprintf(&b, "Energy Remaining: %d%%\n", percent(m.energy, m.energyMax))
	}
	return b.String()
}

func percent(v, of int) int {
	if of <= 0 {
		return 0
	}
	return int(float64(v) / float64(of) * 100)
}
