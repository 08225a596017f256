package api

import (
	"io"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ClockLayout is how the game clock is shown to the player
const ClockLayout = "2006-01-02 15:04"

type line struct {
	format string
	args   []any
}

// WriteStatus prints a plain text status report. Numbers are grouped the way
// the given language expects.
func WriteStatus(w io.Writer, tag language.Tag, st StatusInfo) error {
	p := message.NewPrinter(tag)
	ship := st.Ship

	lines := []line{
		{"%s aboard %s (%s)\n", []any{st.Player, ship.Name, ship.Class}},
		{"Date: %s\n", []any{st.Clock.Format(ClockLayout)}},
		{"Location: %s\n", []any{ship.Location}},
		{"Hull: %d/%d\n", []any{ship.HP, ship.HPMax}},
		{"Energy: %d/%d\n", []any{ship.Energy, ship.EnergyMax}},
	}
	if sh := ship.Shields; sh != nil {
		state := "down"
		if sh.On {
			state = "up"
		}
		lines = append(lines, line{"Shields: %s %d/%d (%s)\n", []any{sh.Name, sh.Remaining, sh.Capacity, state}})
	}
	for _, l := range lines {
		if _, err := p.Fprintf(w, l.format, l.args...); err != nil {
			return err
		}
	}

	if _, err := p.Fprintf(w, "Pilot: level %d, %d/%d xp, %d credits, %d unassigned\n",
		st.Pilot.Level, st.Pilot.Experience, st.Pilot.NextLevel, st.Pilot.Funds, st.Pilot.Unassigned); err != nil {
		return err
	}

	for _, sys := range ship.Systems {
		if _, err := p.Fprintf(w, "  %-24s %3d%%\n", sys.Name, sys.Repair); err != nil {
			return err
		}
	}

	for _, o := range st.Region {
		if _, err := p.Fprintf(w, "  [%d,%d] %s %s (%s)\n", o.X, o.Y, o.Kind, o.Name, o.Team); err != nil {
			return err
		}
	}

	kills := make([]string, 0, len(st.Stats.Kills))
	for k := range st.Stats.Kills {
		kills = append(kills, k)
	}
	sort.Strings(kills)
	for _, k := range kills {
		if _, err := p.Fprintf(w, "Kills, %s: %d\n", k, st.Stats.Kills[k]); err != nil {
			return err
		}
	}

	if st.Over {
		if _, err := p.Fprintf(w, "GAME OVER: %s\n", st.Reason); err != nil {
			return err
		}
	}
	return nil
}
