package game

import "sort"

// Names of the counters kept in the other map
const (
	StatHoursRested = "Hours rested"
	StatJumps       = "Light drive jumps"
	StatLocalMoves  = "Impulse moves"
	StatKillPoints  = "Points earned for Kills"
	StatShipsMet    = "Ships encountered"
)

// Statistics counts kills by object name and other events by label. Counts
// only ever grow.
type Statistics struct {
	kills map[string]int
	other map[string]int
}

// NewStatistics creates empty counters
func NewStatistics() *Statistics {
	return &Statistics{
		kills: make(map[string]int),
		other: make(map[string]int),
	}
}

// AddKill counts one more destroyed object of the given name
func (s *Statistics) AddKill(name string) {
	s.kills[name]++
}

// AddOther counts one more event with the given label
func (s *Statistics) AddOther(label string) {
	s.other[label]++
}

// AddOtherN adds n to the event label; non-positive n is ignored
func (s *Statistics) AddOtherN(label string, n int) {
	if n <= 0 {
		return
	}
	s.other[label] += n
}

func (s *Statistics) Kill(name string) int   { return s.kills[name] }
func (s *Statistics) Other(label string) int { return s.other[label] }
func (s *Statistics) Kills() map[string]int  { return copyCounts(s.kills) }
func (s *Statistics) Others() map[string]int { return copyCounts(s.other) }

// TotalKills sums every kill counter
func (s *Statistics) TotalKills() int {
	total := 0
	for _, n := range s.kills {
		total += n
	}
	return total
}

// Labels returns the keys of counts in sorted order
func Labels(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
