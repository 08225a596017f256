package systems

import "math/rand"

// Set holds at most one system of each kind, indexed by kind
type Set struct {
	slots [kindCount]System
}

// Put installs sys, replacing any system of the same kind. Nil is ignored.
func (s *Set) Put(sys System) {
	if sys == nil {
		return
	}
	k := sys.Kind()
	if k < 0 || k >= kindCount {
		return
	}
	s.slots[k] = sys
}

// Get returns the system of kind k, or nil
func (s *Set) Get(k Kind) System {
	if k < 0 || k >= kindCount {
		return nil
	}
	return s.slots[k]
}

// Remove uninstalls the system of kind k
func (s *Set) Remove(k Kind) {
	if k >= 0 && k < kindCount {
		s.slots[k] = nil
	}
}

// All returns the installed systems in kind order
func (s *Set) All() []System {
	all := make([]System, 0, kindCount)
	for _, sys := range s.slots {
		if sys != nil {
			all = append(all, sys)
		}
	}
	return all
}

// Len returns the number of installed systems
func (s *Set) Len() int {
	n := 0
	for _, sys := range s.slots {
		if sys != nil {
			n++
		}
	}
	return n
}

// SetRand hands rng to every installed system that draws random numbers
func (s *Set) SetRand(rng *rand.Rand) {
	if c := s.Computer(); c != nil {
		c.SetRand(rng)
	}
}

func (s *Set) Shields() *Shields {
	sh, _ := s.slots[KindShields].(*Shields)
	return sh
}

func (s *Set) Generator() *Generator {
	g, _ := s.slots[KindGenerator].(*Generator)
	return g
}

func (s *Set) LightDrive() *LightDrive {
	ld, _ := s.slots[KindLightDrive].(*LightDrive)
	return ld
}

func (s *Set) ImpulseDrive() *ImpulseDrive {
	d, _ := s.slots[KindImpulseDrive].(*ImpulseDrive)
	return d
}

func (s *Set) Computer() *Computer {
	c, _ := s.slots[KindComputer].(*Computer)
	return c
}

func (s *Set) LongRangeScanner() *LongRangeScanner {
	lr, _ := s.slots[KindLongRangeScanner].(*LongRangeScanner)
	return lr
}

func (s *Set) ShortRangeScanner() *ShortRangeScanner {
	sr, _ := s.slots[KindShortRangeScanner].(*ShortRangeScanner)
	return sr
}

func (s *Set) LaserWeapon() *LaserWeapon {
	l, _ := s.slots[KindLaserWeapon].(*LaserWeapon)
	return l
}
