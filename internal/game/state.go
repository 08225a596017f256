package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"trek/internal/entity"
	"trek/internal/factory"
	"trek/internal/log"
	"trek/internal/space"
)

// State is everything a session needs to be rebuilt later. The player's ship
// comes first in Objects and carries the player's pilot.
type State struct {
	PlayerName string              `json:"player_name"`
	Clock      time.Time           `json:"clock"`
	Over       bool                `json:"over"`
	Reason     string              `json:"reason,omitempty"`
	Names      factory.NamesRecord `json:"names"`
	Kills      map[string]int      `json:"kills"`
	Other      map[string]int      `json:"other"`
	Objects    []entity.Record     `json:"objects"`
}

// ErrNoPlayer is returned when a saved state has no usable player ship
var ErrNoPlayer = errors.New("saved state has no player ship")

// State captures the session
func (s *Session) State() State {
	st := State{
		PlayerName: s.playerName,
		Clock:      s.clock,
		Over:       s.over,
		Reason:     s.reason,
		Names:      s.names.Record(),
		Kills:      s.stats.Kills(),
		Other:      s.stats.Others(),
	}
	for _, o := range s.space.Objects() {
		st.Objects = append(st.Objects, o.Record())
	}
	return st
}

// Restore rebuilds a session from a saved state. Catalog and name sources
// come from opts the same way they do for a new game.
func Restore(st State, opts Options) (*Session, error) {
	if err := opts.fill(); err != nil {
		return nil, err
	}
	if len(st.Objects) == 0 || st.Objects[0].Kind != entity.KindShip {
		return nil, ErrNoPlayer
	}
	objects := make([]entity.SpaceObject, 0, len(st.Objects))
	for _, rec := range st.Objects {
		obj, err := entity.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
		if opts.Rand != nil {
			if r, ok := obj.(interface{ SetRand(*rand.Rand) }); ok {
				r.SetRand(opts.Rand)
			}
		}
		objects = append(objects, obj)
	}

	player := objects[0].(*entity.Ship)
	if player.Pilot() == nil {
		return nil, ErrNoPlayer
	}

	s := &Session{
		playerName: st.PlayerName,
		clock:      st.Clock,
		pilot:      player.Pilot(),
		space:      space.New(player, opts.Rand),
		stats:      NewStatistics(),
		names:      opts.Names,
		catalog:    opts.Catalog,
		rng:        opts.Rand,
		over:       st.Over,
		reason:     st.Reason,
	}
	if s.playerName == "" {
		s.playerName = DefaultPlayerName
	}
	for _, obj := range objects[1:] {
		if err := s.space.Add(obj); err != nil {
			return nil, fmt.Errorf("restore: %w", err)
		}
	}
	// Names are shared with the caller, so they change only once the objects loaded
	if err := opts.Names.Restore(st.Names); err != nil {
		return nil, err
	}
	for name, n := range st.Kills {
		s.stats.kills[name] = max(n, 0)
	}
	for label, n := range st.Other {
		s.stats.other[label] = max(n, 0)
	}

	log.Info("game restored", "player", s.playerName, "clock", s.clock.Format(time.DateTime), "objects", s.space.Len())
	return s, nil
}
