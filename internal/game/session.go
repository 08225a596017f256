// Package game holds the session that ties the registry, the player's pilot,
// the clock and the statistics together and runs player commands against
// them.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"trek/internal/entity"
	"trek/internal/factory"
	"trek/internal/galaxy"
	"trek/internal/log"
	"trek/internal/pilot"
	"trek/internal/space"
)

const (
	// InitialFunds is what a new player pilot starts with
	InitialFunds = 10000
	// DefaultPlayerShip is the class the player flies unless told otherwise
	DefaultPlayerShip = "Venture Starship"
	// DefaultPlayerName is used when no player name is given
	DefaultPlayerName = "Commander"
	// ReasonDestroyed ends the game when the player's hull gives out
	ReasonDestroyed = "Your ship was destroyed."
	// MaxHours is the longest span one command may let pass, a century
	MaxHours = 100 * 365 * 24
)

// Epoch is the clock reading of a new game
var Epoch = time.Date(3000, time.January, 1, 0, 0, 0, 0, time.UTC)

// ErrGameOver rejects every command once the game has ended
var ErrGameOver = errors.New("the game is over")

// Options control how a new session is set up
type Options struct {
	PlayerName string
	PlayerShip string
	Catalog    *factory.Catalog
	Names      *factory.Names
	// Rand drives placement, names and damage; nil uses the global source
	Rand *rand.Rand
}

func (o *Options) fill() error {
	if o.PlayerName == "" {
		o.PlayerName = DefaultPlayerName
	}
	if o.PlayerShip == "" {
		o.PlayerShip = DefaultPlayerShip
	}
	if o.Catalog == nil {
		c, err := factory.DefaultCatalog()
		if err != nil {
			return err
		}
		o.Catalog = c
	}
	if o.Names == nil {
		n, err := factory.DefaultNames()
		if err != nil {
			return err
		}
		o.Names = n
	}
	if o.Rand != nil {
		o.Names.SetRand(o.Rand)
	}
	return nil
}

// Session is one running game. It is owned by a single goroutine.
type Session struct {
	playerName string
	clock      time.Time
	pilot      *pilot.Pilot
	space      *space.Space
	stats      *Statistics
	names      *factory.Names
	catalog    *factory.Catalog
	rng        *rand.Rand
	over       bool
	reason     string
}

// NewSession starts a new game: a fresh pilot flying the configured class
// at a random location in a freshly generated galaxy
func NewSession(opts Options) (*Session, error) {
	if err := opts.fill(); err != nil {
		return nil, err
	}

	s := &Session{
		playerName: opts.PlayerName,
		clock:      Epoch,
		pilot:      pilot.New(false, InitialFunds),
		stats:      NewStatistics(),
		names:      opts.Names,
		catalog:    opts.Catalog,
		rng:        opts.Rand,
	}

	shipName, err := s.names.Next(factory.FederationShip)
	if err != nil {
		return nil, err
	}
	player, err := s.catalog.CreateShip(factory.ShipSpec{
		Class: opts.PlayerShip,
		Name:  shipName,
		Team:  entity.Federation,
		AI:    false,
		Pilot: s.pilot,
		Coord: s.randomCoordinate(),
		Rand:  s.rng,
	})
	if err != nil {
		return nil, fmt.Errorf("create player ship: %w", err)
	}

	s.space = space.New(player, s.rng)
	if err := s.space.Generate(); err != nil {
		return nil, fmt.Errorf("generate galaxy: %w", err)
	}
	if shields := player.Systems().Shields(); shields != nil {
		shields.SetOn(true)
	}
	s.passTime(0)

	log.Info("new game started",
		"player", s.playerName,
		"ship", player.Name(),
		"class", player.Class(),
		"location", player.Coord().String(),
		"objects", s.space.Len())
	return s, nil
}

func (s *Session) randomCoordinate() galaxy.Coordinate {
	intn := rand.Intn
	if s.rng != nil {
		intn = s.rng.Intn
	}
	return galaxy.Coordinate{
		Quadrant: intn(galaxy.Quadrants),
		QLoc:     galaxy.Pt(intn(galaxy.QuadrantWidth), intn(galaxy.QuadrantHeight)),
		RLoc:     galaxy.Pt(intn(galaxy.RegionWidth), intn(galaxy.RegionHeight)),
	}
}

func (s *Session) PlayerName() string        { return s.playerName }
func (s *Session) Clock() time.Time          { return s.clock }
func (s *Session) Pilot() *pilot.Pilot       { return s.pilot }
func (s *Session) Space() *space.Space       { return s.space }
func (s *Session) Player() *entity.Ship      { return s.space.Player() }
func (s *Session) Stats() *Statistics        { return s.stats }
func (s *Session) Names() *factory.Names     { return s.names }
func (s *Session) Catalog() *factory.Catalog { return s.catalog }

// Over reports whether the game has ended and why
func (s *Session) Over() (bool, string) { return s.over, s.reason }

// ObjectAt returns the object occupying c, or nil
func (s *Session) ObjectAt(c galaxy.Coordinate) entity.SpaceObject {
	return s.space.ObjectAt(c)
}

// PassTime advances the clock and lets every object pass the same hours.
// It is how moving ships spend time in the world.
func (s *Session) PassTime(hours int) {
	if s.over {
		return
	}
	s.passTime(hours)
}

func (s *Session) passTime(hours int) {
	hours = min(max(hours, 0), MaxHours)
	s.clock = s.clock.Add(time.Duration(hours) * time.Hour)
	s.space.PassTime(hours)

	if !s.Player().Alive() {
		s.endGame(ReasonDestroyed)
	}
}

// endGame marks the game finished and clears the galaxy
func (s *Session) endGame(reason string) {
	if s.over {
		return
	}
	s.over = true
	s.reason = reason
	s.space.RemoveAll()
	log.Info("game over", "player", s.playerName, "reason", reason, "clock", s.clock.Format(time.DateTime))
}

func (s *Session) check() error {
	if s.over {
		return ErrGameOver
	}
	return nil
}

// reject logs a refused command at debug level and hands back err
func reject(command string, err error) error {
	log.Debug("command rejected", "command", command, "error", err)
	return err
}
