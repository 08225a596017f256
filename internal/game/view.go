package game

import (
	"trek/internal/api"
	"trek/internal/entity"
	"trek/internal/space"
)

var _ api.GameAPI = (*Session)(nil)

// Status builds the read model a front end shows after each command
func (s *Session) Status() api.StatusInfo {
	return api.StatusInfo{
		Player: s.playerName,
		Clock:  s.clock,
		Over:   s.over,
		Reason: s.reason,
		Pilot:  api.ConvertPilot(s.pilot),
		Ship:   api.ConvertShip(s.Player()),
		Region: api.ConvertObjects(s.neighbours()),
		Stats: api.StatisticsInfo{
			Kills: s.stats.Kills(),
			Other: s.stats.Others(),
		},
	}
}

// neighbours lists every other object in the player's region
func (s *Session) neighbours() []entity.SpaceObject {
	player := s.Player()
	c := player.Coord()
	var out []entity.SpaceObject
	for _, o := range s.space.InRegion(c.Quadrant, c.QLoc, space.Filter{}) {
		if o.USI() != player.USI() {
			out = append(out, o)
		}
	}
	return out
}
