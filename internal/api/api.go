package api

import (
	"trek/internal/entity"
	"trek/internal/galaxy"
	"trek/internal/pilot"
)

// GameAPI defines the commands a front end sends to a running game.
//
// Every command either succeeds or returns a rejection error whose text is
// meant for the player; a rejected command leaves the game unchanged. After
// any command the front end pulls Status to refresh its displays.
type GameAPI interface {
	// Read model
	Status() StatusInfo

	// Time and movement
	Rest(hours int) error
	MoveLight(q, r galaxy.Point) (entity.Travel, error)
	MoveLocal(x, y int) error
	SetLightDriveSetting(setting float64) (float64, error)

	// Energy management
	SetShields(on bool) error
	TransferToShields(n int) error
	TransferToMain(n int) error
	MaxEnergy() (int, error)
	MaxShields() (int, error)

	// Pilot
	AssignPoints(skill pilot.Skill, n int) error

	// World
	AddShip(class string, team entity.Team, quadrant int) (*entity.Ship, error)
	DamageObject(usi int64, points int, cause entity.Cause) (bool, error)
	Scan(usi int64) (string, error)
	PlotCourse(q galaxy.Point) ([]galaxy.Point, error)
	RevealAll() error
}
