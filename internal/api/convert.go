package api

import (
	"math"

	"trek/internal/entity"
	"trek/internal/pilot"
	"trek/internal/systems"
)

// ConvertPilot builds the read model of a pilot
func ConvertPilot(p *pilot.Pilot) PilotInfo {
	if p == nil {
		return PilotInfo{}
	}
	skills := make(map[string]int, pilot.SkillCount)
	for i, v := range p.Skills() {
		skills[pilot.Skill(i).String()] = v
	}
	return PilotInfo{
		Level:      p.Level(),
		Experience: p.Experience(),
		NextLevel:  pilot.ExperienceRequired(p.Level() + 1),
		Funds:      p.Funds(),
		Unassigned: p.Unassigned(),
		Skills:     skills,
	}
}

// ConvertObject builds the read model of any object
func ConvertObject(obj entity.SpaceObject) ObjectInfo {
	c := obj.Coord()
	return ObjectInfo{
		USI:      obj.USI(),
		Kind:     obj.Kind().String(),
		Name:     obj.Name(),
		Team:     obj.Team().String(),
		Image:    obj.Image(),
		HP:       obj.HP(),
		HPMax:    obj.HPMax(),
		Location: c.String(),
		X:        c.RLoc.X,
		Y:        c.RLoc.Y,
	}
}

// ConvertObjects converts a list of objects, keeping their order
func ConvertObjects(objs []entity.SpaceObject) []ObjectInfo {
	out := make([]ObjectInfo, 0, len(objs))
	for _, o := range objs {
		out = append(out, ConvertObject(o))
	}
	return out
}

// ConvertSystem builds the read model of an installed system
func ConvertSystem(sys systems.System) SystemInfo {
	return SystemInfo{
		Kind:   sys.Kind().String(),
		Name:   sys.Name(),
		Repair: int(math.Round(sys.Repair() * 100)),
	}
}

// ConvertShip builds the read model of a ship with its systems
func ConvertShip(ship *entity.Ship) ShipInfo {
	info := ShipInfo{
		ObjectInfo: ConvertObject(ship),
		Class:      ship.Class(),
		Energy:     ship.Energy(),
		EnergyMax:  ship.EnergyMax(),
		Dodge:      ship.Dodge(),
		MoveCost:   ship.LocalMoveCost(),
	}

	set := ship.Systems()
	if ld := set.LightDrive(); ld != nil {
		info.LightDrive = ld.Setting()
	}
	if sh := set.Shields(); sh != nil {
		info.Shields = &ShieldInfo{
			Name:      sh.Name(),
			On:        sh.On(),
			Remaining: sh.Remaining(),
			Capacity:  sh.Capacity(),
		}
	}
	for _, sys := range set.All() {
		info.Systems = append(info.Systems, ConvertSystem(sys))
	}
	return info
}
