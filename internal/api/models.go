package api

import "time"

// StatusInfo is everything a front end shows after a command
type StatusInfo struct {
	Player string         `json:"player"`
	Clock  time.Time      `json:"clock"`
	Over   bool           `json:"over"`
	Reason string         `json:"reason,omitempty"`
	Pilot  PilotInfo      `json:"pilot"`
	Ship   ShipInfo       `json:"ship"`
	Region []ObjectInfo   `json:"region"` // Other objects in the player's region
	Stats  StatisticsInfo `json:"stats"`
}

// PilotInfo describes the player's pilot
type PilotInfo struct {
	Level      int            `json:"level"`
	Experience int64          `json:"experience"`
	NextLevel  int64          `json:"next_level"` // Experience needed for the next level
	Funds      int64          `json:"funds"`
	Unassigned int            `json:"unassigned"`
	Skills     map[string]int `json:"skills"`
}

// ObjectInfo describes any object on the map
type ObjectInfo struct {
	USI      int64  `json:"usi"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Image    string `json:"image"`
	HP       int    `json:"hp"`
	HPMax    int    `json:"hp_max"`
	Location string `json:"location"`
	X        int    `json:"x"` // Cell within the region
	Y        int    `json:"y"`
}

// ShipInfo describes the player's ship
type ShipInfo struct {
	ObjectInfo
	Class      string       `json:"class"`
	Energy     int          `json:"energy"`
	EnergyMax  int          `json:"energy_max"`
	Dodge      int          `json:"dodge"`
	LightDrive float64      `json:"light_drive"` // Current setting, zero without a drive
	MoveCost   int          `json:"move_cost"`   // Energy of one impulse move
	Shields    *ShieldInfo  `json:"shields,omitempty"`
	Systems    []SystemInfo `json:"systems"`
}

// ShieldInfo describes installed shields
type ShieldInfo struct {
	Name      string `json:"name"`
	On        bool   `json:"on"`
	Remaining int    `json:"remaining"`
	Capacity  int    `json:"capacity"`
}

// SystemInfo describes one installed system
type SystemInfo struct {
	Kind   string `json:"kind"`
	Name   string `json:"name"`
	Repair int    `json:"repair"` // Percent
}

// StatisticsInfo holds the kill and event counters
type StatisticsInfo struct {
	Kills map[string]int `json:"kills"`
	Other map[string]int `json:"other"`
}
