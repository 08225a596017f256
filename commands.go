package main

import (
	"fmt"
	"strconv"
	"strings"

	"trek/internal/entity"
	"trek/internal/galaxy"
	"trek/internal/game"
	"trek/internal/pilot"
)

type command struct {
	name    string
	usage   string
	help    string
	args    int  // Minimum number of arguments
	mutates bool // Whether the game is saved afterwards
	run     func(s *game.Session, args []string) (string, error)
}

var commands = []command{
	{"new", "new", "Start a new game, replacing the save", 0, true, runNew},
	{"status", "status", "Show the ship and its surroundings", 0, false, runStatus},
	{"rest", "rest HOURS", "Let time pass", 1, true, runRest},
	{"jump", "jump QX QY RX RY", "Light drive jump to cell RX,RY of region QX,QY", 4, true, runJump},
	{"plan", "plan QX QY", "Price a light drive jump", 2, false, runPlan},
	{"move", "move X Y", "Impulse move inside the region", 2, true, runMove},
	{"speed", "speed SETTING", "Set the light drive speed", 1, true, runSpeed},
	{"shields", "shields on|off", "Raise or lower the shields", 1, true, runShields},
	{"toshields", "toshields AMOUNT", "Move main energy into the shields", 1, true, runToShields},
	{"tomain", "tomain AMOUNT", "Move shield energy into main energy", 1, true, runToMain},
	{"maxshields", "maxshields", "Fill the shields from main energy", 0, true, runMaxShields},
	{"maxenergy", "maxenergy", "Fill main energy from the shields", 0, true, runMaxEnergy},
	{"assign", "assign SKILL POINTS", "Spend skill points", 2, true, runAssign},
	{"spawn", "spawn TEAM CLASS...", "Add a computer controlled ship", 2, true, runSpawn},
	{"damage", "damage USI POINTS [CAUSE]", "Hit an object (energy, ion or projectile)", 2, true, runDamage},
	{"scan", "scan USI", "Short range scan of an object in this region", 1, false, runScan},
	{"targets", "targets", "List other teams in this region, closest first", 0, false, runTargets},
	{"course", "course QX QY", "Plot a course through charted regions", 2, false, runCourse},
	{"reveal", "reveal", "Chart every region", 0, true, runReveal},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func intArgs(cmd string, args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, &UsageError{Command: cmd, Reason: fmt.Sprintf("%q is not a number", a)}
		}
		out[i] = n
	}
	return out, nil
}

func runNew(s *game.Session, _ []string) (string, error) {
	return fmt.Sprintf("Welcome aboard the %s, %s.", s.Player().Name(), s.PlayerName()), nil
}

func runStatus(*game.Session, []string) (string, error) {
	return "", nil
}

func runRest(s *game.Session, args []string) (string, error) {
	n, err := intArgs("rest", args[:1])
	if err != nil {
		return "", err
	}
	if err := s.Rest(n[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Rested %d hours.", n[0]), nil
}

func runJump(s *game.Session, args []string) (string, error) {
	n, err := intArgs("jump", args[:4])
	if err != nil {
		return "", err
	}
	travel, err := s.MoveLight(galaxy.Pt(n[0], n[1]), galaxy.Pt(n[2], n[3]))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Jumped %.1f regions using %d energy in %d hours.", travel.Distance, travel.Cost, travel.Hours), nil
}

func runPlan(s *game.Session, args []string) (string, error) {
	n, err := intArgs("plan", args[:2])
	if err != nil {
		return "", err
	}
	travel, err := s.PlanLightDrive(galaxy.Pt(n[0], n[1]))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("A jump of %.1f regions costs %d energy and takes %d hours.", travel.Distance, travel.Cost, travel.Hours), nil
}

func runMove(s *game.Session, args []string) (string, error) {
	n, err := intArgs("move", args[:2])
	if err != nil {
		return "", err
	}
	if err := s.MoveLocal(n[0], n[1]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Moved to %d,%d.", n[0], n[1]), nil
}

func runSpeed(s *game.Session, args []string) (string, error) {
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return "", &UsageError{Command: "speed", Reason: fmt.Sprintf("%q is not a number", args[0])}
	}
	got, err := s.SetLightDriveSetting(v)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Light drive set to %.1f.", got), nil
}

func runShields(s *game.Session, args []string) (string, error) {
	var on bool
	switch strings.ToLower(args[0]) {
	case "on", "up":
		on = true
	case "off", "down":
	default:
		return "", &UsageError{Command: "shields", Reason: "expected on or off"}
	}
	if err := s.SetShields(on); err != nil {
		return "", err
	}
	if on {
		return "Shields up.", nil
	}
	return "Shields down.", nil
}

func runToShields(s *game.Session, args []string) (string, error) {
	n, err := intArgs("toshields", args[:1])
	if err != nil {
		return "", err
	}
	if err := s.TransferToShields(n[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Transferred %d to the shields.", n[0]), nil
}

func runToMain(s *game.Session, args []string) (string, error) {
	n, err := intArgs("tomain", args[:1])
	if err != nil {
		return "", err
	}
	if err := s.TransferToMain(n[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("Transferred %d to main energy.", n[0]), nil
}

func runMaxShields(s *game.Session, _ []string) (string, error) {
	moved, err := s.MaxShields()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Transferred %d to the shields.", moved), nil
}

func runMaxEnergy(s *game.Session, _ []string) (string, error) {
	moved, err := s.MaxEnergy()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Transferred %d to main energy.", moved), nil
}

func runAssign(s *game.Session, args []string) (string, error) {
	skill, err := pilot.ParseSkill(args[0])
	if err != nil {
		return "", &UsageError{Command: "assign", Reason: err.Error()}
	}
	n, err := intArgs("assign", args[1:2])
	if err != nil {
		return "", err
	}
	if err := s.AssignPoints(skill, n[0]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s is now %d.", skill, s.Pilot().Skill(skill)), nil
}

func runSpawn(s *game.Session, args []string) (string, error) {
	team, err := entity.ParseTeam(args[0])
	if err != nil {
		return "", &UsageError{Command: "spawn", Reason: err.Error()}
	}
	class := strings.Join(args[1:], " ")
	ship, err := s.AddShip(class, team, s.Player().Coord().Quadrant)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s (%d) appeared at %s.", entity.Description(ship), ship.USI(), ship.Coord()), nil
}

func runDamage(s *game.Session, args []string) (string, error) {
	usi, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "", &UsageError{Command: "damage", Reason: fmt.Sprintf("%q is not an identifier", args[0])}
	}
	n, err := intArgs("damage", args[1:2])
	if err != nil {
		return "", err
	}
	cause := entity.Energy
	if len(args) > 2 {
		if cause, err = entity.ParseCause(args[2]); err != nil {
			return "", &UsageError{Command: "damage", Reason: err.Error()}
		}
	}
	destroyed, err := s.DamageObject(usi, n[0], cause)
	if err != nil {
		return "", err
	}
	if destroyed {
		return fmt.Sprintf("Object %d destroyed.", usi), nil
	}
	return fmt.Sprintf("Object %d hit for %d.", usi, n[0]), nil
}

func runScan(s *game.Session, args []string) (string, error) {
	usi, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return "", &UsageError{Command: "scan", Reason: fmt.Sprintf("%q is not an identifier", args[0])}
	}
	report, err := s.Scan(usi)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(report, "\n"), nil
}

func runTargets(s *game.Session, _ []string) (string, error) {
	targets := s.Targets()
	if len(targets) == 0 {
		return "No targets in this region.", nil
	}
	var b strings.Builder
	if closest := s.ClosestTarget(); closest != nil {
		fmt.Fprintf(&b, "Closest: %s (%d)\n", entity.Description(closest), closest.USI())
	}
	for _, t := range targets {
		fmt.Fprintf(&b, "%6d  %-10s %s at %s\n", t.USI(), t.Kind(), entity.Description(t), t.Coord().RLoc)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func runCourse(s *game.Session, args []string) (string, error) {
	n, err := intArgs("course", args[:2])
	if err != nil {
		return "", err
	}
	course, err := s.PlotCourse(galaxy.Pt(n[0], n[1]))
	if err != nil {
		return "", err
	}
	steps := make([]string, len(course))
	for i, p := range course {
		steps[i] = p.String()
	}
	return "Course: " + strings.Join(steps, " -> "), nil
}

func runReveal(s *game.Session, _ []string) (string, error) {
	if err := s.RevealAll(); err != nil {
		return "", err
	}
	return "Every region is charted.", nil
}
