// Package pilot tracks experience, levels, skills and funds for ship pilots.
package pilot

import (
	"errors"
	"fmt"
	"strings"
)

// PointsPerLevel is the number of skill points granted for each level gained
const PointsPerLevel = 25

// Skill identifies one of the pilot's skill ratings
type Skill int

const (
	Hacking Skill = iota
	Mechanic
	Merchant
	Piloting
	Weapons
	skillCount
)

// SkillCount is the number of skills every pilot has
const SkillCount = int(skillCount)

var skillNames = [skillCount]string{"Hacking", "Mechanic", "Merchant", "Piloting", "Weapons"}

func (s Skill) String() string {
	if s < 0 || s >= skillCount {
		return fmt.Sprintf("skill(%d)", int(s))
	}
	return skillNames[s]
}

// ParseSkill looks a skill up by its display name, ignoring case
func ParseSkill(name string) (Skill, error) {
	for i, n := range skillNames {
		if strings.EqualFold(n, name) {
			return Skill(i), nil
		}
	}
	return 0, fmt.Errorf("unknown skill %q", name)
}

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("not enough funds")
)

// levelTable holds the experience needed for levels 1 through 11
var levelTable = [...]int64{0, 500, 1000, 2000, 4000, 8000, 16000, 32000, 64000, 96000, 128000}

const (
	tableTop      = 128000
	xpPerTopLevel = 64000
)

// Level returns the level reached with xp total experience. Above the table
// any experience past 128000 reaches level 12 and every further 64000 adds one.
func Level(xp int64) int {
	if xp > tableTop {
		return 12 + int((xp-tableTop)/xpPerTopLevel)
	}
	level := 1
	for i, need := range levelTable {
		if xp >= need {
			level = i + 1
		}
	}
	return level
}

// ExperienceRequired returns the least total experience at which Level
// reports at least level. Levels below 1 need nothing.
func ExperienceRequired(level int) int64 {
	switch {
	case level <= 1:
		return 0
	case level <= len(levelTable):
		return levelTable[level-1]
	case level == 12:
		return tableTop + 1
	default:
		return tableTop + int64(level-12)*xpPerTopLevel
	}
}

// Pilot flies a machine. The player pilot assigns skill points by hand; AI
// pilots spread new points evenly across every skill.
type Pilot struct {
	ai         bool
	funds      int64
	experience int64
	level      int
	skills     [skillCount]int
	unassigned int
}

// New creates a first level pilot with no skills and one level's worth of
// unassigned points. Negative funds are treated as zero.
func New(ai bool, funds int64) *Pilot {
	if funds < 0 {
		funds = 0
	}
	return &Pilot{
		ai:         ai,
		funds:      funds,
		level:      1,
		unassigned: PointsPerLevel,
	}
}

// NewAtLevel creates a pilot that starts at the given level with zero
// experience. AI pilots get their points spread over the skills already.
func NewAtLevel(ai bool, level int, funds int64) *Pilot {
	if level < 1 {
		level = 1
	}
	p := New(ai, funds)
	p.level = level
	p.unassigned = PointsPerLevel * level
	if ai {
		p.distribute()
	}
	return p
}

func (p *Pilot) AI() bool          { return p.ai }
func (p *Pilot) Funds() int64      { return p.funds }
func (p *Pilot) Experience() int64 { return p.experience }
func (p *Pilot) Level() int        { return p.level }
func (p *Pilot) Unassigned() int   { return p.unassigned }

// Skill returns the rating for s, zero for unknown skills
func (p *Pilot) Skill(s Skill) int {
	if s < 0 || s >= skillCount {
		return 0
	}
	return p.skills[s]
}

// Skills returns a copy of every rating in skill order
func (p *Pilot) Skills() [SkillCount]int {
	return p.skills
}

// AddExperience adds xp (negative counts as zero), recomputes the level from
// the new total and returns the number of levels gained.
func (p *Pilot) AddExperience(xp int64) int {
	if xp < 0 {
		xp = 0
	}
	old := p.level
	p.experience += xp
	p.level = Level(p.experience)

	gained := p.level - old
	if gained < 0 {
		// a pilot created above its experience keeps its level
		p.level = old
		gained = 0
	}
	p.unassigned += gained * PointsPerLevel
	if p.ai {
		p.distribute()
	}
	return gained
}

// distribute spreads unassigned points evenly; the remainder stays unassigned
func (p *Pilot) distribute() {
	each := p.unassigned / SkillCount
	if each <= 0 {
		return
	}
	for i := range p.skills {
		p.skills[i] += each
	}
	p.unassigned -= each * SkillCount
}

// AssignPoints moves n unassigned points into skill s. Nothing changes and
// false is returned when n is negative, more than unassigned, or s is unknown.
func (p *Pilot) AssignPoints(s Skill, n int) bool {
	if s < 0 || s >= skillCount || n < 0 || n > p.unassigned {
		return false
	}
	p.skills[s] += n
	p.unassigned -= n
	return true
}

// GrantPoints gifts n unassigned points outside of leveling
func (p *Pilot) GrantPoints(n int) {
	if n > 0 {
		p.unassigned += n
	}
}

// AddFunds credits f, which must be positive
func (p *Pilot) AddFunds(f int64) error {
	if f <= 0 {
		return fmt.Errorf("add funds %d: %w", f, ErrInvalidAmount)
	}
	p.funds += f
	return nil
}

// RemoveFunds debits f, which must be positive and no more than the balance
func (p *Pilot) RemoveFunds(f int64) error {
	if f <= 0 {
		return fmt.Errorf("remove funds %d: %w", f, ErrInvalidAmount)
	}
	if f > p.funds {
		return ErrInsufficientFunds
	}
	p.funds -= f
	return nil
}
