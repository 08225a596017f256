package pilot

// Record is the persisted form of a pilot
type Record struct {
	AI         bool            `json:"ai"`
	Funds      int64           `json:"funds"`
	Experience int64           `json:"experience"`
	Level      int             `json:"level"`
	Skills     [SkillCount]int `json:"skills"`
	Unassigned int             `json:"unassigned"`
}

func (p *Pilot) Record() Record {
	return Record{
		AI:         p.ai,
		Funds:      p.funds,
		Experience: p.experience,
		Level:      p.level,
		Skills:     p.skills,
		Unassigned: p.unassigned,
	}
}

// FromRecord rebuilds a pilot, clamping counters that cannot be negative
func FromRecord(rec Record) *Pilot {
	p := &Pilot{
		ai:         rec.AI,
		funds:      max(rec.Funds, 0),
		experience: max(rec.Experience, 0),
		level:      max(rec.Level, 1),
		skills:     rec.Skills,
		unassigned: max(rec.Unassigned, 0),
	}
	return p
}
