package employee

// Seniority levels in career order.
const (
	Junior    = "Junior"
	Mid       = "Mid"
	Senior    = "Senior"
	Lead      = "Lead"
	Principal = "Principal"
)

// Levels lists the seniority ladder from lowest to highest.
var Levels = []string{Junior, Mid, Senior, Lead, Principal}

type SkillExperience struct {
	SkillID   int64
	SkillName string
	Years     int
}

// Employee is read-only to this service: rows are seeded or managed elsewhere.
type Employee struct {
	ID                   int64
	FullName             string
	Email                string
	Role                 string
	Seniority            string
	TotalExperienceYears int
	Location             string
	Skills               []SkillExperience
	Languages            []string
}

// SkillNames returns the employee's skill names in stored order.
func (e Employee) SkillNames() []string {
	out := make([]string, 0, len(e.Skills))
	for _, s := range e.Skills {
		out = append(out, s.SkillName)
	}
	return out
}
