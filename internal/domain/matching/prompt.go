package matching

import (
	"bytes"
	"encoding/json"
	"strings"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/skill"
)

// SystemInstruction is sent with every matching prompt.
const SystemInstruction = "You are an expert at matching employees to projects based on their skills, experience, and project requirements. " +
	"Return only a JSON array of employee objects, each with an 'employeeId' and 'score' field. Do not use markdown."

const rankInstruction = "Rank and suggest the best fit profiles for the project. Assign a score/percentage for each profile match. " +
	"In the response include employeeId, employeeName and score/percentage and make sure its a json array of objects. " +
	"Response should include only the json array of objects nothing else, in order to be able to parse it."

type profile struct {
	ID                   int64  `json:"id"`
	FullName             string `json:"fullname"`
	Skills               string `json:"skills"`
	Role                 any    `json:"role"`
	Seniority            any    `json:"seniority"`
	TotalExperienceYears any    `json:"total_experience_years"`
}

// BuildPrompt renders the matching prompt. Sections with no data are left out;
// the output depends only on its inputs.
func BuildPrompt(description string, roster []employee.Employee, catalog []skill.Skill) (string, error) {
	var b strings.Builder

	if len(catalog) > 0 {
		names := make([]string, 0, len(catalog))
		for _, s := range catalog {
			names = append(names, s.Name)
		}
		b.WriteString("# The available skills are: ")
		b.WriteString(strings.Join(names, ", "))
		b.WriteString("\n")
	}

	if d := strings.TrimSpace(description); d != "" {
		b.WriteString("# The project description is: ")
		b.WriteString(d)
		b.WriteString(" .\n")
	}

	if len(roster) > 0 {
		profiles, err := profilesJSON(roster)
		if err != nil {
			return "", err
		}
		b.WriteString("# The profiles are: ")
		b.WriteString(profiles)
		b.WriteString("\n")
	}

	b.WriteString(rankInstruction)
	return b.String(), nil
}

func profilesJSON(roster []employee.Employee) (string, error) {
	profiles := make([]profile, 0, len(roster))
	for _, e := range roster {
		p := profile{
			ID:       e.ID,
			FullName: e.FullName,
			Skills:   strings.Join(e.SkillNames(), ", "),
		}
		if e.Role != "" {
			p.Role = e.Role
		}
		if e.Seniority != "" {
			p.Seniority = e.Seniority
		}
		if e.TotalExperienceYears > 0 {
			p.TotalExperienceYears = e.TotalExperienceYears
		}
		profiles = append(profiles, p)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(profiles); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
