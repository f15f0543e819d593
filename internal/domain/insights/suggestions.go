package insights

import "staffmatch/internal/domain/employee"

const (
	fallbackSuggestions = 5
	fallbackReason      = "Top match based on skills"
	defaultReason       = "AI recommended based on project requirements"
)

type Suggestion struct {
	EmployeeID int64    `json:"employeeId"`
	FullName   string   `json:"fullName"`
	Reason     string   `json:"reason"`
	Score      *float64 `json:"score,omitempty"`
}

// Suggest picks members from available using the balanced team, or the first
// team when there is no balanced one. Suggestions keep the order of available.
// When the chosen team is empty the first five available employees are
// suggested without a score.
func Suggest(teams []Team, available []employee.Employee) []Suggestion {
	out := []Suggestion{}
	if len(available) == 0 {
		return out
	}

	var chosen *Team
	for i := range teams {
		if teams[i].Strategy == StrategyBalanced {
			chosen = &teams[i]
			break
		}
	}
	if chosen == nil && len(teams) > 0 {
		chosen = &teams[0]
	}

	if chosen == nil || len(chosen.Employees) == 0 {
		for _, e := range available[:min(fallbackSuggestions, len(available))] {
			out = append(out, Suggestion{EmployeeID: e.ID, FullName: e.FullName, Reason: fallbackReason})
		}
		return out
	}

	picks := make(map[int64]Pick, len(chosen.Employees))
	for _, p := range chosen.Employees {
		picks[p.EmployeeID] = p
	}
	for _, e := range available {
		p, ok := picks[e.ID]
		if !ok {
			continue
		}
		reason := p.Reason
		if reason == "" {
			reason = defaultReason
		}
		score := p.Score
		out = append(out, Suggestion{EmployeeID: e.ID, FullName: e.FullName, Reason: reason, Score: &score})
	}
	return out
}
