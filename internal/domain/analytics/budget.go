package analytics

import (
	"math"

	"staffmatch/internal/domain/employee"
)

const (
	DefaultSalary         = 80000.0
	DefaultDurationWeeks  = 12
	DefaultSuccessPercent = 80.0

	weeksPerMonth      = 4.33
	baselineWeeklyCost = 50000.0
)

var salaryBySeniority = map[string]float64{
	employee.Junior:    60000,
	employee.Mid:       90000,
	employee.Senior:    130000,
	employee.Lead:      160000,
	employee.Principal: 200000,
}

// EstimateSalary returns the annual salary assumed for a seniority level.
func EstimateSalary(seniority string) float64 {
	if s, ok := salaryBySeniority[seniority]; ok {
		return s
	}
	return DefaultSalary
}

type CostMember struct {
	EmployeeID int64
	Seniority  string
}

type MemberCost struct {
	EmployeeID  int64   `json:"employeeId"`
	Salary      float64 `json:"salary"`
	ProjectCost float64 `json:"projectCost"`
}

type TeamCost struct {
	TotalCost     float64      `json:"totalCost"`
	MonthlyCost   float64      `json:"monthlyCost"`
	WeeklyCost    float64      `json:"weeklyCost"`
	CostPerMember []MemberCost `json:"costPerMember"`
}

// CostMembers adapts employees to cost inputs.
func CostMembers(team []employee.Employee) []CostMember {
	out := make([]CostMember, 0, len(team))
	for _, e := range team {
		out = append(out, CostMember{EmployeeID: e.ID, Seniority: e.Seniority})
	}
	return out
}

// EstimateTeamCost prices a team over weeks. Non-positive weeks fall back to
// DefaultDurationWeeks.
func EstimateTeamCost(members []CostMember, weeks int) TeamCost {
	if weeks <= 0 {
		weeks = DefaultDurationWeeks
	}
	out := TeamCost{CostPerMember: make([]MemberCost, 0, len(members))}
	for _, m := range members {
		salary := EstimateSalary(m.Seniority)
		weekly := salary / 12 / weeksPerMonth
		cost := weekly * float64(weeks)
		out.CostPerMember = append(out.CostPerMember, MemberCost{EmployeeID: m.EmployeeID, Salary: salary, ProjectCost: cost})
		out.TotalCost += cost
	}
	out.MonthlyCost = out.TotalCost / (float64(weeks) / weeksPerMonth)
	out.WeeklyCost = out.TotalCost / float64(weeks)
	return out
}

type ROI struct {
	CostPerWeek    float64 `json:"costPerWeek"`
	ValueScore     int     `json:"valueScore"`
	Recommendation string  `json:"recommendation"`
}

// EstimateROI blends success probability (70%) with cost efficiency against a
// weekly baseline (30%).
func EstimateROI(totalCost float64, weeks int, successProbability float64) ROI {
	if weeks <= 0 {
		weeks = DefaultDurationWeeks
	}
	perWeek := totalCost / float64(weeks)
	normalized := math.Min(100, perWeek/baselineWeeklyCost*100)
	value := int(math.Round(successProbability*0.7 + (100-normalized)*0.3))

	var rec string
	switch {
	case value >= 80:
		rec = "Excellent value - optimal balance of cost and success probability"
	case value >= 60:
		rec = "Good value - reasonable cost with solid success probability"
	case value >= 40:
		rec = "Moderate value - consider optimizing team composition"
	default:
		rec = "Low value - high cost relative to success probability. Consider alternative team."
	}
	return ROI{CostPerWeek: perWeek, ValueScore: value, Recommendation: rec}
}

type TeamOption struct {
	Members            []CostMember
	EstimatedWeeks     int
	SuccessProbability float64
}

type BudgetChoice struct {
	Cheapest  int `json:"cheapest"`
	BestValue int `json:"bestValue"`
	Fastest   int `json:"fastest"`
}

// BudgetFriendlyOption returns the indexes of the cheapest, best-value and
// fastest options. Ties keep the earliest option. ok is false for no options.
func BudgetFriendlyOption(options []TeamOption) (BudgetChoice, bool) {
	if len(options) == 0 {
		return BudgetChoice{}, false
	}
	type scored struct {
		cost  float64
		value int
		weeks int
	}
	all := make([]scored, len(options))
	for i, o := range options {
		cost := EstimateTeamCost(o.Members, o.EstimatedWeeks)
		roi := EstimateROI(cost.TotalCost, o.EstimatedWeeks, o.SuccessProbability)
		all[i] = scored{cost: cost.TotalCost, value: roi.ValueScore, weeks: o.EstimatedWeeks}
	}

	var out BudgetChoice
	for i := 1; i < len(all); i++ {
		if all[i].cost < all[out.Cheapest].cost {
			out.Cheapest = i
		}
		if all[i].value > all[out.BestValue].value {
			out.BestValue = i
		}
		if all[i].weeks < all[out.Fastest].weeks {
			out.Fastest = i
		}
	}
	return out, true
}
