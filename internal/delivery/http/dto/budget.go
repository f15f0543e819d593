package dto

import "staffmatch/internal/domain/analytics"

type BudgetMemberRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"gte=0"`
	Seniority  string `json:"seniority"`
}

type BudgetRequest struct {
	Members            []BudgetMemberRequest `json:"members" validate:"required,max=500,dive"`
	Weeks              int                   `json:"weeks" validate:"gte=0,lte=520"`
	SuccessProbability float64               `json:"success_probability" validate:"gte=0,lte=100"`
}

func (r BudgetRequest) CostMembers() []analytics.CostMember {
	out := make([]analytics.CostMember, 0, len(r.Members))
	for _, m := range r.Members {
		out = append(out, analytics.CostMember{EmployeeID: m.EmployeeID, Seniority: m.Seniority})
	}
	return out
}
