package analytics

import (
	"fmt"
	"math"
	"sort"

	"staffmatch/internal/domain/employee"
	"staffmatch/internal/domain/team"
)

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

func (s Severity) rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

type ProjectRef struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
}

type Conflict struct {
	EmployeeID     int64        `json:"employeeId"`
	EmployeeName   string       `json:"employeeName"`
	ProjectCount   int          `json:"projectCount"`
	Projects       []ProjectRef `json:"projects"`
	Severity       Severity     `json:"severity"`
	Recommendation string       `json:"recommendation"`
}

// ConflictSeverity classifies a number of simultaneous projects. ok is false
// when the count is not a conflict.
func ConflictSeverity(projects int) (Severity, bool) {
	switch {
	case projects >= 4:
		return SeverityHigh, true
	case projects == 3:
		return SeverityMedium, true
	case projects == 2:
		return SeverityLow, true
	}
	return "", false
}

func conflictRecommendation(s Severity, n int) string {
	switch s {
	case SeverityHigh:
		return fmt.Sprintf("Employee is assigned to %d projects. Consider reducing to 2-3 projects for better focus.", n)
	case SeverityMedium:
		return fmt.Sprintf("Employee is assigned to %d projects. Monitor workload to ensure quality.", n)
	}
	return fmt.Sprintf("Employee is assigned to %d projects. This is manageable but watch for overload.", n)
}

type assignmentGroup struct {
	employeeID int64
	name       string
	seniority  string
	projects   []ProjectRef
}

// groupAssignments collects allocations per employee in first-seen order.
func groupAssignments(allocations []team.Allocation) []*assignmentGroup {
	var order []*assignmentGroup
	byID := make(map[int64]*assignmentGroup)
	for _, a := range allocations {
		g, ok := byID[a.EmployeeID]
		if !ok {
			g = &assignmentGroup{employeeID: a.EmployeeID, name: a.EmployeeName, seniority: a.Seniority}
			byID[a.EmployeeID] = g
			order = append(order, g)
		}
		g.projects = append(g.projects, ProjectRef{ProjectID: a.ProjectID, ProjectName: a.ProjectName})
	}
	return order
}

// ResourceConflicts lists employees assigned to two or more projects, most
// severe first.
func ResourceConflicts(allocations []team.Allocation) []Conflict {
	out := make([]Conflict, 0)
	for _, g := range groupAssignments(allocations) {
		sev, ok := ConflictSeverity(len(g.projects))
		if !ok {
			continue
		}
		out = append(out, Conflict{
			EmployeeID:     g.employeeID,
			EmployeeName:   g.name,
			ProjectCount:   len(g.projects),
			Projects:       g.projects,
			Severity:       sev,
			Recommendation: conflictRecommendation(sev, len(g.projects)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.rank() > out[j].Severity.rank()
	})
	return out
}

type AllocatedProject struct {
	ProjectID   int64  `json:"projectId"`
	ProjectName string `json:"projectName"`
	Role        string `json:"role,omitempty"`
}

type Allocation struct {
	EmployeeID    int64              `json:"employeeId"`
	EmployeeName  string             `json:"employeeName"`
	Seniority     string             `json:"seniority,omitempty"`
	TotalProjects int                `json:"totalProjects"`
	Projects      []AllocatedProject `json:"projects"`
	Utilization   int                `json:"utilization"`
}

// Utilization is 50% per project, capped at 150%.
func Utilization(projects int) int {
	return int(math.Min(150, float64(projects)*50))
}

// ResourceAllocation summarizes every employee's project load, including
// employees with none.
func ResourceAllocation(employees []employee.Employee, allocations []team.Allocation) []Allocation {
	byID := make(map[int64]*assignmentGroup)
	for _, g := range groupAssignments(allocations) {
		byID[g.employeeID] = g
	}

	out := make([]Allocation, 0, len(employees))
	for _, e := range employees {
		a := Allocation{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName,
			Seniority:    e.Seniority,
			Projects:     []AllocatedProject{},
		}
		if g, ok := byID[e.ID]; ok {
			for _, p := range g.projects {
				a.Projects = append(a.Projects, AllocatedProject{ProjectID: p.ProjectID, ProjectName: p.ProjectName, Role: e.Role})
			}
		}
		a.TotalProjects = len(a.Projects)
		a.Utilization = Utilization(a.TotalProjects)
		out = append(out, a)
	}
	return out
}

type Unallocated struct {
	EmployeeID   int64    `json:"employeeId"`
	EmployeeName string   `json:"employeeName"`
	Seniority    string   `json:"seniority,omitempty"`
	Role         string   `json:"role,omitempty"`
	Skills       []string `json:"skills"`
}

// UnallocatedEmployees returns employees with no project assignment.
func UnallocatedEmployees(employees []employee.Employee, allocations []team.Allocation) []Unallocated {
	busy := make(map[int64]struct{}, len(allocations))
	for _, a := range allocations {
		busy[a.EmployeeID] = struct{}{}
	}
	out := make([]Unallocated, 0)
	for _, e := range employees {
		if _, ok := busy[e.ID]; ok {
			continue
		}
		out = append(out, Unallocated{
			EmployeeID:   e.ID,
			EmployeeName: e.FullName,
			Seniority:    e.Seniority,
			Role:         e.Role,
			Skills:       e.SkillNames(),
		})
	}
	return out
}
