package team

// Assignment is one (project, employee) pairing. At most one exists per pair.
type Assignment struct {
	ProjectID  int64
	EmployeeID int64
	Score      *float64
}

// Allocation is an assignment joined with display names, used by resource views.
type Allocation struct {
	EmployeeID   int64
	EmployeeName string
	Seniority    string
	ProjectID    int64
	ProjectName  string
}
