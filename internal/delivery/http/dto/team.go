package dto

type SaveTeamRequest struct {
	EmployeeIDs []int64 `json:"employee_ids" validate:"required,max=500,dive,gt=0"`
}

type SaveTeamResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
