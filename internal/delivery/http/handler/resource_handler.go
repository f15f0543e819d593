package handler

import (
	"staffmatch/internal/delivery/http/dto"
	"staffmatch/internal/pkg/response"
	"staffmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// ResourceHandler serves the cross-project views: staffing conflicts,
// allocation, idle employees, growth and ad hoc budgets.
type ResourceHandler struct {
	uc usecase.AnalyticsUsecase
}

func NewResourceHandler(uc usecase.AnalyticsUsecase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

func (h *ResourceHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resources")
	grp.Get("/conflicts", h.Conflicts)
	grp.Get("/allocation", h.Allocation)
	grp.Get("/unallocated", h.Unallocated)

	r.Get("/employees/growth", h.Growth)
	r.Post("/budget", h.Budget)
}

func (h *ResourceHandler) Conflicts(c fiber.Ctx) error {
	res, err := h.uc.ResourceConflicts(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResourceHandler) Allocation(c fiber.Ctx) error {
	res, err := h.uc.ResourceAllocation(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResourceHandler) Unallocated(c fiber.Ctx) error {
	res, err := h.uc.UnallocatedEmployees(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResourceHandler) Growth(c fiber.Ctx) error {
	employeeID, err := intQuery(c, "employee_id", 0)
	if err != nil {
		return err
	}

	res, err := h.uc.Growth(c.Context(), employeeID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ResourceHandler) Budget(c fiber.Ctx) error {
	var req dto.BudgetRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, h.uc.Budget(req.CostMembers(), req.Weeks, req.SuccessProbability))
}
