package handler

import (
	"staffmatch/internal/delivery/http/dto"
	"staffmatch/internal/delivery/http/middleware"
	"staffmatch/internal/pkg/response"
	"staffmatch/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	defaultBudgetWeeks   = 12
	defaultBudgetSuccess = 80
)

type ProjectHandler struct {
	projects  usecase.ProjectUsecase
	teams     usecase.TeamUsecase
	analytics usecase.AnalyticsUsecase
	insights  usecase.InsightsUsecase
}

func NewProjectHandler(projects usecase.ProjectUsecase, teams usecase.TeamUsecase, analytics usecase.AnalyticsUsecase, insights usecase.InsightsUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects, teams: teams, analytics: analytics, insights: insights}
}

func (h *ProjectHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/projects")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Delete("/:id", h.Delete)
	grp.Post("/:id/match", h.Match)
	grp.Put("/:id/team", h.SaveTeam)

	grp.Get("/:id/qualified", h.Qualified)
	grp.Get("/:id/skill-gaps", h.SkillGaps)
	grp.Get("/:id/chemistry", h.Chemistry)
	grp.Get("/:id/budget", h.Budget)

	grp.Get("/:id/prediction", h.Prediction)
	grp.Get("/:id/alternative-teams", h.AlternativeTeams)
	grp.Get("/:id/suggestions", h.Suggestions)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	items, err := h.projects.ListProjects(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	res := make([]dto.ProjectListItem, 0, len(items))
	for _, it := range items {
		res = append(res, dto.NewProjectListItem(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// Create stores the project and answers before matching finishes; the team
// appears on the project once the background run persists it.
func (h *ProjectHandler) Create(c fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	id, err := h.projects.CreateProject(c.Context(), req.Input(middleware.Subject(c)))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Project created, team matching started", dto.CreateProjectResponse{ID: id})
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.projects.GetProject(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProjectDetailResponse(detail))
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projects.DeleteProject(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Project deleted", nil)
}

func (h *ProjectHandler) Match(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.projects.Rematch(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusAccepted, "Team matching started", dto.CreateProjectResponse{ID: id})
}

func (h *ProjectHandler) SaveTeam(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.SaveTeamRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	n, err := h.teams.SaveTeam(c.Context(), id, req.EmployeeIDs)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Team saved", dto.SaveTeamResponse{Success: true, Count: n})
}

func (h *ProjectHandler) Qualified(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.analytics.Qualified(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) SkillGaps(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.analytics.SkillGaps(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Chemistry(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.analytics.Chemistry(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Budget(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}
	weeks, err := intQuery(c, "weeks", defaultBudgetWeeks)
	if err != nil {
		return err
	}
	success, err := floatQuery(c, "success", defaultBudgetSuccess)
	if err != nil {
		return err
	}

	res, err := h.analytics.TeamBudget(c.Context(), id, int(weeks), success)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Prediction(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.insights.Prediction(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) AlternativeTeams(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.insights.AlternativeTeams(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Suggestions(c fiber.Ctx) error {
	id, err := idParam(c, "id")
	if err != nil {
		return err
	}

	res, err := h.insights.Suggestions(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
