package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type ProjectController struct {
	projectService *services.ProjectService
	validate       *validator.Validate
}

func NewProjectController(projectService *services.ProjectService) *ProjectController {
	return &ProjectController{projectService: projectService, validate: dtos.NewValidator()}
}

// GET /api/projects?skip=&limit=&search=&zone_id=&developer=&sort=recent
func (c *ProjectController) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r, "zone_id", "developer")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	projects, err := c.projectService.List(r.Context(), params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

// GET /api/projects/{id}
func (c *ProjectController) GetProjectHandler(w http.ResponseWriter, r *http.Request) {
	project, err := c.projectService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// POST /api/projects
func (c *ProjectController) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateProjectRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	project, err := c.projectService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, project)
}

// PUT, PATCH /api/projects/{id}
func (c *ProjectController) UpdateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateProjectRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	project, err := c.projectService.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}

// DELETE /api/projects/{id}
func (c *ProjectController) DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.projectService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Project deleted successfully"})
}
