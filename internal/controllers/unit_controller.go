package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type UnitController struct {
	unitService *services.UnitService
	validate    *validator.Validate
}

func NewUnitController(unitService *services.UnitService) *UnitController {
	return &UnitController{unitService: unitService, validate: dtos.NewValidator()}
}

// GET /api/units?skip=&limit=&search=&project_id=&status=&typology=
func (c *UnitController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r, "project_id", "status", "typology")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	units, err := c.unitService.List(r.Context(), params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// GET /api/units/project/{project_id}
func (c *UnitController) ListUnitsByProjectHandler(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r, "status", "typology")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	units, err := c.unitService.ListByProject(r.Context(), mux.Vars(r)["project_id"], params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// GET /api/units/{id}
func (c *UnitController) GetUnitHandler(w http.ResponseWriter, r *http.Request) {
	unit, err := c.unitService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// POST /api/units
func (c *UnitController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUnitRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	unit, err := c.unitService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, unit)
}

// PUT, PATCH /api/units/{id}
func (c *UnitController) UpdateUnitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateUnitRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	unit, err := c.unitService.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// DELETE /api/units/{id}
func (c *UnitController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.unitService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Unit deleted successfully"})
}
