package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type ZoneController struct {
	zoneService *services.ZoneService
	validate    *validator.Validate
}

func NewZoneController(zoneService *services.ZoneService) *ZoneController {
	return &ZoneController{zoneService: zoneService, validate: dtos.NewValidator()}
}

// GET /api/zones
func (c *ZoneController) ListZonesHandler(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	zones, err := c.zoneService.List(r.Context(), params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, zones)
}

// GET /api/zones/{id}
func (c *ZoneController) GetZoneHandler(w http.ResponseWriter, r *http.Request) {
	zone, err := c.zoneService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, zone)
}

// POST /api/zones
func (c *ZoneController) CreateZoneHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateZoneRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	zone, err := c.zoneService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, zone)
}

// PUT, PATCH /api/zones/{id}
func (c *ZoneController) UpdateZoneHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateZoneRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	zone, err := c.zoneService.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, zone)
}

// DELETE /api/zones/{id}
func (c *ZoneController) DeleteZoneHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.zoneService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Zone deleted successfully"})
}
