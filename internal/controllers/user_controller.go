package controllers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/dtos"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/services"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/utils"
)

type UserController struct {
	userService *services.UserService
	validate    *validator.Validate
}

func NewUserController(userService *services.UserService) *UserController {
	return &UserController{userService: userService, validate: dtos.NewValidator()}
}

// GET /api/users?skip=&limit=&search=&role=
func (c *UserController) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	params, err := listParams(r, "role")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	users, err := c.userService.List(r.Context(), params)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, users)
}

// GET /api/users/{id}
func (c *UserController) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := c.userService.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// POST /api/users
func (c *UserController) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUserRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	user, err := c.userService.Create(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, user)
}

// PUT, PATCH /api/users/{id}
func (c *UserController) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.UpdateUserRequest
	if !decodeAndValidate(w, r, c.validate, &req) {
		return
	}
	user, err := c.userService.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// DELETE /api/users/{id}
func (c *UserController) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	if err := c.userService.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "User deleted successfully"})
}
