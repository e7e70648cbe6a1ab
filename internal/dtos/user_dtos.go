package dtos

import (
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/models"
	"github.com/JuandaBeta1990/BDMIKISUPABASE/internal/repositories"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Role     string `json:"role" validate:"required,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ToModel stores passwordHash in place of the plain password.
func (r CreateUserRequest) ToModel(passwordHash string) *models.User {
	return &models.User{Username: r.Username, Role: r.Role, PasswordHash: passwordHash}
}

type UpdateUserRequest struct {
	Username Optional[string] `json:"username" validate:"omitempty,min=1,max=150"`
	Role     Optional[string] `json:"role" validate:"omitempty,min=1,max=50"`
	Password Optional[string] `json:"password" validate:"omitempty,min=8,max=72"`
}

// ToPatch hashes a supplied password with hash before it reaches the patch.
func (r UpdateUserRequest) ToPatch(hash func(string) (string, error)) (repositories.Patch, error) {
	b := newPatchBuilder()
	setField(b, "username", r.Username, false)
	setField(b, "role", r.Role, false)
	if r.Password.Set && b.err == nil {
		if r.Password.Null {
			return b.patch, errPasswordNull
		}
		h, err := hash(r.Password.Value)
		if err != nil {
			return b.patch, err
		}
		b.patch.Set("password_hash", h)
	}
	return b.build()
}

type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, Role: u.Role}
}
