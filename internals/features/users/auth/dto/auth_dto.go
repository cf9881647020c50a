package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"

	userDTO "github.com/OVECJOE/sos/internals/features/users/user/dto"
)

var validate = validator.New()

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type RegisterRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

func (r *RegisterRequest) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

func (r *RegisterRequest) Validate() error {
	return validate.Struct(r)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(strings.ToLower(r.Email))
}

func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type AuthResponse struct {
	AccessToken string               `json:"access_token"`
	User        userDTO.UserResponse `json:"user"`
}
