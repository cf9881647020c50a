package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	scoreService "github.com/OVECJOE/sos/internals/features/scoring/score/service"
	"github.com/OVECJOE/sos/internals/features/users/auth/dto"
	authService "github.com/OVECJOE/sos/internals/features/users/auth/service"
	userDTO "github.com/OVECJOE/sos/internals/features/users/user/dto"
	userModel "github.com/OVECJOE/sos/internals/features/users/user/model"
	helper "github.com/OVECJOE/sos/internals/helpers"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var body dto.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authService.Register(ctrl.DB, body.UserName, body.Email, body.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.respondWithToken(c, user, fiber.StatusCreated, "Account created")
}

// POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	body.Normalize()
	if err := body.Validate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := authService.Login(ctrl.DB, body.Email, body.Password)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.respondWithToken(c, user, fiber.StatusOK, "Logged in")
}

// POST /api/auth/login-google
func (ctrl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var body dto.GoogleLoginRequest
	if err := c.BodyParser(&body); err != nil || body.IDToken == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := authService.LoginGoogle(ctrl.DB, body.IDToken)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return ctrl.respondWithToken(c, user, fiber.StatusOK, "Logged in")
}

func (ctrl *AuthController) respondWithToken(c *fiber.Ctx, user *userModel.UserModel, status int, message string) error {
	now := time.Now()
	token, err := authService.IssueAccessToken(user, now)
	if err != nil {
		log.Println("[ERROR] Failed to issue access token:", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue access token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  now.Add(24 * time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})

	resp := dto.AuthResponse{
		AccessToken: token,
		User:        userDTO.ToUserResponse(user, scoreService.ScoreRatio(user.SocialScore)),
	}
	if status == fiber.StatusCreated {
		return helper.JsonCreated(c, message, resp)
	}
	return helper.JsonOK(c, message, resp)
}
