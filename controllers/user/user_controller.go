package userController

import (
	"context"
	"time"

	"fiber-mongo-storefront/middlewares"
	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type UserController struct {
	users        *services.UserService
	sessions     *middlewares.Sessions
	timeout      time.Duration
	secureCookie bool
}

func New(users *services.UserService, sessions *middlewares.Sessions, timeout time.Duration, secureCookie bool) *UserController {
	return &UserController{users: users, sessions: sessions, timeout: timeout, secureCookie: secureCookie}
}

type SignUpRequest struct {
	Name            string `json:"name" form:"name" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
}

type SignInRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UserSignUp
func (h *UserController) UserSignUp(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var reqBody SignUpRequest
	if err := utils.ParseBody(c, &reqBody); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	user, err := h.users.Signup(ctx, reqBody.Name, reqBody.Email, reqBody.Password)
	if err != nil {
		return responses.Error(c, err, "Error in saving user, please try again later")
	}

	return h.startSession(c, fiber.StatusCreated, "User created successfully", user)
}

func (h *UserController) UserSignIn(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var reqBody SignInRequest
	if err := utils.ParseBody(c, &reqBody); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	user, err := h.users.Login(ctx, reqBody.Email, reqBody.Password)
	if err != nil {
		return responses.Error(c, err, "Error fetching from database")
	}

	return h.startSession(c, fiber.StatusOK, "User signed in successfully", user)
}

func (h *UserController) UserSignOut(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "User signed out successfully",
	})
}

func (h *UserController) startSession(c *fiber.Ctx, status int, message string, user *models.User) error {
	token, err := h.sessions.Issue(user)
	if err != nil {
		log.Errorf("issue session token: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(responses.UserResponse{
			Status:  fiber.StatusInternalServerError,
			Message: "Error while generating jwt token",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middlewares.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.sessions.TTL()),
		HTTPOnly: true,
		Secure:   h.secureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(status).JSON(responses.UserResponse{
		Status:  status,
		Message: message,
		Result: &fiber.Map{
			"data": fiber.Map{
				"id":    user.Id.Hex(),
				"name":  user.Name,
				"email": user.Email,
				"type":  user.Type,
				"token": token,
			},
		},
	})
}
