package accountsController

import (
	"context"
	"time"

	"fiber-mongo-storefront/middlewares"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"

	"github.com/gofiber/fiber/v2"
)

type AccountsController struct {
	users   *services.UserService
	carts   *services.CartService
	timeout time.Duration
}

func New(users *services.UserService, carts *services.CartService, timeout time.Duration) *AccountsController {
	return &AccountsController{users: users, carts: carts, timeout: timeout}
}

// GetUserProfile returns the signed-in user with their cart item count.
func (h *AccountsController) GetUserProfile(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	userId := middlewares.UserID(c)

	user, err := h.users.GetProfile(ctx, userId)
	if err != nil {
		return responses.Error(c, err, "Error fetching user data")
	}

	cart, err := h.carts.GetCartView(ctx, userId)
	if err != nil {
		return responses.Error(c, err, "Error fetching cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "User profile fetched successfully",
		Result: &fiber.Map{
			"user":      user,
			"cartCount": cart.Count(),
		},
	})
}
