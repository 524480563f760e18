package cartController

import (
	"context"
	"time"

	"fiber-mongo-storefront/middlewares"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/utils"

	"github.com/gofiber/fiber/v2"
)

type CartController struct {
	carts   *services.CartService
	timeout time.Duration
}

func New(carts *services.CartService, timeout time.Duration) *CartController {
	return &CartController{carts: carts, timeout: timeout}
}

type CartItemRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required"`
}

type QuantityRequest struct {
	ProductID string `json:"productId" form:"productId" validate:"required"`
	Action    string `json:"action" form:"action" validate:"required,oneof=increase decrease"`
}

func (h *CartController) AddToCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request CartItemRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	if err := h.carts.AddItem(ctx, middlewares.UserID(c), request.ProductID); err != nil {
		return responses.Error(c, err, "Failed to update cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Successfully added to cart",
	})
}

func (h *CartController) RemoveFromCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request CartItemRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	if err := h.carts.RemoveItem(ctx, middlewares.UserID(c), request.ProductID); err != nil {
		return responses.Error(c, err, "Failed to remove product from cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Product removed from cart",
	})
}

// UpdateCartQuantity increases or decreases a line by one. Decreasing the last unit removes it.
func (h *CartController) UpdateCartQuantity(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request QuantityRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	userId := middlewares.UserID(c)
	err := h.carts.AdjustQuantity(ctx, userId, request.ProductID, services.Direction(request.Action))
	if err != nil {
		return responses.Error(c, err, "Failed to update quantity")
	}

	view, err := h.carts.GetCartView(ctx, userId)
	if err != nil {
		return responses.Error(c, err, "Error fetching cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Cart updated",
		Result: &fiber.Map{
			"total": view.Total(),
			"count": view.Count(),
		},
	})
}

func (h *CartController) GetCart(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	view, err := h.carts.GetCartView(ctx, middlewares.UserID(c))
	if err != nil {
		return responses.Error(c, err, "Error fetching cart")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "success",
		Result: &fiber.Map{
			"products": view,
			"total":    view.Total(),
			"count":    view.Count(),
		},
	})
}
