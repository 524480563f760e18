package ordersController

import (
	"context"
	"encoding/json"
	"time"

	"fiber-mongo-storefront/middlewares"
	"fiber-mongo-storefront/models"
	"fiber-mongo-storefront/responses"
	"fiber-mongo-storefront/services"
	"fiber-mongo-storefront/utils"

	"github.com/gofiber/fiber/v2"
)

type OrderController struct {
	orders  *services.OrderService
	timeout time.Duration
}

func New(orders *services.OrderService, timeout time.Duration) *OrderController {
	return &OrderController{orders: orders, timeout: timeout}
}

type PlaceOrderRequest struct {
	ProductID string      `json:"productId" form:"productId" validate:"required"`
	Quantity  int         `json:"quantity" form:"quantity" validate:"required"`
	Price     json.Number `json:"price" form:"price" validate:"required"`
	Location  string      `json:"location" form:"location" validate:"required"`
}

// PlaceOrder buys one cart line.
func (h *OrderController) PlaceOrder(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	var request PlaceOrderRequest
	if err := utils.ParseBody(c, &request); err != nil {
		return responses.BadRequest(c, err.Error())
	}

	price, err := models.ParseMoney(request.Price.String())
	if err != nil {
		return responses.BadRequest(c, "price must be a number")
	}

	orderId, err := h.orders.PlaceOrder(ctx, services.PlaceOrderInput{
		UserID:    middlewares.UserID(c),
		ProductID: request.ProductID,
		Quantity:  request.Quantity,
		Price:     price,
		Location:  request.Location,
	})
	if err != nil {
		return responses.Error(c, err, "Failed to place order")
	}

	return c.Status(fiber.StatusCreated).JSON(responses.UserResponse{
		Status:  fiber.StatusCreated,
		Message: "Order placed successfully",
		Result: &fiber.Map{
			"orderId": orderId.Hex(),
		},
	})
}

func (h *OrderController) GetOrders(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.GetUserOrders(ctx, middlewares.UserID(c))
	if err != nil {
		return responses.Error(c, err, "Failed to fetch orders")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Orders fetched successfully",
		Result: &fiber.Map{
			"orders": orders,
		},
	})
}

func (h *OrderController) GetOrderById(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.GetOrder(ctx, middlewares.UserID(c), c.Params("id"))
	if err != nil {
		return responses.Error(c, err, "Failed to fetch order")
	}

	return c.Status(fiber.StatusOK).JSON(responses.UserResponse{
		Status:  fiber.StatusOK,
		Message: "Order fetched successfully",
		Result: &fiber.Map{
			"order": order,
		},
	})
}
